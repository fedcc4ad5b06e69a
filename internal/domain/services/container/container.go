package container

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/error/apperror"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/database"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// ServiceContainer wires every service once and hands them to the controllers
type ServiceContainer struct {
	db       *gorm.DB
	config   *config.Config
	store    docstore.Store
	pool     *database.ConnectionPool
	validate *validator.Validate

	// identity
	redisService services.InterfaceRedisService
	authService  services.InterfaceAuthService
	sessionHub   *services.SessionHub

	// screens
	propertyService    services.InterfacePropertyService
	dashboardService   services.InterfaceDashboardService
	reminderService    services.InterfaceReminderService
	repairService      services.InterfaceRepairService
	contractorService  services.InterfaceContractorService
	certificateService services.InterfaceCertificateService
	taskService        services.InterfaceTaskService

	mu sync.RWMutex
}

// NewServiceContainer creates the container. When Redis is enabled but unreachable,
// revoked tokens are kept in process instead.
func NewServiceContainer(db *gorm.DB, cfg *config.Config, store docstore.Store) *ServiceContainer {
	if db == nil {
		panic("database connection is nil")
	}
	if cfg == nil {
		panic("config is nil")
	}
	if store == nil {
		store = docstore.NewGormStore(db)
	}

	c := &ServiceContainer{
		db:       db,
		config:   cfg,
		store:    store,
		pool:     database.WrapDB(db),
		validate: apperror.NewValidator(),
	}
	c.initializeServices()
	return c
}

func (c *ServiceContainer) sessionStore() services.InterfaceSessionStore {
	if !c.config.RedisEnabled {
		return services.NewMemorySessionStore()
	}

	redisService := services.NewRedisService(c.config)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisService.Ping(ctx); err != nil {
		Logger.Warning("redis ping failed: %v, keeping revoked sessions in memory", err)
		return services.NewMemorySessionStore()
	}
	c.redisService = redisService
	return redisService
}

// initializeServices builds all services
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessionHub = services.NewSessionHub()
	c.authService = services.NewAuthService(c.db, c.config, c.sessionStore(), c.sessionHub)

	c.propertyService = services.NewPropertyService(c.store, c.config, c.validate)
	c.dashboardService = services.NewDashboardService(c.store, c.config)
	c.reminderService = services.NewReminderService(c.store, c.config)
	c.repairService = services.NewRepairService(c.store, c.config, c.validate)
	c.contractorService = services.NewContractorService(c.store, c.validate)
	c.certificateService = services.NewCertificateService(c.store, c.config, c.validate)
	c.taskService = services.NewTaskService(c.store, c.validate)
}

// GetService returns the service registered under name
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "store":
		return c.store
	case "pool":
		return c.pool
	case "validator":
		return c.validate
	case "redis":
		return c.redisService
	case "auth":
		return c.authService
	case "property":
		return c.propertyService
	case "dashboard":
		return c.dashboardService
	case "reminder":
		return c.reminderService
	case "repair":
		return c.repairService
	case "contractor":
		return c.contractorService
	case "certificate":
		return c.certificateService
	case "task":
		return c.taskService
	default:
		return nil
	}
}

// GetDB returns the database handle
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig returns the configuration
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}
