package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Urbanbaseprops/property-manager/internal/app/controllers"
	"github.com/Urbanbaseprops/property-manager/internal/app/middleware"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services"
	"github.com/Urbanbaseprops/property-manager/internal/domain/services/container"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
)

// SetupRouter builds the engine. store may be nil to use the documents table of db.
func SetupRouter(db *gorm.DB, cfg *config.Config, store docstore.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.Metrics())

	allowedOrigin := cfg.AllowedOrigin
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	serviceContainer := container.NewServiceContainer(db, cfg, store)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes configures every API route
func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes registers routes that need no session
func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	cfg := container.GetConfig()

	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "status"))

	api.POST("/auth/login",
		middleware.IPRateLimiter(cfg.LoginRatePerSecond, cfg.LoginBurst),
		controllers.HandleAuthFunc(container, "login"))
	// the watch stream reports signed-out sessions itself
	api.GET("/auth/watch", controllers.HandleAuthFunc(container, "watch"))
}

// registerAuthenticatedRoutes registers routes behind a session token
func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	authService := container.GetService("auth").(services.InterfaceAuthService)

	auth := api.Group("")
	auth.Use(middleware.Authentication(authService))

	auth.POST("/auth/logout", controllers.HandleAuthFunc(container, "logout"))
	auth.GET("/auth/me", controllers.HandleAuthFunc(container, "me"))
	auth.POST("/users", middleware.RequireRole("admin"), controllers.HandleAuthFunc(container, "createUser"))

	propertyGroup := auth.Group("/properties")
	{
		propertyGroup.GET("", controllers.HandlePropertyFunc(container, "getProperties"))
		propertyGroup.POST("", controllers.HandlePropertyFunc(container, "createProperty"))
		propertyGroup.GET("/:id", controllers.HandlePropertyFunc(container, "getProperty"))
		propertyGroup.PUT("/:id", controllers.HandlePropertyFunc(container, "updateProperty"))
		propertyGroup.DELETE("/:id", controllers.HandlePropertyFunc(container, "deleteProperty"))
		propertyGroup.POST("/:id/toggle/:field", controllers.HandlePropertyFunc(container, "togglePaid"))
	}

	auth.GET("/dashboard", controllers.HandleDashboardFunc(container, "getDashboard"))
	auth.GET("/due", controllers.HandleDashboardFunc(container, "getDue"))
	auth.GET("/reminders", controllers.HandleDashboardFunc(container, "getReminders"))

	repairGroup := auth.Group("/repairs")
	{
		repairGroup.GET("", controllers.HandleRepairFunc(container, "getRepairs"))
		repairGroup.POST("", controllers.HandleRepairFunc(container, "createRepair"))
		repairGroup.PATCH("/:id", controllers.HandleRepairFunc(container, "updateRepair"))
		repairGroup.DELETE("/:id", controllers.HandleRepairFunc(container, "deleteRepair"))
		repairGroup.GET("/:id/whatsapp", controllers.HandleRepairFunc(container, "contractorLink"))
	}

	contractorGroup := auth.Group("/contractors")
	{
		contractorGroup.GET("", controllers.HandleRepairFunc(container, "getContractors"))
		contractorGroup.PUT("", controllers.HandleRepairFunc(container, "saveContractor"))
		contractorGroup.DELETE("/:name", controllers.HandleRepairFunc(container, "deleteContractor"))
	}

	certificateGroup := auth.Group("/certificates")
	{
		certificateGroup.GET("", controllers.HandleCertificateFunc(container, "getCertificates"))
		certificateGroup.POST("", controllers.HandleCertificateFunc(container, "createCertificate"))
		certificateGroup.DELETE("/:id", controllers.HandleCertificateFunc(container, "deleteCertificate"))
	}

	taskGroup := auth.Group("/tasks")
	{
		taskGroup.GET("", controllers.HandleTaskFunc(container, "getTasks"))
		taskGroup.POST("", controllers.HandleTaskFunc(container, "createTask"))
		taskGroup.PUT("/:id", controllers.HandleTaskFunc(container, "updateTask"))
		taskGroup.DELETE("/:id", controllers.HandleTaskFunc(container, "deleteTask"))
		taskGroup.POST("/:id/toggle", controllers.HandleTaskFunc(container, "toggleTask"))
	}
}
