package commands

import (
	"fmt"

	"github.com/Urbanbaseprops/property-manager/internal/domain/models"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/config"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/database"
	"github.com/Urbanbaseprops/property-manager/internal/infrastructure/docstore"
	Logger "github.com/Urbanbaseprops/property-manager/pkg/logger"
)

// openDatabase opens the pool and brings the schema up to date
func openDatabase(cfg *config.Config) (*database.ConnectionPool, *docstore.GormStore, error) {
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		return nil, nil, err
	}
	store := docstore.NewGormStore(pool.GetDB())
	if err := migrate(pool, store, cfg.DBMigrationMode); err != nil {
		_ = pool.Close()
		return nil, nil, err
	}
	return pool, store, nil
}

// migrate creates the users and documents tables. In "drop" mode both are recreated empty.
func migrate(pool *database.ConnectionPool, store *docstore.GormStore, mode string) error {
	db := pool.GetDB()
	if mode == "drop" {
		Logger.Warning("migration mode is drop: recreating users and documents tables")
		if err := db.Migrator().DropTable(&models.User{}, &docstore.Document{}); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	if err := store.Migrate(); err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	Logger.Info("database migration completed")
	return nil
}
