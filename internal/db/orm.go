package db

import (
	"fmt"

	"infinite-experiment/airclock/internal/logging"
	"infinite-experiment/airclock/internal/models/gorm"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
)

// InitPostgresORM opens the GORM connection used by the airport directory
func InitPostgresORM(dsn string) (*gormlib.DB, error) {
	db, err := gormlib.Open(postgres.Open(dsn), &gormlib.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	logging.Info("Connected to Postgres via GORM")
	return db, nil
}

// InitSQLiteORM opens a file-backed SQLite database for local runs and the CLI
func InitSQLiteORM(path string) (*gormlib.DB, error) {
	db, err := gormlib.Open(sqlite.Open(path), &gormlib.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}

	logging.Info("Opened SQLite via GORM", "path", path)
	return db, nil
}

// Migrate creates or updates the airports table
func Migrate(db *gormlib.DB) error {
	if err := db.AutoMigrate(&gorm.Airport{}); err != nil {
		return fmt.Errorf("failed to migrate airports: %w", err)
	}
	return nil
}
