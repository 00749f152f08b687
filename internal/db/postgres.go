package db

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/healthlog/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenPostgres connects through gorm and creates the schema with AutoMigrate;
// the embedded migrations are sqlite dialect.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: newGormLogger()})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(
		&models.DietRecord{},
		&models.ExerciseRecord{},
		&models.SleepRecord{},
		&models.Setting{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate postgres: %w", err)
	}
	return database, nil
}

func Open(driver string, sqlitePath string, postgresDSN string) (*gorm.DB, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverSQLite:
		return OpenSQLite(sqlitePath)
	case DriverPostgres:
		return OpenPostgres(postgresDSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
