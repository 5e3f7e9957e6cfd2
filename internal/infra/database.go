package infra

import (
	"fmt"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection backed by pgx and migrates the schema.
// gen_random_uuid() needs pgcrypto on Postgres < 13, so the extension is
// created before AutoMigrate runs.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// RunMigrations creates or updates all tables. Also used by the integration
// tests against a throwaway container.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		return err
	}
	return db.AutoMigrate(
		&model.Client{},
		&model.User{},
		&model.Product{},
		&model.ProductMovement{},
		&model.Supply{},
		&model.SupplyMovement{},
		&model.ProductSupply{},
		&model.Order{},
		&model.OrderDetail{},
		&model.Installment{},
		&model.Payment{},
		&model.ProductionOrder{},
	)
}
