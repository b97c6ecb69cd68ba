// Package db contains the gorm connection setup shared by both services
package db

import (
	"fmt"

	"taskhub/collab-api/config"
	"taskhub/collab-api/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBDSN)
	}

	db, err := gorm.Open(dialector)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database, %w", cfg.DBDriver, err)
	}

	err = db.AutoMigrate(
		model.User{},
		model.UserProfile{},
		model.VerificationCode{},
		model.BlacklistedToken{},
		model.Project{},
		model.Board{},
		model.Task{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
