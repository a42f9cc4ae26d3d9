package db

import (
	"fmt"

	"review_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"
	"gorm.io/gorm" // GORM ORM library
)

// Models lists every table in dependency order
var Models = []any{
	&domain.User{},
	&domain.Category{},
	&domain.Genre{},
	&domain.Title{},
	&domain.GenreTitle{},
	&domain.Review{},
	&domain.Comment{},
}

// Migrate performs automatic migration for the database schema
func Migrate(gdb *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := gdb.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
