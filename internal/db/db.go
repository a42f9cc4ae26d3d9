package db

import (
	"fmt"

	"review_system/internal/config" // Custom package for configuration
	"review_system/internal/domain" // Importing domain models

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // PostgreSQL driver for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM logger levels
)

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
	gormCfg := &gorm.Config{TranslateError: true} // Map driver errors to gorm.ErrDuplicatedKey and friends
	if cfg.IsProd {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}
	return Setup(dialector, gormCfg)
}

// Setup opens dialector and registers the explicit genre/title join model.
// Tests call it directly with an in-memory dialector.
func Setup(dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := gdb.SetupJoinTable(&domain.Title{}, "Genres", &domain.GenreTitle{}); err != nil {
		return nil, fmt.Errorf("setup genre_titles join table: %w", err)
	}
	return gdb, nil
}
