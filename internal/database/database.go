package database

import (
	"myzone/internal/config"
	"myzone/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Initialize(cfg *config.Config) (*gorm.DB, error) {
	path, isPG, err := cfg.GetDB()
	if err != nil {
		return nil, err
	}

	var d gorm.Dialector
	if isPG {
		d = postgres.Open(path)
		log.Info().Msg("Using PostgreSQL database")
	} else {
		d = sqlite.Open(path)
		log.Info().Msg("Using SQLite database")
	}

	return open(d, cfg.Environment == "development", 0)
}

// open connects through d and migrates the schema. maxConns of zero
// leaves the pool unbounded.
func open(d gorm.Dialector, verbose bool, maxConns int) (*gorm.DB, error) {
	l := logger.Silent
	if verbose {
		l = logger.Info
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: logger.Default.LogMode(l)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if maxConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, errors.Wrap(err, "failed to access connection pool")
		}
		sqlDB.SetMaxOpenConns(maxConns)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate database")
	}

	return db, nil
}

// OpenMemory returns a migrated in-memory SQLite database. Every
// connection would get its own database, so the pool is held to one.
func OpenMemory() (*gorm.DB, error) {
	return open(sqlite.Open("file::memory:"), false, 1)
}
