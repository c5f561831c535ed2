// Package database opens and migrates synthgen's SQLite store, which
// holds nothing but the generation run history.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"synthgen/internal/config"
	run "synthgen/internal/core/domain/run"
)

// DB wraps the gorm handle and its underlying *sql.DB for pooling and
// health checks.
type DB struct {
	Gorm  *gorm.DB
	SqlDB *sql.DB
}

// NewDB opens the SQLite file at cfg.Database.Path, configures the
// connection pool, and auto-migrates the run history schema.
func NewDB(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger:                 gormLogger.Default,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&run.GenerationRun{}); err != nil {
		return nil, fmt.Errorf("auto-migrate run history: %w", err)
	}

	logger.Info("connected to sqlite database", "path", cfg.Database.Path)
	return &DB{Gorm: db, SqlDB: sqlDB}, nil
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

// Health pings the database.
func (d *DB) Health() error {
	return d.SqlDB.Ping()
}
