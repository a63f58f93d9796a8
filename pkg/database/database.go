package database

import (
	"fmt"
	"time"

	"mangoadmi/internal/config"
	"mangoadmi/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Gateway owns the connection pool shared by every repository.
type Gateway struct {
	db *gorm.DB
}

// Connect opens the Postgres pool described by cfg and verifies it is reachable.
func Connect(cfg *config.Config) (*Gateway, error) {
	return Open(postgres.Open(cfg.DatabaseURL), cfg.Database)
}

// Open opens a pool on any gorm dialector, applies pool sizing and pings it.
func Open(dialector gorm.Dialector, cfg config.DatabaseConfig) (*Gateway, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	g := &Gateway{db: db}
	if err := g.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return g, nil
}

// InitializeSchema creates the users and contact_forms tables when absent.
// Safe to call on every startup.
func (g *Gateway) InitializeSchema() error {
	if err := g.db.AutoMigrate(&models.User{}, &models.ContactForm{}); err != nil {
		return fmt.Errorf("failed to initialize tables: %w", err)
	}
	return nil
}

// Query runs a parameterized statement and scans the resulting rows into dest.
func (g *Gateway) Query(dest interface{}, sql string, params ...interface{}) error {
	if err := g.db.Raw(sql, params...).Scan(dest).Error; err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	return nil
}

// Ping checks that a connection can be acquired.
func (g *Gateway) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}

// DB exposes the pool to repositories.
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Close releases every pooled connection.
func (g *Gateway) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats reports pool usage for the health endpoint.
func (g *Gateway) Stats() (open, inUse int, waitDuration time.Duration) {
	sqlDB, err := g.db.DB()
	if err != nil {
		return 0, 0, 0
	}
	s := sqlDB.Stats()
	return s.OpenConnections, s.InUse, s.WaitDuration
}
