package database

import (
	"database/sql"
	"fmt"

	"hivewatch/internal/config"

	_ "github.com/lib/pq"
)

// NewPostgres opens the readings store and verifies the connection. Callers
// must treat an error here as fatal: the server must not serve traffic
// against an uninitialized store.
func NewPostgres(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
