// Package database owns the PostgreSQL connection pool. Repositories get a
// database/sql handle bridged onto the pgx pool so sqlc-style query packages
// and watermill-sql can share one set of connections.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/ghuser/geoitems/pkg/logger"
)

const (
	maxConns        = 10
	connMaxIdleTime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Database wraps a pgx pool and the *sql.DB opened on top of it.
type Database struct {
	pool *pgxpool.Pool
	db   *sql.DB
}

// NewPool connects to url, verifies the connection with a ping and returns
// the ready Database.
func NewPool(ctx context.Context, url string, log logger.Logger) (*Database, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("database: parse url: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MaxConnIdleTime = connMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: new pool: %w", err)
	}

	d := &Database{pool: pool, db: stdlib.OpenDBFromPool(pool)}
	if err := d.Ping(ctx); err != nil {
		d.Close()
		return nil, err
	}
	log.InfoContext(ctx, "database: connected", "host", cfg.ConnConfig.Host, "database", cfg.ConnConfig.Database)
	return d, nil
}

// DB returns the database/sql handle backed by the pool.
func (d *Database) DB() *sql.DB {
	return d.db
}

// Ping checks the pool can reach the server.
func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := d.pool.Ping(ctx); err != nil {
		return fmt.Errorf("database: ping: %w", err)
	}
	return nil
}

// Close closes the sql handle and the pool.
func (d *Database) Close() {
	_ = d.db.Close()
	d.pool.Close()
}
