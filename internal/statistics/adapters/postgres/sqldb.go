package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// SQLDB is the DB the statistics repository reads through. *sql.Rows already
// satisfies RowScanner, so rows are handed back as they are.
type SQLDB struct {
	db *sql.DB
}

var _ DB = (*SQLDB)(nil)

// Open connects to Postgres, applies the pool settings and pings.
func Open(ctx context.Context, dsn string, pool PoolOptions) (*SQLDB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if pool.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return NewSQLDB(db), nil
}

// NewSQLDB wraps an already opened pool.
func NewSQLDB(db *sql.DB) *SQLDB {
	return &SQLDB{db: db}
}

func (s *SQLDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *SQLDB) Close() error {
	return s.db.Close()
}
