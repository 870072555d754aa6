// Package postgres implements storage.MetadataStore on top of PostgreSQL
// using pgx for connectivity and goqu for query building.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	// goqu postgres dialect registration.
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// Options holds the connection settings for a PgSQL store.
type Options struct {
	// URL is a postgres connection string (postgres://...).
	URL string
	// Name overrides the database name from the URL when non-empty.
	Name string
}

// PgSQL is a MetadataStore backed by a pgx connection pool.
type PgSQL struct {
	// DB is the stdlib-compatible handle opened from the pool.
	DB *sql.DB
	// Builder is a goqu database wrapper for building and executing queries.
	Builder *goqu.Database
	// Pool is the underlying pgx pool.
	Pool *pgxpool.Pool
}

// New connects to the database described by opt and returns a ready store.
func New(ctx context.Context, opt Options) (*PgSQL, error) {
	cfg, err := pgxpool.ParseConfig(opt.URL)
	if err != nil {
		return nil, fmt.Errorf("could not parse database URL: %w", err)
	}

	if opt.Name != "" {
		cfg.ConnConfig.Database = opt.Name
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create connection pool: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	return &PgSQL{
		DB:      sqlDB,
		Builder: goqu.Dialect("postgres").DB(sqlDB),
		Pool:    pool,
	}, nil
}

// Ping verifies connectivity to the database.
func (p *PgSQL) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Collections lists up to limit public table names, ordered by name.
func (p *PgSQL) Collections(ctx context.Context, limit int) ([]string, error) {
	var names []string

	err := p.Builder.
		From(goqu.T("tables").Schema("information_schema")).
		Select("table_name").
		Where(goqu.I("table_schema").Eq("public")).
		Order(goqu.I("table_name").Asc()).
		Limit(uint(limit)).
		ScanValsContext(ctx, &names)
	if err != nil {
		return nil, fmt.Errorf("could not list tables: %w", err)
	}

	return names, nil
}

// Close closes the stdlib handle and the pool.
func (p *PgSQL) Close() error {
	err := p.DB.Close()
	p.Pool.Close()

	return err
}
