// Package storage defines the metadata store abstraction used by the
// diagnostics endpoint. The service runs fine without a database; when none
// is configured a Noop store stands in.
package storage

import (
	"context"
	"errors"
)

//go:generate mockgen -destination=mock/mockstorage.go -package=mockstorage . MetadataStore

// ErrNotConfigured is returned by the Noop store: no database URL was
// provided, so there is nothing to connect to.
var ErrNotConfigured = errors.New("database is not configured")

// MetadataStore is the minimal surface the diagnostics endpoint needs from a
// backing database.
type MetadataStore interface {
	// Ping verifies connectivity to the database.
	Ping(ctx context.Context) error
	// Collections lists up to limit user table names, ordered by name.
	Collections(ctx context.Context, limit int) ([]string, error)
	// Close releases the underlying connection pool.
	Close() error
}

// Noop is the null MetadataStore used when no database is configured.
type Noop struct{}

// Ping always reports the store as not configured.
func (Noop) Ping(context.Context) error { return ErrNotConfigured }

// Collections always returns an empty list.
func (Noop) Collections(context.Context, int) ([]string, error) { return nil, ErrNotConfigured }

// Close is a no-op.
func (Noop) Close() error { return nil }
