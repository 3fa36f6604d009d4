// Package store provides the persistent key-value storage behind the tracker.
//
// A Store maps string keys to string values (JSON documents in practice).
// Backends:
//   - Memory: process-local map, used by tests and previews
//   - File: one JSON object on disk, the default for the CLI
//   - Postgres: a single kv table accessed through pgx
//   - Redis: plain string keys under a configurable prefix
//
// There are no transactions and no expiry. Concurrent writers across processes
// are last-write-wins.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("store: key not found")

// Store is a synchronous string key-value map.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Path        string // file backend
	DatabaseURL string // postgres backend
	RedisURL    string // redis backend
	RedisPrefix string
}

// Error describes a failed backend operation.
type Error struct {
	Backend string
	Op      string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s store: %s %q: %v", e.Backend, e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s store: %s: %v", e.Backend, e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Open connects to the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		if opts.Path == "" {
			return nil, fmt.Errorf("file store requires a path")
		}
		return NewFile(opts.Path)
	case BackendPostgres:
		if opts.DatabaseURL == "" {
			return nil, fmt.Errorf("postgres store requires a database URL")
		}
		return ConnectPostgres(ctx, opts.DatabaseURL)
	case BackendRedis:
		if opts.RedisURL == "" {
			return nil, fmt.Errorf("redis store requires a redis URL")
		}
		return ConnectRedis(ctx, opts.RedisURL, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
