package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("key not found")

// Backend identifies a persistent store implementation.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

// Store is a string key-value store that survives process restarts
// (except for the memory backend).
type Store interface {
	// Get returns the raw value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Close releases the underlying resources.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend   Backend
	Path      string // file and sqlite backends
	RedisAddr string
	RedisDB   int
}

// Open creates the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemory(), nil
	case BackendFile:
		return NewFile(opts.Path)
	case BackendSQLite:
		return OpenSQLite(ctx, opts.Path)
	case BackendRedis:
		return OpenRedis(ctx, opts.RedisAddr, opts.RedisDB)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// prefixed scopes every key of the wrapped store under a fixed prefix.
type prefixed struct {
	prefix string
	next   Store
}

// WithPrefix returns a view of s where every key is stored as prefix+":"+key.
// Closing the view does not close s.
func WithPrefix(s Store, prefix string) Store {
	prefix = strings.TrimSuffix(prefix, ":")
	if prefix == "" {
		return s
	}
	return &prefixed{prefix: prefix + ":", next: s}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.next.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Close() error { return nil }
