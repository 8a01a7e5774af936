// Package collapse owns the collapsed/expanded state of the navigation panel.
//
// The state is read from a session cache, then the persistent store, then
// defaults to expanded. Every toggle writes through to both, and the root
// element marker is updated in the same call so a renderer never emits a
// document whose marker disagrees with the state it read.
package collapse

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/mchmarny/sidenav/pkg/metric"
	"github.com/mchmarny/sidenav/pkg/store"
)

// StorageKey is the persistent store key holding the JSON-encoded state.
const StorageKey = "sidebarCollapsed"

// Listener is notified with the new state after every toggle.
type Listener func(collapsed bool)

// Manager reads and toggles the collapse state. A Manager is cheap and is
// meant to be created per render; the Cache and Store it wraps are the
// long-lived parts.
type Manager struct {
	cache    *Cache
	store    store.Store
	marker   Marker
	listener Listener
	logger   *slog.Logger
	failures metric.IncrementalCounter
}

// Option configures a Manager.
type Option func(*Manager)

// WithMarker sets the root element updated on every state change.
func WithMarker(m Marker) Option {
	return func(mg *Manager) { mg.marker = m }
}

// WithListener sets the callback invoked after every toggle.
func WithListener(l Listener) Option {
	return func(mg *Manager) { mg.listener = l }
}

// WithLogger sets the logger used to report recovered store failures.
func WithLogger(l *slog.Logger) Option {
	return func(mg *Manager) {
		if l != nil {
			mg.logger = l
		}
	}
}

// WithFailureCounter counts recovered store failures by operation.
func WithFailureCounter(c metric.IncrementalCounter) Option {
	return func(mg *Manager) {
		if c != nil {
			mg.failures = c
		}
	}
}

// New returns a manager over cache and st. A nil cache gets a private one;
// a nil store behaves like disabled storage.
func New(cache *Cache, st store.Store, opts ...Option) *Manager {
	if cache == nil {
		cache = NewCache()
	}

	m := &Manager{
		cache:    cache,
		store:    st,
		logger:   slog.Default(),
		failures: metric.Discard,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Initialize returns the current state and applies it to the marker.
// It never fails: an unreadable or malformed stored value counts as absent.
func (m *Manager) Initialize(ctx context.Context) bool {
	collapsed := m.read(ctx)
	m.SyncMarker(collapsed)
	return collapsed
}

func (m *Manager) read(ctx context.Context) bool {
	if v, ok := m.cache.Load(); ok {
		return v
	}

	if m.store == nil {
		return false
	}

	raw, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			m.logger.Warn("reading collapse state", "error", err)
			m.failures.Increment("read")
		}
		return false
	}

	var v *bool
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		m.logger.Warn("ignoring malformed collapse state", "value", raw, "error", err)
		m.failures.Increment("parse")
		return false
	}
	if v == nil {
		return false
	}

	m.cache.Store(*v)
	return *v
}

// Toggle flips current, writes the result through to the store and cache,
// updates the marker and notifies the listener. A failed store write is
// logged and otherwise ignored.
func (m *Manager) Toggle(ctx context.Context, current bool) bool {
	next := !current

	if m.store != nil {
		if err := m.store.Set(ctx, StorageKey, strconv.FormatBool(next)); err != nil {
			m.logger.Warn("writing collapse state", "collapsed", next, "error", err)
			m.failures.Increment("write")
		}
	}
	m.cache.Store(next)
	m.SyncMarker(next)

	if m.listener != nil {
		m.listener(next)
	}

	return next
}

// SyncMarker sets MarkerAttr on the root element when collapsed and removes
// it otherwise. It is a no-op without a marker.
func (m *Manager) SyncMarker(collapsed bool) {
	if m.marker == nil {
		return
	}
	if collapsed {
		m.marker.SetAttr(MarkerAttr, "true")
		return
	}
	m.marker.RemoveAttr(MarkerAttr)
}
