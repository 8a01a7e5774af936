package collapse

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/sidenav/pkg/store"
)

type failingStore struct {
	getErr error
	setErr error
	sets   int
}

func (f *failingStore) Get(context.Context, string) (string, error) { return "", f.getErr }

func (f *failingStore) Set(context.Context, string, string) error {
	f.sets++
	return f.setErr
}

func (f *failingStore) Close() error { return nil }

type countingCounter struct {
	calls map[string]int
}

func (c *countingCounter) Increment(val ...string) {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[val[0]]++
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestInitializeDefaultsToExpanded(t *testing.T) {
	root := NewRootElement()
	m := New(NewCache(), store.NewMemory(), WithMarker(root))

	assert.False(t, m.Initialize(context.Background()))
	_, ok := root.Attr(MarkerAttr)
	assert.False(t, ok)
}

func TestInitializeReadsStoreAndFillsCache(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, StorageKey, "true"))

	cache := NewCache()
	root := NewRootElement()
	m := New(cache, st, WithMarker(root))

	assert.True(t, m.Initialize(ctx))

	v, ok := cache.Load()
	assert.True(t, ok)
	assert.True(t, v)

	attr, ok := root.Attr(MarkerAttr)
	assert.True(t, ok)
	assert.Equal(t, "true", attr)
}

func TestInitializePrefersCache(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Set(ctx, StorageKey, "true"))

	cache := NewCache()
	cache.Store(false)

	assert.False(t, New(cache, st).Initialize(ctx))
}

func TestInitializeRecoversFromStoreFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		store store.Store
		op    string
	}{
		{name: "read error", store: &failingStore{getErr: errors.New("storage disabled")}, op: "read"},
		{name: "malformed", store: memoryWith(t, StorageKey, "yes please"), op: "parse"},
		{name: "json null", store: memoryWith(t, StorageKey, "null")},
		{name: "nil store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := &countingCounter{}
			cache := NewCache()
			m := New(cache, tt.store, WithLogger(quietLogger()), WithFailureCounter(failures))

			assert.False(t, m.Initialize(ctx))

			_, cached := cache.Load()
			assert.False(t, cached)
			if tt.op != "" {
				assert.Equal(t, 1, failures.calls[tt.op])
			}
		})
	}
}

func TestToggleWritesThroughAndNotifies(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	cache := NewCache()
	root := NewRootElement()

	var notified []bool
	m := New(cache, st, WithMarker(root), WithListener(func(c bool) { notified = append(notified, c) }))

	next := m.Toggle(ctx, false)
	assert.True(t, next)

	raw, err := st.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	v, _ := cache.Load()
	assert.True(t, v)
	_, ok := root.Attr(MarkerAttr)
	assert.True(t, ok)

	next = m.Toggle(ctx, next)
	assert.False(t, next)
	_, ok = root.Attr(MarkerAttr)
	assert.False(t, ok)

	assert.Equal(t, []bool{true, false}, notified)
}

func TestToggleIgnoresWriteFailure(t *testing.T) {
	failing := &failingStore{getErr: store.ErrNotFound, setErr: errors.New("quota exceeded")}
	failures := &countingCounter{}
	cache := NewCache()
	m := New(cache, failing, WithLogger(quietLogger()), WithFailureCounter(failures))

	assert.True(t, m.Toggle(context.Background(), false))
	assert.Equal(t, 1, failing.sets)
	assert.Equal(t, 1, failures.calls["write"])

	// the cache still carries the new state for this session
	assert.True(t, New(cache, failing).Initialize(context.Background()))
}

func TestToggleParity(t *testing.T) {
	ctx := context.Background()

	for _, initial := range []bool{false, true} {
		for n := 0; n <= 7; n++ {
			st := store.NewMemory()
			if initial {
				require.NoError(t, st.Set(ctx, StorageKey, "true"))
			}

			// each toggle comes from a fresh mount sharing only the store
			for i := 0; i < n; i++ {
				m := New(NewCache(), st)
				m.Toggle(ctx, m.Initialize(ctx))
			}

			got := New(NewCache(), st).Initialize(ctx)
			want := initial
			if n%2 == 1 {
				want = !initial
			}
			assert.Equal(t, want, got, "initial=%v toggles=%d", initial, n)
		}
	}
}

func TestSessionsBounded(t *testing.T) {
	s := NewSessions(2)

	a := s.Get("a")
	assert.Same(t, a, s.Get("a"))

	s.Get("b")
	s.Get("c")
	assert.Equal(t, 2, s.Len())
}

func TestRootElementAttrsSorted(t *testing.T) {
	root := NewRootElement()
	root.SetAttr("lang", "en")
	root.SetAttr(MarkerAttr, "true")

	assert.Equal(t, []Attr{
		{Name: MarkerAttr, Value: "true"},
		{Name: "lang", Value: "en"},
	}, root.Attrs())
}

func memoryWith(t *testing.T, key, value string) store.Store {
	t.Helper()
	st := store.NewMemory()
	require.NoError(t, st.Set(context.Background(), key, value))
	return st
}
