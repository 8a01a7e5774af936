package collapse

import "sync"

// Cache is a single-slot, last-writer-wins holder for the collapse state of
// one running application instance. It lets a remounted panel start from the
// value already known in this session instead of the default.
type Cache struct {
	mu    sync.RWMutex
	value bool
	set   bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Load returns the cached value and whether one has been stored.
func (c *Cache) Load() (collapsed, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.set
}

// Store replaces the cached value.
func (c *Cache) Store(collapsed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = collapsed
	c.set = true
}

// DefaultMaxSessions bounds the number of per-client caches kept by Sessions.
const DefaultMaxSessions = 10000

// Sessions keeps one Cache per client. When full, an arbitrary cache is
// dropped; the client then falls back to the persistent store.
type Sessions struct {
	mu     sync.Mutex
	max    int
	caches map[string]*Cache
}

// NewSessions returns a registry holding at most max caches.
// A non-positive max uses DefaultMaxSessions.
func NewSessions(max int) *Sessions {
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &Sessions{max: max, caches: make(map[string]*Cache)}
}

// Get returns the cache for id, creating it when missing.
func (s *Sessions) Get(id string) *Cache {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.caches[id]; ok {
		return c
	}
	if len(s.caches) >= s.max {
		for k := range s.caches {
			delete(s.caches, k)
			break
		}
	}
	c := NewCache()
	s.caches[id] = c
	return c
}

// Len returns the number of caches held.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.caches)
}
