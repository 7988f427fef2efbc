package tui

// Cache is the keyed store of live component instances. Lookups by key are
// idempotent for the lifetime of an entry: the same key yields the same
// instance, with whatever state it has accumulated (scroll position,
// selection, pending work).
//
// The cache may be bounded. Keys can have thousands of potential values (one
// per task, one per log line), so retaining every instance forever would be
// unbounded memory use. When the bound is hit the least recently used entry
// is evicted, except entries pinned by the pin callback. The Navigator pins
// every key on the history stack, which is what keeps eviction a performance
// policy rather than a correctness hazard.
//
// All access happens on the single UI loop; no locking.
type Cache struct {
	entries map[Key]Component
	order   []Key // least recently used first
	maxSize int   // 0 = unbounded
	pinned  func(Key) bool
}

// NewCache returns a cache bounded to maxSize entries (0 for unbounded).
// pinned reports keys that must never be evicted; it may be nil.
func NewCache(maxSize int, pinned func(Key) bool) *Cache {
	if pinned == nil {
		pinned = func(Key) bool { return false }
	}
	return &Cache{
		entries: make(map[Key]Component),
		maxSize: maxSize,
		pinned:  pinned,
	}
}

// Get returns the live instance for key, or nil.
func (c *Cache) Get(key Key) Component {
	comp, ok := c.entries[key]
	if !ok {
		return nil
	}
	c.touch(key)
	return comp
}

// GetOrCreate returns the live instance for key, constructing it via maker on
// first use. Repeated calls with the same key and no intervening eviction
// return the same instance, never a fresh construction.
func (c *Cache) GetOrCreate(key Key, maker Maker, width, height int) (Component, error) {
	if comp, ok := c.entries[key]; ok {
		c.touch(key)
		return comp, nil
	}
	comp, err := maker.Make(key, width, height)
	if err != nil {
		return nil, err
	}
	c.Put(key, comp)
	return comp, nil
}

// Put stores (or replaces) the instance for key. The router uses this to fold
// updated components back in after dispatch.
func (c *Cache) Put(key Key, comp Component) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = comp
	c.enforceBound()
}

// Peek returns the live instance for key, or nil, without marking it used.
// Broadcast delivery reads through this so broadcasts never reorder eviction
// candidates.
func (c *Cache) Peek(key Key) Component {
	return c.entries[key]
}

// SetMaxSize changes the cache bound (0 for unbounded), evicting immediately
// if the cache is over the new bound. Called when a config reload changes
// ui.cache_size.
func (c *Cache) SetMaxSize(maxSize int) {
	c.maxSize = maxSize
	c.enforceBound()
}

// Evict removes the instance for key. A result message that later arrives
// addressed to the key is dropped by the router, not an error.
func (c *Cache) Evict(key Key) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	c.remove(key)
}

// Contains reports whether key has a live instance.
func (c *Cache) Contains(key Key) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of live instances.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Keys returns a snapshot of all live keys in recency order, least recently
// used first. The order is deterministic for a given access history; lookups
// through Get move a key to the end. Broadcast delivery iterates a snapshot
// so every component sees an event exactly once.
func (c *Cache) Keys() []Key {
	keys := make([]Key, len(c.order))
	copy(keys, c.order)
	return keys
}

// touch marks key as most recently used.
func (c *Cache) touch(key Key) {
	c.remove(key)
	c.order = append(c.order, key)
}

func (c *Cache) remove(key Key) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// enforceBound evicts least recently used unpinned entries until the cache
// fits its bound again.
func (c *Cache) enforceBound() {
	if c.maxSize <= 0 {
		return
	}
	for len(c.entries) > c.maxSize {
		evicted := false
		for _, k := range c.order {
			if c.pinned(k) {
				continue
			}
			c.Evict(k)
			evicted = true
			break
		}
		if !evicted {
			// Everything left is pinned; the bound yields to correctness.
			return
		}
	}
}
