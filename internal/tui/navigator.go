package tui

import "fmt"

// Navigator owns the ordered history of visited component keys and the cache
// of live instances. The top of history is the "current" component: the one
// that receives current-routed events and is rendered in the body.
//
// History is the source of truth for user intent; the cache is a performance
// optimization. A key on the history stack whose instance has been evicted is
// transparently re-made on access, never an error.
type Navigator struct {
	history []Key
	cache   *Cache
	makers  map[Kind]Maker

	// Content area components are sized to on construction.
	width, height int
}

// NewNavigator builds a navigator rooted at first. The root entry can never
// be popped, so history is never empty. cacheSize bounds the component cache
// (0 for unbounded).
func NewNavigator(first Key, makers map[Kind]Maker, cacheSize int) (*Navigator, error) {
	n := &Navigator{makers: makers}
	n.cache = NewCache(cacheSize, n.onHistory)

	maker, ok := makers[first.Kind]
	if !ok {
		return nil, fmt.Errorf("no maker registered for %s", first)
	}
	if _, err := n.cache.GetOrCreate(first, maker, 0, 0); err != nil {
		return nil, fmt.Errorf("making root component %s: %w", first, err)
	}
	n.history = []Key{first}
	return n, nil
}

// SetSize records the content area dimensions handed to makers.
func (n *Navigator) SetSize(width, height int) {
	n.width = width
	n.height = height
}

// Push appends key to history, lazily materializing its component. On error
// (unknown kind, maker failure) history is left untouched and the previous
// entry remains current.
func (n *Navigator) Push(key Key) error {
	if _, err := n.materialize(key); err != nil {
		return err
	}
	n.history = append(n.history, key)
	return nil
}

// Pop removes the top history entry and returns true. Popping the root entry
// is refused: history is never empty.
//
// The popped component stays cached so navigating back to it later finds its
// state intact; a bounded cache may still evict it once it is off the stack.
func (n *Navigator) Pop() bool {
	if len(n.history) <= 1 {
		return false
	}
	n.history = n.history[:len(n.history)-1]
	return true
}

// Replace swaps the current entry for key without growing history depth, used
// for sideways transitions such as re-filtering the same logical view. On
// error history is untouched.
func (n *Navigator) Replace(key Key) error {
	if _, err := n.materialize(key); err != nil {
		return err
	}
	n.history[len(n.history)-1] = key
	return nil
}

// Current returns the key at the top of history.
func (n *Navigator) Current() Key {
	return n.history[len(n.history)-1]
}

// CurrentComponent resolves the current key to its live instance, re-making
// it if an aggressive eviction policy removed it.
func (n *Navigator) CurrentComponent() (Component, error) {
	return n.materialize(n.Current())
}

// Depth returns the number of history entries.
func (n *Navigator) Depth() int {
	return len(n.history)
}

// Cache exposes the component cache for routing and rendering.
func (n *Navigator) Cache() *Cache {
	return n.cache
}

// materialize returns the live instance for key, constructing it on demand.
func (n *Navigator) materialize(key Key) (Component, error) {
	maker, ok := n.makers[key.Kind]
	if !ok {
		return nil, fmt.Errorf("no maker registered for %s", key)
	}
	comp, err := n.cache.GetOrCreate(key, maker, n.width, n.height)
	if err != nil {
		return nil, fmt.Errorf("making component %s: %w", key, err)
	}
	return comp, nil
}

// onHistory reports whether key is referenced by the history stack. Such keys
// are pinned in the cache: evicting the current component out from under the
// user would discard visible state.
func (n *Navigator) onHistory(key Key) bool {
	for _, k := range n.history {
		if k == key {
			return true
		}
	}
	return false
}
