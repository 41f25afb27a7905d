package iconloader

import (
	"strconv"
	"sync"

	"github.com/codeGROOVE-dev/eduicons/pkg/icon"
)

// cache stores loaded handles to avoid redundant decoding.
type cache struct {
	handles    map[string]*icon.Handle
	mu         sync.RWMutex
	maxEntries int
}

func newCache(maxEntries int) *cache {
	return &cache{handles: make(map[string]*icon.Handle), maxEntries: maxEntries}
}

func (c *cache) lookup(key string) (*icon.Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.handles[key]
	return h, ok
}

func (c *cache) put(key string, h *icon.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Simple size limit
	if len(c.handles) >= c.maxEntries {
		clear(c.handles)
	}

	c.handles[key] = h
}

func (c *cache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.handles)
}

// cacheKey builds the map key for a load. A non-zero custom key replaces the
// path so callers can share one entry between aliases.
func cacheKey(kind icon.Kind, path string, custom int) string {
	if custom != 0 {
		return kind.String() + "#" + strconv.Itoa(custom)
	}
	return kind.String() + ":" + path
}
