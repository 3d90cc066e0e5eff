// Package cache holds the one large object this tool ever loads: the
// opening book. It keeps the generic load-once-then-reuse pattern used
// elsewhere for big in-memory structures, retargeted to a single key
// space (book file paths) and a single value type (*book.Store).
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Nikque/Edaxbook-findmismatch-error-check/book"
)

type cache struct {
	sync.Mutex
	stores map[string]*book.Store
}

type loadFunc func(path string) (*book.Store, error)

// GlobalBookCache is the process-wide book cache.
var GlobalBookCache *cache

func (c *cache) load(path string, loadFunc loadFunc) error {
	log.Debug().Str("path", path).Msg("loading book into cache")

	store, err := loadFunc(path)
	if err != nil {
		return err
	}
	c.stores[path] = store

	return nil
}

func (c *cache) get(path string, loadFunc loadFunc) (*book.Store, error) {
	var ok bool
	var store *book.Store
	c.Lock()
	defer c.Unlock()
	if store, ok = c.stores[path]; !ok {
		if err := c.load(path, loadFunc); err != nil {
			return nil, err
		}
		return c.stores[path], nil
	}
	log.Debug().Str("path", path).Msg("getting book from cache")

	return store, nil
}

// CreateGlobalBookCache (re)initializes the process-wide book cache,
// discarding anything previously cached.
func CreateGlobalBookCache() {
	GlobalBookCache = &cache{stores: make(map[string]*book.Store)}
}

// Load returns the book at path, loading it via loadFunc on first use
// and reusing it on every subsequent call with the same path.
func Load(path string, loadFunc loadFunc) (*book.Store, error) {
	if GlobalBookCache == nil {
		CreateGlobalBookCache()
	}
	return GlobalBookCache.get(path, loadFunc)
}
