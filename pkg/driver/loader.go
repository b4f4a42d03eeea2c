package driver

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/CreadorLanda/NajaScript-sub000/pkg/interpreter"
)

// DefaultPreloadLimit bounds the number of modules decoded at once.
const DefaultPreloadLimit = 8

// CachingResolver memoizes successful resolutions of the wrapped resolver.
// It is safe for concurrent use as long as the wrapped resolver is.
type CachingResolver struct {
	next interpreter.ModuleResolver

	mu    sync.RWMutex
	cache map[string]interpreter.ModuleSource
}

func NewCachingResolver(next interpreter.ModuleResolver) *CachingResolver {
	return &CachingResolver{next: next, cache: make(map[string]interpreter.ModuleSource)}
}

func (c *CachingResolver) Resolve(name string) (interpreter.ModuleSource, error) {
	c.mu.RLock()
	src, ok := c.cache[name]
	c.mu.RUnlock()
	if ok {
		return src, nil
	}
	src, err := c.next.Resolve(name)
	if err != nil {
		return interpreter.ModuleSource{}, err
	}
	c.mu.Lock()
	if cached, ok := c.cache[name]; ok {
		src = cached
	} else {
		c.cache[name] = src
	}
	c.mu.Unlock()
	return src, nil
}

// Cached reports whether name has been resolved already.
func (c *CachingResolver) Cached(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.cache[name]
	return ok
}

// Preload resolves and decodes names concurrently, at most limit at a time.
// The first failure cancels the remaining work and is returned.
func (c *CachingResolver) Preload(ctx context.Context, names []string, limit int) error {
	if limit <= 0 {
		limit = DefaultPreloadLimit
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, name := range names {
		name := name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := c.Resolve(name); err != nil {
				return fmt.Errorf("preload %s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	tracer().Debugf("preloaded %d modules", len(names))
	return nil
}
