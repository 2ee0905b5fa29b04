package browse

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/Humphrey-He/mtstore/pkg/catalog"
)

// DefaultCacheSize is the number of filter/sort results an Engine keeps.
const DefaultCacheSize = 128

// Source provides the product list an Engine browses.
type Source interface {
	Products() []catalog.Product
}

// Engine memoises Apply over a static catalog. The catalog never changes
// after startup, so a result is valid for the lifetime of the Engine.
//
// Engine 在静态目录上缓存Apply的结果。目录启动后不再变化，
// 因此结果在Engine的生命周期内始终有效。
type Engine struct {
	products []catalog.Product
	cache    *lru.Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats reports cache effectiveness.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Size   int    `json:"size"`
}

// NewEngine creates an Engine over src with room for size results.
//
// Parameters:
//   - src: The catalog to browse
//   - size: The result cache capacity; values < 1 use DefaultCacheSize
//
// Returns:
//   - *Engine: The engine
//   - error: An error if the cache cannot be created
func NewEngine(src Source, size int) (*Engine, error) {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create browse cache: %w", err)
	}
	return &Engine{
		products: src.Products(),
		cache:    cache,
	}, nil
}

// Browse returns the filtered and sorted products. The returned slice is
// owned by the caller.
func (e *Engine) Browse(f Filter, sort SortKey) []catalog.Product {
	key := f.key(sort)
	if v, ok := e.cache.Get(key); ok {
		e.hits.Add(1)
		return cloneAll(v.([]catalog.Product))
	}
	e.misses.Add(1)
	res := Apply(e.products, f, sort)
	e.cache.Add(key, res)
	return cloneAll(res)
}

func cloneAll(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	for i, p := range products {
		out[i] = p.Clone()
	}
	return out
}

// Stats returns the cache counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Hits:   e.hits.Load(),
		Misses: e.misses.Load(),
		Size:   e.cache.Len(),
	}
}

// Purge drops every cached result.
func (e *Engine) Purge() {
	e.cache.Purge()
}
