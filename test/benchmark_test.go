package test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/cart"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/navigation"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
	"github.com/Humphrey-He/mtstore/pkg/storefront"
)

// largeCatalog builds a catalog of n generated products over the default
// categories and brands.
//
// largeCatalog 基于默认类别和品牌生成包含n个产品的目录。
func largeCatalog(b *testing.B, n int) *catalog.Store {
	b.Helper()
	base := catalog.Default()
	brands := base.Brands()
	categories := base.Categories()

	rng := rand.New(rand.NewSource(42))
	products := make([]catalog.Product, n)
	for i := range products {
		price := decimal.NewFromInt(int64(rng.Intn(2000) + 1))
		products[i] = catalog.Product{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Product %d", i),
			Brand:    brands[rng.Intn(len(brands))],
			Price:    price,
			Rating:   float64(rng.Intn(50)) / 10,
			Category: categories[rng.Intn(len(categories))].ID,
			IsNew:    rng.Intn(4) == 0,
			InStock:  true,
		}
	}
	store, err := catalog.New(products, categories, brands)
	if err != nil {
		b.Fatalf("Failed to build catalog: %v", err)
	}
	return store
}

// BenchmarkBrowseApply benchmarks filtering and sorting without the result
// cache, over catalogs of increasing size.
//
// BenchmarkBrowseApply 在不同大小的目录上对不带结果缓存的过滤和排序进行基准测试。
func BenchmarkBrowseApply(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		store := largeCatalog(b, size)
		products := store.Products()
		filter := browse.DefaultFilter().ToggleBrand("Apple").ToggleBrand("Samsung")

		for _, sort := range browse.SortKeys {
			b.Run(fmt.Sprintf("Size=%d/Sort=%s", size, sort), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					browse.Apply(products, filter, sort)
				}
			})
		}
	}
}

// BenchmarkBrowseEngine benchmarks the memoised engine with a small set of
// repeated queries, the shop page access pattern.
//
// BenchmarkBrowseEngine 使用少量重复查询对带缓存的引擎进行基准测试，模拟商店页面的访问模式。
func BenchmarkBrowseEngine(b *testing.B) {
	store := largeCatalog(b, 10000)
	engine, err := browse.NewEngine(store, 64)
	if err != nil {
		b.Fatalf("Failed to create engine: %v", err)
	}

	var filters []browse.Filter
	for _, c := range store.Categories() {
		f := browse.DefaultFilter()
		f.Category = c.ID
		filters = append(filters, f, f.WithPriceRange(decimal.NewFromInt(100), decimal.NewFromInt(900)))
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			engine.Browse(filters[i%len(filters)], browse.SortKeys[i%len(browse.SortKeys)])
			i++
		}
	})

	stats := engine.Stats()
	if total := stats.Hits + stats.Misses; total > 0 {
		b.ReportMetric(float64(stats.Hits)/float64(total), "hit-ratio")
	}
}

// BenchmarkPricingSummarize benchmarks cart totals for carts of increasing size.
//
// BenchmarkPricingSummarize 对不同大小购物车的总价计算进行基准测试。
func BenchmarkPricingSummarize(b *testing.B) {
	rules := pricing.DefaultRules()
	store := catalog.Default()

	for _, n := range []int{1, 10, 100} {
		c := cart.New()
		products := store.Products()
		for i := 0; i < n; i++ {
			p := products[i%len(products)]
			c.Add(p, i%3+1, cart.Options{Storage: fmt.Sprintf("%d", i)})
		}
		lines := c.Lines()

		b.Run(fmt.Sprintf("Lines=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				pricing.Summarize(rules, lines)
			}
		})
	}
}

// BenchmarkSessionRender benchmarks rendering each view of a session with a
// filled cart.
//
// BenchmarkSessionRender 对购物车已填充的会话渲染各个视图进行基准测试。
func BenchmarkSessionRender(b *testing.B) {
	s, err := storefront.New(catalog.Default())
	if err != nil {
		b.Fatalf("Failed to create session: %v", err)
	}
	defer s.Close()
	for _, id := range []string{"1", "4", "7", "8"} {
		if _, err := s.AddToCart(id, 2, cart.Options{}); err != nil {
			b.Fatalf("Failed to add product: %v", err)
		}
	}

	for _, v := range navigation.Views() {
		params := navigation.Params{"id": "7"}
		b.Run(v.String(), func(b *testing.B) {
			s.Navigate(v, params)
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := s.Render(); err != nil {
					b.Fatalf("Failed to render: %v", err)
				}
			}
		})
	}
}

// BenchmarkSessionAddToCart benchmarks concurrent adds to one session.
//
// BenchmarkSessionAddToCart 对同一会话的并发加购进行基准测试。
func BenchmarkSessionAddToCart(b *testing.B) {
	s, err := storefront.New(catalog.Default())
	if err != nil {
		b.Fatalf("Failed to create session: %v", err)
	}
	defer s.Close()

	ids := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := s.AddToCart(ids[i%len(ids)], 1, cart.Options{}); err != nil {
				b.Errorf("Failed to add product: %v", err)
				return
			}
			i++
		}
	})
}
