// Package catalog is the read-only source of truth for product facts: the
// products, categories and brand list of the storefront, plus the curated
// selections the home, deals and product pages show.
//
// Package catalog 是产品信息的只读数据源：商店的产品、类别和品牌列表，
// 以及首页、优惠页和产品页展示的精选集合。
package catalog

import (
	"fmt"
	"slices"
)

// Limits used by the curated selections.
const (
	NewArrivalsLimit = 4
	RelatedLimit     = 4
	FlashDealsLimit  = 8
	HotDealsLimit    = 8
	ClearanceLimit   = 6

	// HotDealMinRating is the rating a product needs to appear in hot deals.
	HotDealMinRating = 4.5
)

// Store holds the catalog. It is built once and never mutated, so it is
// safe for concurrent readers.
type Store struct {
	products   []Product
	index      map[string]int
	categories []Category
	brands     []string
}

// New builds a Store from already parsed data, preserving catalog order.
func New(products []Product, categories []Category, brands []string) (*Store, error) {
	s := &Store{
		products:   make([]Product, 0, len(products)),
		index:      make(map[string]int, len(products)),
		categories: slices.Clone(categories),
		brands:     slices.Clone(brands),
	}
	for _, p := range products {
		if _, dup := s.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		s.index[p.ID] = len(s.products)
		s.products = append(s.products, p.Clone())
	}
	return s, nil
}

// Get returns the product with the given id.
func (s *Store) Get(id string) (Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i].Clone(), true
}

// Has reports whether id exists in the catalog.
func (s *Store) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Products returns every product in catalog order. No pagination.
func (s *Store) Products() []Product {
	return s.selectWhere(func(Product) bool { return true }, 0)
}

// Len returns the number of products.
func (s *Store) Len() int {
	return len(s.products)
}

// Categories returns the category list.
func (s *Store) Categories() []Category {
	return slices.Clone(s.categories)
}

// Category returns the category with the given id.
func (s *Store) Category(id string) (Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryCounts returns each category with its product count.
func (s *Store) CategoryCounts() []CategoryCount {
	counts := make(map[string]int)
	for _, p := range s.products {
		counts[p.Category]++
	}
	out := make([]CategoryCount, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, CategoryCount{Category: c, Count: counts[c.ID]})
	}
	return out
}

// Brands returns the brand filter list.
func (s *Store) Brands() []string {
	return slices.Clone(s.brands)
}

// Featured returns products flagged as featured.
func (s *Store) Featured() []Product {
	return s.selectWhere(func(p Product) bool { return p.Featured }, 0)
}

// NewArrivals returns the first new products.
func (s *Store) NewArrivals() []Product {
	return s.selectWhere(func(p Product) bool { return p.IsNew }, NewArrivalsLimit)
}

// Deals returns products flagged as deals of the day.
func (s *Store) Deals() []Product {
	return s.selectWhere(func(p Product) bool { return p.IsDeal }, 0)
}

// FlashDeals returns discounted products.
func (s *Store) FlashDeals() []Product {
	return s.selectWhere(Product.HasDiscount, FlashDealsLimit)
}

// HotDeals returns highly rated products.
func (s *Store) HotDeals() []Product {
	return s.selectWhere(func(p Product) bool { return p.Rating >= HotDealMinRating }, HotDealsLimit)
}

// Clearance returns products that carry an original price.
func (s *Store) Clearance() []Product {
	return s.selectWhere(func(p Product) bool { return p.OriginalPrice.Valid }, ClearanceLimit)
}

// Related returns other products sharing the brand or category of p.
func (s *Store) Related(p Product) []Product {
	return s.selectWhere(func(o Product) bool {
		return o.ID != p.ID && (o.Brand == p.Brand || o.Category == p.Category)
	}, RelatedLimit)
}

// selectWhere returns clones of matching products in catalog order.
// A limit of 0 means no limit.
func (s *Store) selectWhere(keep func(Product) bool, limit int) []Product {
	out := make([]Product, 0)
	for _, p := range s.products {
		if limit > 0 && len(out) == limit {
			break
		}
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
