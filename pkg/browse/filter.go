// Package browse filters and sorts product lists for the shop page.
//
// Package browse 为商店页面过滤和排序产品列表。
package browse

import (
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/errors"
)

// SortKey selects the order of a product list.
type SortKey string

const (
	SortNewest         SortKey = "newest"
	SortPriceLowToHigh SortKey = "priceLowToHigh"
	SortPriceHighToLow SortKey = "priceHighToLow"
	SortTopRated       SortKey = "topRated"
)

// SortKeys lists every supported sort key in menu order.
var SortKeys = []SortKey{SortNewest, SortPriceLowToHigh, SortPriceHighToLow, SortTopRated}

// ParseSortKey converts a string into a SortKey. An empty string means newest.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	k := SortKey(s)
	if !slices.Contains(SortKeys, k) {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownSortKey, s)
	}
	return k, nil
}

// Filter restricts a product list. Zero values mean "no restriction".
//
// Filter 限制产品列表。零值表示"不限制"。
type Filter struct {
	// Category matches the product category exactly when non-empty.
	Category string `json:"category,omitempty"`

	// Brands keeps products whose brand is listed, when non-empty.
	Brands []string `json:"brands,omitempty"`

	// PriceMin and PriceMax bound the price inclusively when valid.
	PriceMin decimal.NullDecimal `json:"price_min"`
	PriceMax decimal.NullDecimal `json:"price_max"`
}

// DefaultPriceMax is the upper end of the shop page price slider.
var DefaultPriceMax = decimal.NewFromInt(2000)

// DefaultFilter returns the shop page starting filter: all categories and
// brands, price range [0, 2000].
func DefaultFilter() Filter {
	return Filter{
		PriceMin: decimal.NewNullDecimal(decimal.Zero),
		PriceMax: decimal.NewNullDecimal(DefaultPriceMax),
	}
}

// WithPriceRange returns a copy of f bounded to [lo, hi].
func (f Filter) WithPriceRange(lo, hi decimal.Decimal) Filter {
	f.Brands = slices.Clone(f.Brands)
	f.PriceMin = decimal.NewNullDecimal(lo)
	f.PriceMax = decimal.NewNullDecimal(hi)
	return f
}

// ToggleBrand returns a copy of f with brand added or removed.
func (f Filter) ToggleBrand(brand string) Filter {
	if i := slices.Index(f.Brands, brand); i >= 0 {
		f.Brands = slices.Delete(slices.Clone(f.Brands), i, i+1)
		return f
	}
	f.Brands = append(slices.Clone(f.Brands), brand)
	return f
}

// Clear returns the default filter. Category, brands and price range are
// all reset.
func (f Filter) Clear() Filter {
	return DefaultFilter()
}

// Match reports whether p passes every restriction of f.
func (f Filter) Match(p catalog.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if len(f.Brands) > 0 && !slices.Contains(f.Brands, p.Brand) {
		return false
	}
	if f.PriceMin.Valid && p.Price.LessThan(f.PriceMin.Decimal) {
		return false
	}
	if f.PriceMax.Valid && p.Price.GreaterThan(f.PriceMax.Decimal) {
		return false
	}
	return true
}

// key renders f with a sort key as a canonical cache key. Brand order does
// not change the result set, so brands are sorted.
func (f Filter) key(sort SortKey) string {
	brands := slices.Clone(f.Brands)
	slices.Sort(brands)
	bound := func(d decimal.NullDecimal) string {
		if !d.Valid {
			return "*"
		}
		return d.Decimal.String()
	}
	return strings.Join([]string{
		f.Category,
		strings.Join(brands, ","),
		bound(f.PriceMin),
		bound(f.PriceMax),
		string(sort),
	}, "|")
}
