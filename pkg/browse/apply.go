package browse

import (
	"cmp"
	"slices"

	"github.com/Humphrey-He/mtstore/pkg/catalog"
)

// Apply filters products and sorts the survivors. The input slice is never
// modified; ties keep their input order.
//
// Apply 过滤产品并对结果排序。输入切片不会被修改；相等元素保持输入顺序。
//
// Parameters:
//   - products: The products in catalog order
//   - f: The filter to apply
//   - sort: The sort order of the result
//
// Returns:
//   - []catalog.Product: A new slice holding the matching products
func Apply(products []catalog.Product, f Filter, sort SortKey) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	Sort(out, sort)
	return out
}

// Sort orders products in place with a stable sort. Unknown keys leave the
// slice untouched.
func Sort(products []catalog.Product, sort SortKey) {
	switch sort {
	case SortPriceLowToHigh:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHighToLow:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortTopRated:
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
	case SortNewest:
		// stable partition: new arrivals first
		slices.SortStableFunc(products, func(a, b catalog.Product) int {
			return rankNew(a) - rankNew(b)
		})
	}
}

func rankNew(p catalog.Product) int {
	if p.IsNew {
		return 0
	}
	return 1
}
