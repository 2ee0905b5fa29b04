package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	s := Default()

	assert.Equal(t, 8, s.Len())
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8"}, ids(s.Products()))
	assert.Equal(t, []string{"Apple", "Samsung", "Google", "OnePlus", "Xiaomi"}, s.Brands())

	p, ok := s.Get("1")
	require.True(t, ok)
	assert.Equal(t, "iPhone 15 Pro Max", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(1199)))
	require.True(t, p.OriginalPrice.Valid)
	assert.True(t, p.OriginalPrice.Decimal.Equal(decimal.NewFromInt(1299)))
	assert.Equal(t, 8, p.DiscountPercent())
	assert.Equal(t, "A17 Pro Chip", p.Specs["cpu"])

	airpods, ok := s.Get("7")
	require.True(t, ok)
	assert.False(t, airpods.OriginalPrice.Valid)
	assert.Empty(t, airpods.StorageOptions)
	assert.NotNil(t, airpods.StorageOptions)
	assert.Equal(t, 0, airpods.DiscountPercent())
}

func TestGetUnknown(t *testing.T) {
	s := Default()
	_, ok := s.Get("999")
	assert.False(t, ok)
	assert.False(t, s.Has("999"))
	assert.True(t, s.Has("8"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := Default()

	p, _ := s.Get("1")
	p.Colors[0] = "Changed"
	p.Specs["cpu"] = "Changed"

	again, _ := s.Get("1")
	assert.Equal(t, "Natural Titanium", again.Colors[0])
	assert.Equal(t, "A17 Pro Chip", again.Specs["cpu"])

	brands := s.Brands()
	brands[0] = "Changed"
	assert.Equal(t, "Apple", s.Brands()[0])
}

func TestCuratedSelections(t *testing.T) {
	s := Default()

	assert.Equal(t, []string{"1", "2", "3"}, ids(s.Featured()))
	assert.Equal(t, []string{"1", "2", "4"}, ids(s.NewArrivals()))
	assert.Equal(t, []string{"1", "3", "6"}, ids(s.Deals()))
	assert.Equal(t, []string{"1", "3", "6"}, ids(s.FlashDeals()))
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7"}, ids(s.HotDeals()))
	assert.Equal(t, []string{"1", "3", "6"}, ids(s.Clearance()))
}

func TestRelated(t *testing.T) {
	s := Default()

	airpods, _ := s.Get("7")
	related := s.Related(airpods)
	assert.Equal(t, []string{"1", "6", "8"}, ids(related))

	phone, _ := s.Get("2")
	related = s.Related(phone)
	assert.Len(t, related, RelatedLimit)
	assert.NotContains(t, ids(related), "2")
}

func TestCategoryCounts(t *testing.T) {
	s := Default()
	counts := s.CategoryCounts()
	require.Len(t, counts, 3)

	got := map[string]int{}
	for _, c := range counts {
		got[c.ID] = c.Count
	}
	assert.Equal(t, map[string]int{"smartphones": 6, "refurbished": 0, "accessories": 2}, got)

	c, ok := s.Category("accessories")
	require.True(t, ok)
	assert.Equal(t, "Phụ Kiện", c.NameVi)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	_, err := New([]Product{{ID: "1"}, {ID: "1"}}, nil, nil)
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", "products:\n  - name: x\n    price: \"1\"\n"},
		{"bad price", "products:\n  - id: \"1\"\n    price: abc\n"},
		{"negative price", "products:\n  - id: \"1\"\n    price: \"-1\"\n"},
		{"rating out of range", "products:\n  - id: \"1\"\n    price: \"1\"\n    rating: 6\n"},
		{"bad original price", "products:\n  - id: \"1\"\n    price: \"1\"\n    original_price: x\n"},
		{"original price not above price", "products:\n  - id: \"1\"\n    price: \"10\"\n    original_price: \"10\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadMinimal(t *testing.T) {
	s, err := Load(strings.NewReader("brands: [Acme]\nproducts:\n  - id: a\n    name: Widget\n    price: \"9.99\"\n"))
	require.NoError(t, err)

	p, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "9.99", p.Price.String())
	assert.NotNil(t, p.Colors)
	assert.NotNil(t, p.Specs)
}
