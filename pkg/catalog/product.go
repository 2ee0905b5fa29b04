package catalog

import (
	"maps"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

// SpecOrder is the display order of the named specification attributes.
var SpecOrder = []string{"screen", "cpu", "ram", "storage", "camera", "battery", "os"}

// Product is an immutable catalog entry.
type Product struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Brand          string              `json:"brand"`
	Price          decimal.Decimal     `json:"price"`
	OriginalPrice  decimal.NullDecimal `json:"original_price"`
	Image          string              `json:"image"`
	Rating         float64             `json:"rating"`
	Reviews        int                 `json:"reviews"`
	Colors         []string            `json:"colors"`
	StorageOptions []string            `json:"storage_options"`
	InStock        bool                `json:"in_stock"`
	Category       string              `json:"category"`
	Description    string              `json:"description"`
	Specs          map[string]string   `json:"specs"`
	Featured       bool                `json:"featured"`
	IsNew          bool                `json:"is_new"`
	IsDeal         bool                `json:"is_deal"`
}

// DiscountPercent returns the rounded discount against the original price.
func (p Product) DiscountPercent() int {
	return pricing.DiscountPercent(p.Price, p.OriginalPrice)
}

// HasDiscount reports whether the original price exceeds the price.
func (p Product) HasDiscount() bool {
	return p.OriginalPrice.Valid && p.OriginalPrice.Decimal.GreaterThan(p.Price)
}

// Clone returns a deep copy so callers cannot mutate catalog data.
func (p Product) Clone() Product {
	p.Colors = slices.Clone(p.Colors)
	p.StorageOptions = slices.Clone(p.StorageOptions)
	p.Specs = maps.Clone(p.Specs)
	return p
}

// Category groups products under a tag.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	NameVi string `json:"name_vi"`
	Image  string `json:"image"`
}

// CategoryCount is a category with the number of products tagged with it.
type CategoryCount struct {
	Category
	Count int `json:"count"`
}
