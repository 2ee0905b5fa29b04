package storefront

import (
	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/cart"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/checkout"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
	"github.com/Humphrey-He/mtstore/pkg/navigation"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

// Page is the rendered current view. Content holds one of the view models
// below, or a *NotFound.
type Page struct {
	View     navigation.View `json:"view"`
	Title    string          `json:"title"`
	Language i18n.Language   `json:"language"`
	Header   Header          `json:"header"`
	Content  any             `json:"content"`
}

// Header is the summary shown on every page.
type Header struct {
	CartItems     int `json:"cart_items"`
	WishlistCount int `json:"wishlist_count"`
}

// NotFound replaces a view whose subject is missing.
type NotFound struct {
	Message   string          `json:"message"`
	BackLabel string          `json:"back_label"`
	Back      navigation.View `json:"back"`
}

// ProductCard is a product as listed in a grid.
type ProductCard struct {
	catalog.Product
	PriceLabel         string `json:"price_label"`
	OriginalPriceLabel string `json:"original_price_label,omitempty"`
	DiscountPercent    int    `json:"discount_percent"`
	InWishlist         bool   `json:"in_wishlist"`
}

type HomePage struct {
	Featured    []ProductCard           `json:"featured"`
	Categories  []catalog.CategoryCount `json:"categories"`
	Deals       []ProductCard           `json:"deals"`
	NewArrivals []ProductCard           `json:"new_arrivals"`
	EndsIn      string                  `json:"ends_in,omitempty"`
}

// Choice is a labelled choice such as a sort key or payment method.
type Choice struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type ShopPage struct {
	Category      string        `json:"category"`
	CategoryLabel string        `json:"category_label"`
	Filter        browse.Filter `json:"filter"`
	Sort          []Choice      `json:"sort"`
	Brands        []Choice      `json:"brands"`
	Products      []ProductCard `json:"products"`
	ResultLabel   string        `json:"result_label"`
	Empty         bool          `json:"empty"`
	EmptyMessage  string        `json:"empty_message,omitempty"`
}

// Spec is one named specification row.
type Spec struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

type ProductPage struct {
	Product  ProductCard   `json:"product"`
	Defaults cart.Options  `json:"defaults"`
	Specs    []Spec        `json:"specs"`
	Related  []ProductCard `json:"related"`
}

// CartLine is a cart line with its total.
type CartLine struct {
	cart.Line
	Total      decimal.Decimal `json:"total"`
	TotalLabel string          `json:"total_label"`
}

// Totals is a priced summary with display labels.
type Totals struct {
	pricing.Summary
	FreeShipping  bool   `json:"free_shipping"`
	SubtotalLabel string `json:"subtotal_label"`
	ShippingLabel string `json:"shipping_label"`
	TaxLabel      string `json:"tax_label"`
	TotalLabel    string `json:"total_label"`
}

type CartPage struct {
	Lines        []CartLine `json:"lines"`
	ItemCount    int        `json:"item_count"`
	Totals       Totals     `json:"totals"`
	Empty        bool       `json:"empty"`
	EmptyMessage string     `json:"empty_message,omitempty"`
}

type CheckoutPage struct {
	Step      checkout.Step     `json:"step"`
	StepLabel string            `json:"step_label"`
	Checkout  checkout.Snapshot `json:"checkout"`
	Payments  []Choice          `json:"payments"`
	Lines     []CartLine        `json:"lines"`
	Totals    Totals            `json:"totals"`
	CanPlace  bool              `json:"can_place"`
}

type OrderConfirmationPage struct {
	Order     checkout.Order `json:"order"`
	Lines     []CartLine     `json:"lines"`
	Totals    Totals         `json:"totals"`
	PlacedOn  string         `json:"placed_on"`
	DeliverBy string         `json:"deliver_by"`
}

type AccountPage struct {
	SessionID     string          `json:"session_id"`
	Language      i18n.Language   `json:"language"`
	CartItems     int             `json:"cart_items"`
	WishlistCount int             `json:"wishlist_count"`
	RecentOrder   *checkout.Order `json:"recent_order,omitempty"`
}

type WishlistPage struct {
	Products     []ProductCard `json:"products"`
	Empty        bool          `json:"empty"`
	EmptyMessage string        `json:"empty_message,omitempty"`
}

// Stat is a headline number on the about page.
type Stat struct {
	Number string `json:"number"`
	Label  string `json:"label"`
}

// Value is a titled paragraph.
type Value struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AboutPage struct {
	Title  string  `json:"title"`
	Stats  []Stat  `json:"stats"`
	Values []Value `json:"values"`
}

// ContactInfo is a titled block of contact details.
type ContactInfo struct {
	Title   string   `json:"title"`
	Details []string `json:"details"`
}

type ContactPage struct {
	Title string        `json:"title"`
	Info  []ContactInfo `json:"info"`
	Form  ContactForm   `json:"form"`
}

type DealsPage struct {
	EndsIn     string        `json:"ends_in,omitempty"`
	FlashDeals []ProductCard `json:"flash_deals"`
	HotDeals   []ProductCard `json:"hot_deals"`
	Clearance  []ProductCard `json:"clearance"`
}

type CategoriesPage struct {
	Categories []CategoryTile `json:"categories"`
	Brands     []string       `json:"brands"`
}

// CategoryTile is a category with its localized name.
type CategoryTile struct {
	catalog.CategoryCount
	Label string `json:"label"`
}
