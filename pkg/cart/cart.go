// Package cart holds the shopping cart and the wishlist of one session.
//
// Package cart 保存单个会话的购物车和心愿单。
package cart

import (
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/mtstore/pkg/catalog"
)

// Options are the product variant choices of a cart line. Empty means not selected.
type Options struct {
	Color   string `json:"color,omitempty"`
	Storage string `json:"storage,omitempty"`
}

// DefaultOptions returns the first colour and first storage option of p,
// the selection a product page starts with.
func DefaultOptions(p catalog.Product) Options {
	var o Options
	if len(p.Colors) > 0 {
		o.Color = p.Colors[0]
	}
	if len(p.StorageOptions) > 0 {
		o.Storage = p.StorageOptions[0]
	}
	return o
}

// LineKey is the identity of a cart line.
type LineKey struct {
	ProductID string
	Color     string
	Storage   string
}

// keyEscaper keeps the rendered key one-to-one with LineKey: a "-" inside a
// part can never be read as a separator.
var keyEscaper = strings.NewReplacer("%", "%25", "-", "%2D")

// String renders the key as "<productID>-<color>-<storage>". A "-" or "%"
// inside a part is percent-escaped.
func (k LineKey) String() string {
	return keyEscaper.Replace(k.ProductID) + "-" + keyEscaper.Replace(k.Color) + "-" + keyEscaper.Replace(k.Storage)
}

// Line is one cart entry. Name, Brand, Price and Image are captured when the
// line is created.
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Brand     string          `json:"brand"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color,omitempty"`
	Storage   string          `json:"storage,omitempty"`
}

// UnitPrice implements pricing.Line.
func (l Line) UnitPrice() decimal.Decimal { return l.Price }

// Units implements pricing.Line.
func (l Line) Units() int { return l.Quantity }

// Key returns the identity of the line.
func (l Line) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Color: l.Color, Storage: l.Storage}
}

// EventKind identifies a cart or wishlist change.
type EventKind int

const (
	EventLineAdded EventKind = iota
	EventLineRemoved
	EventWishlistAdded
	EventWishlistRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventLineAdded:
		return "line_added"
	case EventLineRemoved:
		return "line_removed"
	case EventWishlistAdded:
		return "wishlist_added"
	case EventWishlistRemoved:
		return "wishlist_removed"
	default:
		return "unknown"
	}
}

// Event describes a change. Line is set for line events, ProductID for all.
type Event struct {
	Kind      EventKind
	ProductID string
	Line      Line
	// Added is the number of units a line_added event put in the cart.
	Added int
}

// Hook is called after each change, outside the store lock.
type Hook func(Event)

// Store is the cart and wishlist. All methods are safe for concurrent use.
//
// Store 是购物车和心愿单。所有方法都可以并发调用。
type Store struct {
	mu       sync.RWMutex
	lines    []Line
	wishlist []string
	hook     Hook
}

// Option configures a Store.
type Option func(*Store)

// WithHook registers the change hook.
func WithHook(h Hook) Option {
	return func(s *Store) {
		s.hook = h
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		lines:    make([]Line, 0),
		wishlist: make([]string, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) emit(e Event) {
	if s.hook != nil {
		s.hook(e)
	}
}

// Add puts quantity units of p into the cart. A line with the same product
// and options is incremented instead of duplicated. Quantities below 1 are
// treated as 1.
//
// Add 将p的quantity个单位加入购物车。相同产品和选项的行会被累加而不是重复。
// 小于1的数量按1处理。
//
// Parameters:
//   - p: The product to add
//   - quantity: Units to add
//   - opts: The selected colour and storage
//
// Returns:
//   - Line: The line after the change
func (s *Store) Add(p catalog.Product, quantity int, opts Options) Line {
	quantity = max(quantity, 1)
	key := LineKey{ProductID: p.ID, Color: opts.Color, Storage: opts.Storage}

	s.mu.Lock()
	var line Line
	if i := slices.IndexFunc(s.lines, func(l Line) bool { return l.Key() == key }); i >= 0 {
		s.lines[i].Quantity += quantity
		line = s.lines[i]
	} else {
		line = Line{
			ID:        key.String(),
			ProductID: p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  quantity,
			Color:     opts.Color,
			Storage:   opts.Storage,
		}
		s.lines = append(s.lines, line)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventLineAdded, ProductID: p.ID, Line: line, Added: quantity})
	return line
}

// UpdateQuantity sets the quantity of a line, clamped to at least 1. It
// never removes a line and reports whether the line exists.
func (s *Store) UpdateQuantity(lineID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(lineID)
	if i < 0 {
		return false
	}
	s.lines[i].Quantity = max(quantity, 1)
	return true
}

// Remove deletes a line and reports whether it existed. The removal event
// is emitted either way.
func (s *Store) Remove(lineID string) bool {
	s.mu.Lock()
	var removed Line
	i := s.indexOf(lineID)
	if i >= 0 {
		removed = s.lines[i]
		s.lines = slices.Delete(s.lines, i, i+1)
	}
	s.mu.Unlock()

	s.emit(Event{Kind: EventLineRemoved, ProductID: removed.ProductID, Line: removed})
	return i >= 0
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = make([]Line, 0)
	s.mu.Unlock()
}

// Line returns the line with the given id.
func (s *Store) Line(lineID string) (Line, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(lineID)
	if i < 0 {
		return Line{}, false
	}
	return s.lines[i], true
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lines)
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

// ItemCount returns the total number of units in the cart.
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// ToggleWishlist adds or removes productID and returns the resulting membership.
func (s *Store) ToggleWishlist(productID string) bool {
	s.mu.Lock()
	i := slices.Index(s.wishlist, productID)
	if i >= 0 {
		s.wishlist = slices.Delete(s.wishlist, i, i+1)
	} else {
		s.wishlist = append(s.wishlist, productID)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.emit(Event{Kind: EventWishlistRemoved, ProductID: productID})
		return false
	}
	s.emit(Event{Kind: EventWishlistAdded, ProductID: productID})
	return true
}

// RemoveFromWishlist removes productID if present.
func (s *Store) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	s.wishlist = slices.DeleteFunc(s.wishlist, func(id string) bool { return id == productID })
	s.mu.Unlock()

	s.emit(Event{Kind: EventWishlistRemoved, ProductID: productID})
}

// Wishlist returns the wishlisted ids in insertion order. Ids are not checked
// against the catalog.
func (s *Store) Wishlist() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.wishlist)
}

// InWishlist reports whether productID is wishlisted.
func (s *Store) InWishlist(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.wishlist, productID)
}

// WishlistCount returns the number of wishlisted ids.
func (s *Store) WishlistCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.wishlist)
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(lineID string) int {
	return slices.IndexFunc(s.lines, func(l Line) bool { return l.ID == lineID })
}
