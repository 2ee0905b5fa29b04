package cart

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

func mustGet(t *testing.T, id string) catalog.Product {
	t.Helper()
	p, ok := catalog.Default().Get(id)
	require.True(t, ok)
	return p
}

func TestAddMergesIdenticalKeys(t *testing.T) {
	s := New()
	phone := mustGet(t, "1")
	opts := Options{Color: "Blue Titanium", Storage: "256GB"}

	l := s.Add(phone, 1, opts)
	assert.Equal(t, "1-Blue Titanium-256GB", l.ID)
	assert.Equal(t, 1, l.Quantity)

	l = s.Add(phone, 2, opts)
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, 1, s.Len())

	s.Add(phone, 1, Options{Color: "Blue Titanium", Storage: "512GB"})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 4, s.ItemCount())
}

func TestAddDistinctColorsMakeDistinctLines(t *testing.T) {
	s := New()
	p := mustGet(t, "8")

	black := s.Add(p, 1, Options{Color: "Black"})
	blue := s.Add(p, 2, Options{Color: "Blue"})
	assert.NotEqual(t, black.ID, blue.ID)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, s.ItemCount())
}

func TestLineIDsNeverCollide(t *testing.T) {
	s := New()
	p := mustGet(t, "8")

	a := s.Add(p, 1, Options{Color: "Black-256GB"})
	b := s.Add(p, 1, Options{Color: "Black", Storage: "256GB-"})
	require.Equal(t, 2, s.Len())
	assert.NotEqual(t, a.ID, b.ID)

	assert.True(t, s.UpdateQuantity(b.ID, 5))
	got, ok := s.Line(a.ID)
	require.True(t, ok)
	assert.Equal(t, 1, got.Quantity)
	got, ok = s.Line(b.ID)
	require.True(t, ok)
	assert.Equal(t, 5, got.Quantity)

	assert.True(t, s.Remove(a.ID))
	require.Len(t, s.Lines(), 1)
	assert.Equal(t, b.Key(), s.Lines()[0].Key())
}

func TestLineKeyString(t *testing.T) {
	tests := []struct {
		key  LineKey
		want string
	}{
		{LineKey{ProductID: "1", Color: "Blue Titanium", Storage: "256GB"}, "1-Blue Titanium-256GB"},
		{LineKey{ProductID: "8"}, "8--"},
		{LineKey{ProductID: "8", Color: "Black-256GB"}, "8-Black%2D256GB-"},
		{LineKey{ProductID: "8", Color: "50%"}, "8-50%25-"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.key.String())
	}
}

func TestAddWithoutOptions(t *testing.T) {
	s := New()
	l := s.Add(mustGet(t, "8"), 1, Options{})
	assert.Equal(t, "8--", l.ID)
	assert.Equal(t, "Premium Phone Case", l.Name)
	assert.True(t, l.Price.Equal(decimal.NewFromInt(29)))
}

func TestAddClampsQuantity(t *testing.T) {
	s := New()
	l := s.Add(mustGet(t, "8"), 0, Options{})
	assert.Equal(t, 1, l.Quantity)
	l = s.Add(mustGet(t, "8"), -5, Options{})
	assert.Equal(t, 2, l.Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	s := New()
	l := s.Add(mustGet(t, "8"), 3, Options{Color: "Black"})

	assert.True(t, s.UpdateQuantity(l.ID, 5))
	got, ok := s.Line(l.ID)
	require.True(t, ok)
	assert.Equal(t, 5, got.Quantity)

	assert.True(t, s.UpdateQuantity(l.ID, 0))
	got, _ = s.Line(l.ID)
	assert.Equal(t, 1, got.Quantity)
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.UpdateQuantity("nope", 4))
	assert.Equal(t, 1, s.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := New()
	l := s.Add(mustGet(t, "8"), 1, Options{})

	assert.True(t, s.Remove(l.ID))
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Remove(l.ID))
	assert.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	s := New()
	s.Add(mustGet(t, "1"), 1, Options{})
	s.Add(mustGet(t, "8"), 2, Options{})
	s.Clear()
	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.ItemCount())
}

func TestLinesAreCopies(t *testing.T) {
	s := New()
	s.Add(mustGet(t, "8"), 1, Options{})

	lines := s.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, s.Lines()[0].Quantity)
}

func TestSnapshotPricing(t *testing.T) {
	s := New()
	s.Add(mustGet(t, "1"), 1, Options{Color: "Natural Titanium", Storage: "256GB"})
	s.Add(mustGet(t, "8"), 2, Options{Color: "Black"})

	sum := pricing.Summarize(pricing.DefaultRules(), s.Lines())
	assert.Equal(t, "$1257.00", pricing.FormatMoney(sum.Subtotal))
	assert.Equal(t, "$1382.70", pricing.FormatMoney(sum.Total))
}

func TestWishlist(t *testing.T) {
	s := New()

	assert.True(t, s.ToggleWishlist("3"))
	assert.True(t, s.ToggleWishlist("1"))
	assert.True(t, s.InWishlist("3"))
	assert.Equal(t, []string{"3", "1"}, s.Wishlist())

	assert.False(t, s.ToggleWishlist("3"))
	assert.False(t, s.InWishlist("3"))
	assert.Equal(t, 1, s.WishlistCount())

	s.RemoveFromWishlist("1")
	s.RemoveFromWishlist("1")
	assert.Empty(t, s.Wishlist())
}

func TestToggleTwiceRestores(t *testing.T) {
	s := New()
	s.ToggleWishlist("2")
	before := s.Wishlist()

	s.ToggleWishlist("5")
	s.ToggleWishlist("5")
	assert.Equal(t, before, s.Wishlist())
}

func TestHookEvents(t *testing.T) {
	var events []Event
	s := New(WithHook(func(e Event) { events = append(events, e) }))

	l := s.Add(mustGet(t, "8"), 1, Options{})
	s.UpdateQuantity(l.ID, 3)
	s.Remove(l.ID)
	s.Remove("missing")
	s.ToggleWishlist("1")
	s.ToggleWishlist("1")
	s.RemoveFromWishlist("2")

	kinds := make([]EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []EventKind{
		EventLineAdded,
		EventLineRemoved,
		EventLineRemoved,
		EventWishlistAdded,
		EventWishlistRemoved,
		EventWishlistRemoved,
	}, kinds)
	assert.Equal(t, "Premium Phone Case", events[0].Line.Name)
	assert.Equal(t, "line_removed", events[1].Kind.String())
}

func TestDefaultOptions(t *testing.T) {
	assert.Equal(t, Options{Color: "Natural Titanium", Storage: "256GB"}, DefaultOptions(mustGet(t, "1")))
	assert.Equal(t, Options{Color: "White"}, DefaultOptions(mustGet(t, "7")))
}

func TestConcurrentAdds(t *testing.T) {
	s := New()
	p := mustGet(t, "8")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(p, 1, Options{})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 50, s.ItemCount())
}
