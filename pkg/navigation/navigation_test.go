package navigation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humphrey-He/mtstore/pkg/errors"
)

func TestInitialState(t *testing.T) {
	c := NewController()
	s := c.Current()
	assert.Equal(t, Home, s.View)
	assert.NotNil(t, s.Params)
	assert.Empty(t, s.Params)
}

func TestNavigateReplacesParams(t *testing.T) {
	c := NewController()

	c.Navigate(ProductDetails, Params{"productId": "3"})
	id, ok := c.Current().StringParam("productId")
	require.True(t, ok)
	assert.Equal(t, "3", id)

	c.Navigate(Shop, Params{"category": "accessories"})
	s := c.Current()
	assert.Equal(t, Shop, s.View)
	_, ok = s.Param("productId")
	assert.False(t, ok)

	c.Navigate(Cart, nil)
	assert.Equal(t, Params{}, c.Current().Params)
}

func TestNavigateCopiesParams(t *testing.T) {
	c := NewController()
	p := Params{"category": "smartphones"}
	c.Navigate(Shop, p)

	p["category"] = "accessories"
	got, _ := c.Current().StringParam("category")
	assert.Equal(t, "smartphones", got)

	cur := c.Current()
	cur.Params["category"] = "refurbished"
	got, _ = c.Current().StringParam("category")
	assert.Equal(t, "smartphones", got)
}

func TestUndeclaredViewFallsBackHome(t *testing.T) {
	c := NewController()
	c.Navigate(Shop, nil)
	c.Navigate(View(99), nil)
	assert.Equal(t, Home, c.Current().View)
}

func TestScrollListeners(t *testing.T) {
	c := NewController()
	var scrolled []View
	c.OnScrollToTop(func(s State) { scrolled = append(scrolled, s.View) })

	c.Navigate(Deals, nil)
	c.Navigate(Deals, nil)
	c.Navigate(About, nil)
	assert.Equal(t, []View{Deals, Deals, About}, scrolled)
}

func TestParseView(t *testing.T) {
	for _, v := range Views() {
		got, err := ParseView(v.String())
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	v, err := ParseView("order-confirmation")
	require.NoError(t, err)
	assert.Equal(t, OrderConfirmation, v)

	_, err = ParseView("admin")
	assert.ErrorIs(t, err, errors.ErrUnknownView)
	assert.Len(t, Views(), 12)
}

func TestViewJSON(t *testing.T) {
	b, err := json.Marshal(State{View: ProductDetails, Params: Params{"productId": "1"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"view":"product","params":{"productId":"1"}}`, string(b))

	var s State
	require.NoError(t, json.Unmarshal([]byte(`{"view":"wishlist","params":{}}`), &s))
	assert.Equal(t, Wishlist, s.View)

	assert.Error(t, json.Unmarshal([]byte(`{"view":"nowhere"}`), &s))
	assert.Equal(t, "View(42)", View(42).String())
}
