package i18n

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Humphrey-He/mtstore/pkg/errors"
)

func TestLookup(t *testing.T) {
	tr := Default()

	assert.Equal(t, "Shop", tr.Lookup("shop", English, nil))
	assert.Equal(t, "Cửa Hàng", tr.Lookup("shop", Vietnamese, nil))
	assert.Equal(t, "Shipping", tr.Lookup("shipping", English, nil))
}

func TestLookupFallback(t *testing.T) {
	tr, err := Load(strings.NewReader("en:\n  home: Home\n  cart: Cart\nvi:\n  home: Trang Chủ\n"))
	require.NoError(t, err)

	assert.False(t, tr.Has("cart", Vietnamese))
	assert.Equal(t, "Cart", tr.Lookup("cart", Vietnamese, nil))
	assert.Equal(t, "Trang Chủ", tr.Lookup("home", Vietnamese, nil))
	assert.Equal(t, "noSuchKey", tr.Lookup("noSuchKey", Vietnamese, nil))
	assert.Equal(t, "Home", tr.Lookup("home", Language("fr"), nil))
}

func TestLookupParams(t *testing.T) {
	tr := Default()

	assert.Equal(t, "Showing 8 products", tr.Lookup("showingResults", English, map[string]any{"count": 8}))
	assert.Equal(t, "Hiển thị 2 sản phẩm", tr.Lookup("showingResults", Vietnamese, map[string]any{"count": 2}))
	assert.Equal(t, "OnePlus 12 added to cart!", tr.Lookup("toastAddedToCart", English, map[string]any{"name": "OnePlus 12"}))
	assert.Equal(t, "Showing {count} products", tr.Lookup("showingResults", English, map[string]any{"other": 1}))
}

func TestEveryEnglishKeyHasVietnamese(t *testing.T) {
	tr := Default()
	var missing []string
	for _, k := range tr.Keys() {
		if !tr.Has(k, Vietnamese) {
			missing = append(missing, k)
		}
	}
	assert.Empty(t, missing)
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage("VI")
	require.NoError(t, err)
	assert.Equal(t, Vietnamese, l)

	_, err = ParseLanguage("de")
	assert.ErrorIs(t, err, errors.ErrUnknownLanguage)
}

func TestLoadRequiresEnglish(t *testing.T) {
	_, err := Load(strings.NewReader("vi:\n  home: Trang Chủ\n"))
	assert.Error(t, err)

	tr, err := Load(strings.NewReader("en:\n  home: Start\n"))
	require.NoError(t, err)
	assert.Equal(t, "Start", tr.Lookup("home", Vietnamese, nil))
}
