// Package pricing computes discounts, line totals and cart totals for the
// storefront. Every function is pure and uses exact decimal arithmetic; the
// only rounding happens in FormatMoney when a value is displayed.
//
// Package pricing 为商店前端计算折扣、行合计和购物车合计。
// 所有函数都是纯函数并使用精确的十进制运算；只有在FormatMoney显示时才进行舍入。
package pricing

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is anything with a unit price and a quantity, such as a cart line.
type Line interface {
	UnitPrice() decimal.Decimal
	Units() int
}

// Rules holds the shipping and tax parameters used to quote a cart.
//
// Rules 保存用于报价购物车的运费和税费参数。
type Rules struct {
	// FreeShippingOver is the subtotal that must be strictly exceeded for free shipping.
	// FreeShippingOver 是必须严格超过才能免运费的小计金额。
	FreeShippingOver decimal.Decimal `json:"free_shipping_over"`

	// FlatShipping is charged when the subtotal does not exceed FreeShippingOver.
	// FlatShipping 是小计未超过FreeShippingOver时收取的运费。
	FlatShipping decimal.Decimal `json:"flat_shipping"`

	// TaxRate is the flat tax rate applied to the subtotal.
	// TaxRate 是应用于小计的统一税率。
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// DefaultRules returns the storefront rules: free shipping over 100,
// otherwise a flat 15, and a 10% tax.
func DefaultRules() Rules {
	return Rules{
		FreeShippingOver: decimal.NewFromInt(100),
		FlatShipping:     decimal.NewFromInt(15),
		TaxRate:          decimal.RequireFromString("0.10"),
	}
}

// Summary is the priced breakdown of a cart.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// FreeShipping reports whether the summary qualifies for free shipping.
func (s Summary) FreeShipping() bool {
	return s.Shipping.IsZero()
}

// Shipping returns 0 when subtotal is strictly greater than the threshold,
// otherwise the flat rate. A subtotal of exactly the threshold is not free.
func (r Rules) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(r.FreeShippingOver) {
		return decimal.Zero
	}
	return r.FlatShipping
}

// Tax returns subtotal × TaxRate.
func (r Rules) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(r.TaxRate)
}

// Quote prices a subtotal into a full summary.
//
// Quote 将小计报价为完整的汇总。
//
// Parameters:
//   - subtotal: The cart subtotal
//
// Returns:
//   - Summary: Subtotal, shipping, tax and total
func (r Rules) Quote(subtotal decimal.Decimal) Summary {
	shipping := r.Shipping(subtotal)
	tax := r.Tax(subtotal)
	return Summary{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    Total(subtotal, shipping, tax),
	}
}

// Summarize prices a list of lines with the given rules.
func Summarize[L Line](r Rules, lines []L) Summary {
	return r.Quote(Subtotal(lines))
}

// DiscountPercent returns the whole-number discount of price against
// originalPrice. It is 0 when there is no original price or when the
// original price does not exceed the price.
//
// DiscountPercent 返回价格相对原价的整数折扣百分比。
// 没有原价或原价不高于价格时为0。
func DiscountPercent(price decimal.Decimal, originalPrice decimal.NullDecimal) int {
	if !originalPrice.Valid || originalPrice.Decimal.LessThanOrEqual(price) {
		return 0
	}
	orig := originalPrice.Decimal
	return int(orig.Sub(price).Div(orig).Mul(hundred).Round(0).IntPart())
}

// LineTotal returns price × quantity.
func LineTotal(l Line) decimal.Decimal {
	return l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Units())))
}

// Subtotal sums the line totals; an empty list yields 0.
func Subtotal[L Line](lines []L) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l))
	}
	return sum
}

// Shipping applies the default rules.
func Shipping(subtotal decimal.Decimal) decimal.Decimal {
	return DefaultRules().Shipping(subtotal)
}

// Tax applies the default rules.
func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return DefaultRules().Tax(subtotal)
}

// Total returns subtotal + shipping + tax without rounding.
func Total(subtotal, shipping, tax decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Add(tax)
}

// FormatMoney renders an amount in dollars with two decimals, e.g. "$1382.70".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
