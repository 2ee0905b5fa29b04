package storefront

import (
	"slices"
	"strings"

	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/cart"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/checkout"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
	"github.com/Humphrey-He/mtstore/pkg/navigation"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

const dateLayout = "January 2, 2006"

// titleKeys maps each view to the translation key of its title.
var titleKeys = map[navigation.View]string{
	navigation.Home:              "home",
	navigation.Shop:              "shop",
	navigation.ProductDetails:    "product",
	navigation.Cart:              "shoppingCart",
	navigation.Checkout:          "checkout",
	navigation.OrderConfirmation: "orderConfirmed",
	navigation.Account:           "myAccount",
	navigation.Wishlist:          "wishlist",
	navigation.About:             "about",
	navigation.Contact:           "contactUs",
	navigation.Deals:             "deals",
	navigation.Categories:        "categories",
}

var paymentKeys = map[checkout.PaymentMethod]string{
	checkout.PaymentCard:          "paymentCard",
	checkout.PaymentPayPal:        "paymentPaypal",
	checkout.PaymentCashOnDeliver: "paymentCod",
}

var stepKeys = map[checkout.Step]string{
	checkout.StepShipping: "shippingInfo",
	checkout.StepPayment:  "paymentMethod",
	checkout.StepReview:   "reviewOrder",
}

// Render builds the view model of the current view. A missing product or
// order renders a *NotFound page instead of failing.
//
// Render 构建当前视图的视图模型。缺失的产品或订单会渲染为*NotFound页面。
func (s *Session) Render() (Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.metrics.Timer("render")()

	state := s.nav.Current()
	page := Page{
		View:     state.View,
		Title:    s.t(titleKeys[state.View], nil),
		Language: s.lang,
		Header: Header{
			CartItems:     s.cart.ItemCount(),
			WishlistCount: s.cart.WishlistCount(),
		},
	}

	switch state.View {
	case navigation.Shop:
		page.Content = s.shopPage()
	case navigation.ProductDetails:
		page.Content = s.productPage(state)
	case navigation.Cart:
		page.Content = s.cartPage()
	case navigation.Checkout:
		page.Content = s.checkoutPage()
	case navigation.OrderConfirmation:
		page.Content = s.orderConfirmationPage(state)
	case navigation.Account:
		page.Content = s.accountPage()
	case navigation.Wishlist:
		page.Content = s.wishlistPage()
	case navigation.About:
		page.Content = s.aboutPage()
	case navigation.Contact:
		page.Content = s.contactPage()
	case navigation.Deals:
		page.Content = s.dealsPage()
	case navigation.Categories:
		page.Content = s.categoriesPage()
	default:
		page.Content = s.homePage()
	}
	return page, nil
}

func (s *Session) notFound(key string, back navigation.View) *NotFound {
	label := "backToHome"
	if back == navigation.Shop {
		label = "backToShop"
	}
	return &NotFound{Message: s.t(key, nil), BackLabel: s.t(label, nil), Back: back}
}

func (s *Session) cards(products []catalog.Product) []ProductCard {
	out := make([]ProductCard, len(products))
	for i, p := range products {
		out[i] = s.card(p)
	}
	return out
}

func (s *Session) card(p catalog.Product) ProductCard {
	c := ProductCard{
		Product:         p,
		PriceLabel:      pricing.FormatMoney(p.Price),
		DiscountPercent: p.DiscountPercent(),
		InWishlist:      s.cart.InWishlist(p.ID),
	}
	if p.OriginalPrice.Valid {
		c.OriginalPriceLabel = pricing.FormatMoney(p.OriginalPrice.Decimal)
	}
	return c
}

func (s *Session) endsIn() string {
	if s.countdown == nil {
		return ""
	}
	return s.countdown.Remaining().String()
}

func (s *Session) homePage() HomePage {
	return HomePage{
		Featured:    s.cards(s.catalog.Featured()),
		Categories:  s.catalog.CategoryCounts(),
		Deals:       s.cards(s.catalog.Deals()),
		NewArrivals: s.cards(s.catalog.NewArrivals()),
		EndsIn:      s.endsIn(),
	}
}

func (s *Session) categoryLabel(id string) string {
	if id == "" {
		return s.t("allProducts", nil)
	}
	c, ok := s.catalog.Category(id)
	if !ok {
		return id
	}
	if s.lang == i18n.Vietnamese && c.NameVi != "" {
		return c.NameVi
	}
	return c.Name
}

func (s *Session) shopPage() ShopPage {
	f := s.shop.Filter
	products := s.Browse(f, s.shop.Sort)

	sorts := make([]Choice, len(browse.SortKeys))
	for i, k := range browse.SortKeys {
		sorts[i] = Choice{Value: string(k), Label: s.t(string(k), nil), Selected: k == s.shop.Sort}
	}
	brands := make([]Choice, 0, len(s.catalog.Brands()))
	for _, b := range s.catalog.Brands() {
		brands = append(brands, Choice{Value: b, Label: b, Selected: slices.Contains(f.Brands, b)})
	}

	page := ShopPage{
		Category:      f.Category,
		CategoryLabel: s.categoryLabel(f.Category),
		Filter:        f,
		Sort:          sorts,
		Brands:        brands,
		Products:      s.cards(products),
		ResultLabel:   s.t("showingResults", map[string]any{"count": len(products)}),
		Empty:         len(products) == 0,
	}
	if page.Empty {
		page.EmptyMessage = s.t("emptyShop", nil)
	}
	return page
}

func (s *Session) productPage(state navigation.State) any {
	id, _ := state.StringParam("id")
	p, ok := s.catalog.Get(id)
	if !ok {
		return s.notFound("productNotFound", navigation.Shop)
	}

	specs := make([]Spec, 0, len(p.Specs))
	for _, key := range specKeys(p.Specs) {
		specs = append(specs, Spec{Key: key, Label: specLabel(key), Value: p.Specs[key]})
	}
	return ProductPage{
		Product:  s.card(p),
		Defaults: cart.DefaultOptions(p),
		Specs:    specs,
		Related:  s.cards(s.catalog.Related(p)),
	}
}

// specKeys lists the keys of specs in display order: the known attributes
// first, then any other keys sorted.
func specKeys(specs map[string]string) []string {
	keys := make([]string, 0, len(specs))
	for _, key := range catalog.SpecOrder {
		if _, ok := specs[key]; ok {
			keys = append(keys, key)
		}
	}
	var extra []string
	for key := range specs {
		if !slices.Contains(catalog.SpecOrder, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}

func specLabel(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func (s *Session) cartLines(lines []cart.Line) []CartLine {
	out := make([]CartLine, len(lines))
	for i, l := range lines {
		total := pricing.LineTotal(l)
		out[i] = CartLine{Line: l, Total: total, TotalLabel: pricing.FormatMoney(total)}
	}
	return out
}

func totals(sum pricing.Summary) Totals {
	return Totals{
		Summary:       sum,
		FreeShipping:  sum.FreeShipping(),
		SubtotalLabel: pricing.FormatMoney(sum.Subtotal),
		ShippingLabel: pricing.FormatMoney(sum.Shipping),
		TaxLabel:      pricing.FormatMoney(sum.Tax),
		TotalLabel:    pricing.FormatMoney(sum.Total),
	}
}

func (s *Session) cartPage() CartPage {
	lines := s.cart.Lines()
	page := CartPage{
		Lines:     s.cartLines(lines),
		ItemCount: s.cart.ItemCount(),
		Totals:    totals(pricing.Summarize(s.rules, lines)),
		Empty:     len(lines) == 0,
	}
	if page.Empty {
		page.EmptyMessage = s.t("emptyCart", nil)
	}
	return page
}

func (s *Session) checkoutPage() CheckoutPage {
	snap := s.checkout.Snapshot()
	lines := s.cart.Lines()

	payments := make([]Choice, len(checkout.PaymentMethods))
	for i, m := range checkout.PaymentMethods {
		payments[i] = Choice{Value: string(m), Label: s.t(paymentKeys[m], nil), Selected: m == snap.Payment}
	}
	return CheckoutPage{
		Step:      snap.Step,
		StepLabel: s.t(stepKeys[snap.Step], nil),
		Checkout:  snap,
		Payments:  payments,
		Lines:     s.cartLines(lines),
		Totals:    totals(pricing.Summarize(s.rules, lines)),
		CanPlace:  snap.Step == checkout.StepReview && len(snap.Missing) == 0,
	}
}

// orderConfirmationPage prefers the order passed as a parameter and falls
// back to the last order placed in this session.
func (s *Session) orderConfirmationPage(state navigation.State) any {
	v, _ := state.Param("order")
	order, ok := v.(checkout.Order)
	if !ok && s.lastOrder != nil {
		order, ok = *s.lastOrder, true
	}
	if !ok {
		return s.notFound("orderNotFound", navigation.Home)
	}
	order = order.Clone()
	return OrderConfirmationPage{
		Order: order,
		Lines: s.cartLines(order.Items),
		Totals: totals(pricing.Summary{
			Subtotal: order.Subtotal,
			Shipping: order.ShippingCost,
			Tax:      order.Tax,
			Total:    order.Total,
		}),
		PlacedOn:  order.PlacedAt.Format(dateLayout),
		DeliverBy: order.EstimatedDelivery.Format(dateLayout),
	}
}

func (s *Session) accountPage() AccountPage {
	page := AccountPage{
		SessionID:     s.id,
		Language:      s.lang,
		CartItems:     s.cart.ItemCount(),
		WishlistCount: s.cart.WishlistCount(),
	}
	if s.lastOrder != nil {
		recent := s.lastOrder.Clone()
		page.RecentOrder = &recent
	}
	return page
}

func (s *Session) wishlistPage() WishlistPage {
	products := s.wishlistProducts()
	page := WishlistPage{
		Products: s.cards(products),
		Empty:    len(products) == 0,
	}
	if page.Empty {
		page.EmptyMessage = s.t("emptyWishlist", nil)
	}
	return page
}

func (s *Session) aboutPage() AboutPage {
	return AboutPage{
		Title: s.t("aboutTitle", nil),
		Stats: []Stat{
			{Number: "500K+", Label: s.t("statCustomers", nil)},
			{Number: "10+", Label: s.t("statYears", nil)},
			{Number: "99%", Label: s.t("statSatisfaction", nil)},
			{Number: "1M+", Label: s.t("statSold", nil)},
		},
		Values: []Value{
			{Title: s.t("valueQuality", nil), Description: s.t("valueQualityDesc", nil)},
			{Title: s.t("valueCustomer", nil), Description: s.t("valueCustomerDesc", nil)},
			{Title: s.t("valueInnovation", nil), Description: s.t("valueInnovationDesc", nil)},
			{Title: s.t("valueTrust", nil), Description: s.t("valueTrustDesc", nil)},
		},
	}
}

func (s *Session) contactPage() ContactPage {
	return ContactPage{
		Title: s.t("contactUs", nil),
		Info: []ContactInfo{
			{Title: s.t("contactAddress", nil), Details: []string{"123 Tech Street, District 1", "Ho Chi Minh City, Vietnam"}},
			{Title: s.t("contactPhone", nil), Details: []string{"+84 123 456 789", "+84 987 654 321"}},
			{Title: s.t("email", nil), Details: []string{"support@mtstore.com", "sales@mtstore.com"}},
			{Title: s.t("workingHours", nil), Details: []string{s.t("hoursWeekdays", nil), s.t("hoursSunday", nil)}},
		},
	}
}

func (s *Session) dealsPage() DealsPage {
	return DealsPage{
		EndsIn:     s.endsIn(),
		FlashDeals: s.cards(s.catalog.FlashDeals()),
		HotDeals:   s.cards(s.catalog.HotDeals()),
		Clearance:  s.cards(s.catalog.Clearance()),
	}
}

func (s *Session) categoriesPage() CategoriesPage {
	counts := s.catalog.CategoryCounts()
	tiles := make([]CategoryTile, len(counts))
	for i, c := range counts {
		tiles[i] = CategoryTile{CategoryCount: c, Label: s.categoryLabel(c.ID)}
	}
	return CategoriesPage{Categories: tiles, Brands: s.catalog.Brands()}
}
