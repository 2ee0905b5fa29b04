// Package storefront ties the catalog, cart, checkout and navigation
// together into a single shopper session.
//
// Package storefront 将目录、购物车、结账和导航组合成一个购物会话。
package storefront

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Humphrey-He/mtstore/internal/countdown"
	"github.com/Humphrey-He/mtstore/internal/metrics"
	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/cart"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/checkout"
	"github.com/Humphrey-He/mtstore/pkg/errors"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
	"github.com/Humphrey-He/mtstore/pkg/navigation"
	"github.com/Humphrey-He/mtstore/pkg/notify"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

// ShopState is the filter and sort chosen on the shop page.
type ShopState struct {
	Filter browse.Filter  `json:"filter"`
	Sort   browse.SortKey `json:"sort"`
}

// ContactForm is the message sent from the contact page.
type ContactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

func (f ContactForm) trimmed() ContactForm {
	return ContactForm{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Subject: strings.TrimSpace(f.Subject),
		Message: strings.TrimSpace(f.Message),
	}
}

// Session is the state of one shopper. Every operation is serialised by a
// mutex, so a Session may be shared by concurrent HTTP handlers.
//
// Session 是一个购物者的状态。所有操作都由互斥锁串行化，
// 因此Session可以被并发的HTTP处理器共享。
type Session struct {
	id string
	mu sync.Mutex

	lang  i18n.Language
	rules pricing.Rules
	shop  ShopState

	defaultSort browse.SortKey
	cacheSize   int
	now         func() time.Time

	catalog    *catalog.Store
	engine     *browse.Engine
	cart       *cart.Store
	checkout   *checkout.Workflow
	nav        *navigation.Controller
	translator *i18n.Translator
	notifier   notify.Notifier
	countdown  *countdown.Countdown
	lastOrder  *checkout.Order

	logger  *zap.Logger
	metrics *metrics.Metrics
}

// Option configures a Session.
type Option func(*Session)

// WithLanguage sets the initial display language.
func WithLanguage(lang i18n.Language) Option {
	return func(s *Session) {
		s.lang = lang
	}
}

// WithNotifier sets where notifications are sent.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics sets the metrics sink. A nil value disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithRules sets the pricing rules.
func WithRules(r pricing.Rules) Option {
	return func(s *Session) {
		s.rules = r
	}
}

// WithTranslator sets the translation table.
func WithTranslator(t *i18n.Translator) Option {
	return func(s *Session) {
		if t != nil {
			s.translator = t
		}
	}
}

// WithClock sets the clock used for orders.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// WithCacheSize sets the browse result cache capacity.
func WithCacheSize(size int) Option {
	return func(s *Session) {
		s.cacheSize = size
	}
}

// WithDefaultSort sets the sort the shop page starts with.
func WithDefaultSort(sort browse.SortKey) Option {
	return func(s *Session) {
		s.defaultSort = sort
	}
}

// WithCountdown attaches the deal countdown shown on the home and deals pages.
func WithCountdown(c *countdown.Countdown) Option {
	return func(s *Session) {
		s.countdown = c
	}
}

// New creates a session over a catalog, starting at the home view with an
// empty cart.
//
// New 基于目录创建会话，初始位于首页且购物车为空。
//
// Parameters:
//   - store: The product catalog
//   - opts: Optional settings
//
// Returns:
//   - *Session: The session
//   - error: An error if the session cannot be created
func New(store *catalog.Store, opts ...Option) (*Session, error) {
	if store == nil {
		return nil, fmt.Errorf("storefront: catalog is nil")
	}
	s := &Session{
		id:          uuid.NewString(),
		lang:        i18n.English,
		rules:       pricing.DefaultRules(),
		defaultSort: browse.SortNewest,
		cacheSize:   browse.DefaultCacheSize,
		now:         time.Now,
		catalog:     store,
		translator:  i18n.Default(),
		notifier:    notify.Nop{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	lang, err := i18n.ParseLanguage(string(s.lang))
	if err != nil {
		return nil, err
	}
	s.lang = lang

	engine, err := browse.NewEngine(store, s.cacheSize)
	if err != nil {
		return nil, err
	}
	s.engine = engine
	s.logger = s.logger.With(zap.String("session", s.id))
	s.cart = cart.New(cart.WithHook(s.onCartEvent))
	s.checkout = checkout.NewWorkflow(checkout.WithRules(s.rules), checkout.WithClock(s.now))
	s.nav = navigation.NewController()
	s.resetShop(navigation.Params{})

	s.metrics.SessionOpened()
	s.logger.Debug("session opened", zap.String("lang", string(s.lang)))
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Close releases the session.
func (s *Session) Close() {
	s.metrics.SessionClosed()
	s.logger.Debug("session closed")
}

// onCartEvent turns cart changes into localized notifications. The cart
// calls it from inside a Session operation, so s.mu is already held.
func (s *Session) onCartEvent(e cart.Event) {
	var msg string
	switch e.Kind {
	case cart.EventLineAdded:
		s.metrics.RecordCartAdd(e.Added)
		msg = s.t("toastAddedToCart", map[string]any{"name": e.Line.Name})
	case cart.EventLineRemoved:
		s.metrics.RecordCartRemove()
		msg = s.t("toastRemovedFromCart", nil)
	case cart.EventWishlistAdded:
		s.metrics.RecordWishlist(true)
		msg = s.t("toastAddedToWishlist", nil)
	case cart.EventWishlistRemoved:
		s.metrics.RecordWishlist(false)
		msg = s.t("toastRemovedFromWishlist", nil)
	default:
		return
	}
	s.notify(msg, notify.Short)
}

func (s *Session) notify(msg string, d time.Duration) {
	s.metrics.RecordNotification()
	s.notifier.Notify(msg, d)
}

func (s *Session) t(key string, params map[string]any) string {
	return s.translator.Lookup(key, s.lang, params)
}

// SetLanguage switches the display language.
func (s *Session) SetLanguage(lang i18n.Language) error {
	lang, err := i18n.ParseLanguage(string(lang))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
	s.logger.Debug("language changed", zap.String("lang", string(lang)))
	return nil
}

// Language returns the display language.
func (s *Session) Language() i18n.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetRules replaces the pricing rules used by the cart summary and by
// orders placed afterwards.
func (s *Session) SetRules(r pricing.Rules) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules = r
	s.checkout.SetRules(r)
}

// Rules returns the pricing rules.
func (s *Session) Rules() pricing.Rules {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules
}

// Navigate moves to view with params. Entering the shop resets its filter to
// the defaults, preselecting the category and brand params.
//
// Navigate 跳转到带参数的视图。进入商店页面时会重置过滤条件，
// 并预选category和brand参数。
func (s *Session) Navigate(view navigation.View, params navigation.Params) navigation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.navigate(view, params)
}

func (s *Session) navigate(view navigation.View, params navigation.Params) navigation.State {
	state := s.nav.Navigate(view, params)
	if state.View == navigation.Shop {
		s.resetShop(state.Params)
	}
	s.metrics.RecordNavigation(state.View.String())
	s.logger.Debug("navigated", zap.Stringer("view", state.View))
	return state
}

func (s *Session) resetShop(params navigation.Params) {
	f := browse.DefaultFilter()
	state := navigation.State{Params: params}
	if c, ok := state.StringParam("category"); ok {
		f.Category = c
	}
	if b, ok := state.StringParam("brand"); ok && b != "" {
		f = f.ToggleBrand(b)
	}
	s.shop = ShopState{Filter: f, Sort: s.defaultSort}
}

// CurrentView returns the navigation state.
func (s *Session) CurrentView() navigation.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.Current()
}

// OnScrollToTop registers a listener called after every navigation.
// Listeners run inside the session lock and must not call back into it.
func (s *Session) OnScrollToTop(l navigation.ScrollListener) {
	s.nav.OnScrollToTop(l)
}

// ShopState returns the shop page filter and sort.
func (s *Session) ShopState() ShopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shop
}

// SetShopFilter replaces the shop page filter.
func (s *Session) SetShopFilter(f browse.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shop.Filter = f
}

// SetShopSort replaces the shop page sort.
func (s *Session) SetShopSort(sort browse.SortKey) error {
	sort, err := browse.ParseSortKey(string(sort))
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shop.Sort = sort
	return nil
}

// Browse filters and sorts the catalog.
func (s *Session) Browse(f browse.Filter, sort browse.SortKey) []catalog.Product {
	res := s.engine.Browse(f, sort)
	s.metrics.RecordBrowse(len(res) == 0)
	return res
}

// BrowseStats returns the browse cache counters.
func (s *Session) BrowseStats() browse.Stats {
	return s.engine.Stats()
}

// Catalog returns the catalog.
func (s *Session) Catalog() *catalog.Store {
	return s.catalog
}

// AddToCart adds quantity units of a catalog product with the chosen options.
//
// AddToCart 将目录产品按所选选项加入购物车。
//
// Parameters:
//   - productID: The catalog product id
//   - quantity: Units to add; values below 1 add one unit
//   - opts: The selected colour and storage
//
// Returns:
//   - cart.Line: The line after the change
//   - error: A *errors.NotFoundError for an unknown product, ErrInvalidForm
//     for a colour or storage the product does not offer
func (s *Session) AddToCart(productID string, quantity int, opts cart.Options) (cart.Line, error) {
	p, ok := s.catalog.Get(productID)
	if !ok {
		return cart.Line{}, errors.NewProductNotFound(productID)
	}
	if err := checkOptions(p, opts); err != nil {
		return cart.Line{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.cart.Add(p, quantity, opts)
	s.logger.Debug("cart line added", zap.String("line", line.ID), zap.Int("quantity", line.Quantity))
	return line, nil
}

// checkOptions rejects a colour or storage that p does not offer. Empty
// options mean not selected and are always accepted.
func checkOptions(p catalog.Product, opts cart.Options) error {
	if opts.Color != "" && !slices.Contains(p.Colors, opts.Color) {
		return fmt.Errorf("%w: product %s has no color %q", errors.ErrInvalidForm, p.ID, opts.Color)
	}
	if opts.Storage != "" && !slices.Contains(p.StorageOptions, opts.Storage) {
		return fmt.Errorf("%w: product %s has no storage %q", errors.ErrInvalidForm, p.ID, opts.Storage)
	}
	return nil
}

// UpdateQuantity sets the quantity of a cart line. Unknown lines are ignored.
func (s *Session) UpdateQuantity(lineID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.UpdateQuantity(lineID, quantity)
}

// RemoveLine deletes a cart line.
func (s *Session) RemoveLine(lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := s.cart.Remove(lineID)
	s.logger.Debug("cart line removed", zap.String("line", lineID), zap.Bool("found", removed))
	return removed
}

// CartLines returns a copy of the cart lines.
func (s *Session) CartLines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// CartSummary prices the cart with the session rules.
func (s *Session) CartSummary() pricing.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Summarize(s.rules, s.cart.Lines())
}

// CartItemCount returns the number of units in the cart.
func (s *Session) CartItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

// ToggleWishlist flips wishlist membership and reports the result.
func (s *Session) ToggleWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ToggleWishlist(productID)
}

// RemoveFromWishlist drops a product from the wishlist.
func (s *Session) RemoveFromWishlist(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveFromWishlist(productID)
}

// WishlistCount returns the number of wishlisted products.
func (s *Session) WishlistCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.WishlistCount()
}

// WishlistProducts resolves the wishlist against the catalog in wishlist
// order. Ids missing from the catalog are skipped.
func (s *Session) WishlistProducts() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishlistProducts()
}

func (s *Session) wishlistProducts() []catalog.Product {
	ids := s.cart.Wishlist()
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.catalog.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Checkout returns the checkout state.
func (s *Session) Checkout() checkout.Snapshot {
	return s.checkout.Snapshot()
}

// CheckoutNext advances the checkout stepper.
func (s *Session) CheckoutNext() checkout.Step {
	return s.checkout.Next()
}

// CheckoutBack moves the checkout stepper back.
func (s *Session) CheckoutBack() checkout.Step {
	return s.checkout.Back()
}

// SetShipping replaces the shipping form.
func (s *Session) SetShipping(form checkout.ShippingForm) {
	s.checkout.SetShipping(form)
}

// SetShippingField sets one shipping field by its json name.
func (s *Session) SetShippingField(name, value string) error {
	return s.checkout.SetField(name, value)
}

// SelectPayment chooses the payment method.
func (s *Session) SelectPayment(m checkout.PaymentMethod) error {
	return s.checkout.SelectPayment(m)
}

// PlaceOrder places the cart as an order. On success the cart is emptied
// and the session moves to the order confirmation view.
//
// PlaceOrder 将购物车下单。成功后清空购物车并跳转到订单确认页面。
//
// Returns:
//   - checkout.Order: The placed order
//   - error: ErrNotAtReview or ErrIncompleteShipping
func (s *Session) PlaceOrder() (checkout.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	defer s.metrics.Timer("place_order")()
	order, err := s.checkout.PlaceOrder(s.cart.Lines())
	if err != nil {
		s.logger.Info("order rejected", zap.Error(err))
		return checkout.Order{}, err
	}

	s.cart.Clear()
	stored := order.Clone()
	s.lastOrder = &stored
	s.navigate(navigation.OrderConfirmation, navigation.Params{"order": order.Clone()})

	s.metrics.RecordOrder(string(order.Payment), order.Total.InexactFloat64())
	s.logger.Info("order placed",
		zap.String("order", order.Number),
		zap.String("payment", string(order.Payment)),
		zap.Int("lines", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)),
	)
	return order, nil
}

// LastOrder returns the most recently placed order.
func (s *Session) LastOrder() (checkout.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOrder == nil {
		return checkout.Order{}, errors.ErrOrderNotFound
	}
	return s.lastOrder.Clone(), nil
}

// SubmitContact validates a contact message and thanks the sender.
//
// Returns:
//   - error: ErrInvalidForm wrapped with the failing field names
func (s *Session) SubmitContact(form ContactForm) error {
	if bad := checkout.MissingFields(checkout.Validator(), form.trimmed()); len(bad) > 0 {
		return fmt.Errorf("%w: %s", errors.ErrInvalidForm, strings.Join(bad, ", "))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notify(s.t("toastContactThanks", nil), notify.Long)
	s.logger.Info("contact message received", zap.String("subject", strings.TrimSpace(form.Subject)))
	return nil
}
