// Package checkout implements the three-step checkout stepper and builds
// order records.
//
// Package checkout 实现三步结账流程并生成订单记录。
package checkout

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Humphrey-He/mtstore/pkg/cart"
	"github.com/Humphrey-He/mtstore/pkg/errors"
	"github.com/Humphrey-He/mtstore/pkg/pricing"
)

// Step is a checkout stage.
type Step int

const (
	StepShipping Step = iota + 1
	StepPayment
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// PaymentMethod is a payment option. No payment is processed.
type PaymentMethod string

const (
	PaymentCard          PaymentMethod = "card"
	PaymentPayPal        PaymentMethod = "paypal"
	PaymentCashOnDeliver PaymentMethod = "cod"
)

// PaymentMethods lists the methods in display order.
var PaymentMethods = []PaymentMethod{PaymentCard, PaymentPayPal, PaymentCashOnDeliver}

// ParsePaymentMethod validates a method name.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !slices.Contains(PaymentMethods, m) {
		return "", fmt.Errorf("%w: %q", errors.ErrUnknownPaymentMethod, s)
	}
	return m, nil
}

// DeliveryWindow is added to the order time to estimate delivery.
const DeliveryWindow = 7 * 24 * time.Hour

// Order is an immutable record of a placed order.
type Order struct {
	Number            string          `json:"order_number"`
	Shipping          ShippingForm    `json:"shipping"`
	Payment           PaymentMethod   `json:"payment_method"`
	Items             []cart.Line     `json:"items"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	ShippingCost      decimal.Decimal `json:"shipping_cost"`
	Tax               decimal.Decimal `json:"tax"`
	Total             decimal.Decimal `json:"total"`
	PlacedAt          time.Time       `json:"placed_at"`
	EstimatedDelivery time.Time       `json:"estimated_delivery"`
}

// Clone returns a copy of o that shares no memory with it.
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// Snapshot is a read-only view of the workflow.
type Snapshot struct {
	Step     Step          `json:"step"`
	Shipping ShippingForm  `json:"shipping"`
	Payment  PaymentMethod `json:"payment_method"`
	Missing  []string      `json:"missing_fields"`
}

// Workflow is the checkout stepper.
//
// Workflow 是结账步骤状态机。
type Workflow struct {
	mu       sync.Mutex
	step     Step
	shipping ShippingForm
	payment  PaymentMethod

	rules   pricing.Rules
	numbers *Sequencer
	now     func() time.Time
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithRules sets the pricing rules used for order totals.
func WithRules(r pricing.Rules) Option {
	return func(w *Workflow) {
		w.rules = r
	}
}

// WithClock sets the clock used for order times and numbers.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		w.now = now
	}
}

// NewWorkflow creates a workflow at the shipping step with card payment.
func NewWorkflow(opts ...Option) *Workflow {
	w := &Workflow{
		rules: pricing.DefaultRules(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.numbers = NewSequencer(w.now)
	w.reset()
	return w
}

// reset must be called with w.mu held or before w is shared.
func (w *Workflow) reset() {
	w.step = StepShipping
	w.shipping = ShippingForm{}
	w.payment = PaymentCard
}

// SetRules replaces the pricing rules for later orders.
func (w *Workflow) SetRules(r pricing.Rules) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.rules = r
}

// Step returns the current step.
func (w *Workflow) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Snapshot returns the current state.
func (w *Workflow) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Snapshot{
		Step:     w.step,
		Shipping: w.shipping,
		Payment:  w.payment,
		Missing:  w.shipping.Missing(),
	}
}

// Next advances one step. It does nothing at the review step and performs no
// validation.
func (w *Workflow) Next() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < StepReview {
		w.step++
	}
	return w.step
}

// Back goes back one step. It does nothing at the shipping step.
func (w *Workflow) Back() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepShipping {
		w.step--
	}
	return w.step
}

// SetShipping replaces the shipping form.
func (w *Workflow) SetShipping(form ShippingForm) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shipping = form
}

// SetField updates a single shipping field by name.
func (w *Workflow) SetField(name, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shipping.Set(name, value)
}

// SelectPayment changes the payment method. It is allowed at any step.
func (w *Workflow) SelectPayment(m PaymentMethod) error {
	if _, err := ParsePaymentMethod(string(m)); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payment = m
	return nil
}

// MissingFields returns the names of blank required shipping fields.
func (w *Workflow) MissingFields() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shipping.Missing()
}

// Ready reports whether every required shipping field is filled.
func (w *Workflow) Ready() bool {
	return len(w.MissingFields()) == 0
}

// PlaceOrder builds an order from the lines and resets the workflow. It is
// only allowed at the review step with a complete shipping form. The lines
// are copied, so later cart changes do not affect the order.
//
// PlaceOrder 根据购物车行创建订单并重置流程。只能在审核步骤且收货信息完整时调用。
// 购物车行会被复制，之后的购物车变化不会影响订单。
//
// Parameters:
//   - lines: The cart lines to order; may be empty
//
// Returns:
//   - Order: The placed order
//   - error: ErrNotAtReview or ErrIncompleteShipping
func (w *Workflow) PlaceOrder(lines []cart.Line) (Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepReview {
		return Order{}, fmt.Errorf("%w: at %s step", errors.ErrNotAtReview, w.step)
	}
	if missing := w.shipping.Missing(); len(missing) > 0 {
		return Order{}, fmt.Errorf("%w: %s", errors.ErrIncompleteShipping, strings.Join(missing, ", "))
	}

	items := slices.Clone(lines)
	if items == nil {
		items = make([]cart.Line, 0)
	}
	sum := pricing.Summarize(w.rules, items)
	placed := w.now()
	order := Order{
		Number:            w.numbers.Next(),
		Shipping:          w.shipping,
		Payment:           w.payment,
		Items:             items,
		Subtotal:          sum.Subtotal,
		ShippingCost:      sum.Shipping,
		Tax:               sum.Tax,
		Total:             sum.Total,
		PlacedAt:          placed,
		EstimatedDelivery: placed.Add(DeliveryWindow),
	}

	w.reset()
	return order, nil
}
