// Package navigation tracks which storefront view is shown and the
// parameters it was opened with. There is no history stack: every
// navigation replaces the state.
package navigation

import (
	"fmt"
	"maps"
	"sync"

	"github.com/Humphrey-He/mtstore/pkg/errors"
)

// View is one of the storefront pages.
type View int

const (
	Home View = iota
	Shop
	ProductDetails
	Cart
	Checkout
	OrderConfirmation
	Account
	Wishlist
	About
	Contact
	Deals
	Categories
)

var viewNames = [...]string{
	Home:              "home",
	Shop:              "shop",
	ProductDetails:    "product",
	Cart:              "cart",
	Checkout:          "checkout",
	OrderConfirmation: "order-confirmation",
	Account:           "account",
	Wishlist:          "wishlist",
	About:             "about",
	Contact:           "contact",
	Deals:             "deals",
	Categories:        "categories",
}

// Views lists every view in declaration order.
func Views() []View {
	out := make([]View, len(viewNames))
	for i := range viewNames {
		out[i] = View(i)
	}
	return out
}

// Valid reports whether v is one of the declared views.
func (v View) Valid() bool {
	return v >= 0 && int(v) < len(viewNames)
}

func (v View) String() string {
	if !v.Valid() {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// MarshalText implements encoding.TextMarshaler.
func (v View) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: %d", errors.ErrUnknownView, int(v))
	}
	return []byte(viewNames[v]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *View) UnmarshalText(b []byte) error {
	parsed, err := ParseView(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseView converts a wire name such as "order-confirmation" into a View.
func ParseView(name string) (View, error) {
	for i, n := range viewNames {
		if n == name {
			return View(i), nil
		}
	}
	return Home, fmt.Errorf("%w: %q", errors.ErrUnknownView, name)
}

// Params carries view parameters such as a product id or a placed order.
type Params map[string]any

// State is the current view and its parameters.
type State struct {
	View   View   `json:"view"`
	Params Params `json:"params"`
}

// StringParam returns params[key] when it is a string.
func (s State) StringParam(key string) (string, bool) {
	v, ok := s.Params[key].(string)
	return v, ok
}

// Param returns params[key].
func (s State) Param(key string) (any, bool) {
	v, ok := s.Params[key]
	return v, ok
}

// ScrollListener is told to scroll to the top after each navigation.
type ScrollListener func(State)

// Controller owns the navigation state.
type Controller struct {
	mu        sync.RWMutex
	state     State
	listeners []ScrollListener
}

// NewController starts at the home view with no parameters.
func NewController() *Controller {
	return &Controller{state: State{View: Home, Params: Params{}}}
}

// OnScrollToTop registers a listener called after every navigation.
func (c *Controller) OnScrollToTop(l ScrollListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// Navigate replaces the view and parameters. A nil params map becomes empty;
// an undeclared view falls back to home.
func (c *Controller) Navigate(view View, params Params) State {
	if !view.Valid() {
		view = Home
	}
	next := State{View: view, Params: maps.Clone(params)}
	if next.Params == nil {
		next.Params = Params{}
	}

	c.mu.Lock()
	c.state = next
	listeners := c.listeners
	c.mu.Unlock()

	for _, l := range listeners {
		l(next.copy())
	}
	return next.copy()
}

// Current returns a copy of the navigation state.
func (c *Controller) Current() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.copy()
}

func (s State) copy() State {
	s.Params = maps.Clone(s.Params)
	return s
}
