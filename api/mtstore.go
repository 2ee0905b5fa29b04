// Package api provides the main entry point for the MT Store API.
// It re-exports the core interfaces and types from the sub-packages.
package api

import (
	"github.com/Humphrey-He/mtstore/api/core"
	"github.com/Humphrey-He/mtstore/pkg/browse"
	"github.com/Humphrey-He/mtstore/pkg/cart"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/checkout"
	"github.com/Humphrey-He/mtstore/pkg/errors"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
	"github.com/Humphrey-He/mtstore/pkg/navigation"
	"github.com/Humphrey-He/mtstore/pkg/notify"
	"github.com/Humphrey-He/mtstore/pkg/storefront"
)

// Factory creates sessions from a configuration.
// It is re-exported from the core package.
type Factory = core.Factory

// Option is a function type for configuring a Factory.
// It is re-exported from the core package.
type Option = core.Option

// Session is the state of one shopper.
// It is re-exported from the storefront package.
type Session = storefront.Session

// SessionOption is a function type for configuring a Session.
// It is re-exported from the storefront package.
type SessionOption = storefront.Option

// Page is a rendered view.
// It is re-exported from the storefront package.
type Page = storefront.Page

// ContactForm is a contact page message.
// It is re-exported from the storefront package.
type ContactForm = storefront.ContactForm

// Product is a catalog entry.
// It is re-exported from the catalog package.
type Product = catalog.Product

// Line is a cart line.
// It is re-exported from the cart package.
type Line = cart.Line

// LineOptions is the colour and storage chosen for a cart line.
// It is re-exported from the cart package.
type LineOptions = cart.Options

// Filter restricts a product list.
// It is re-exported from the browse package.
type Filter = browse.Filter

// SortKey selects the order of a product list.
// It is re-exported from the browse package.
type SortKey = browse.SortKey

// Order is a placed order.
// It is re-exported from the checkout package.
type Order = checkout.Order

// ShippingForm is the checkout shipping form.
// It is re-exported from the checkout package.
type ShippingForm = checkout.ShippingForm

// PaymentMethod is a checkout payment method.
// It is re-exported from the checkout package.
type PaymentMethod = checkout.PaymentMethod

// View is a navigation view.
// It is re-exported from the navigation package.
type View = navigation.View

// Params carries view parameters.
// It is re-exported from the navigation package.
type Params = navigation.Params

// Language is a display language.
// It is re-exported from the i18n package.
type Language = i18n.Language

// Notifier shows user notifications.
// It is re-exported from the notify package.
type Notifier = notify.Notifier

// NotFoundError is a failed lookup for a specific id.
// It is re-exported from the errors package.
type NotFoundError = errors.NotFoundError

// Re-export functions from the core package.
var (
	// NewFactory creates a Factory from a configuration.
	NewFactory = core.NewFactory

	// WithLogger sets the logger handed to every session.
	WithLogger = core.WithLogger

	// WithMetrics sets the metrics collector shared by every session.
	WithMetrics = core.WithMetrics

	// WithCountdown attaches the deals countdown shown by every session.
	WithCountdown = core.WithCountdown

	// WithCatalog uses the given catalog instead of the configured one.
	WithCatalog = core.WithCatalog

	// WithTranslator uses the given translation table instead of the configured one.
	WithTranslator = core.WithTranslator
)

// Re-export functions from the storefront package.
var (
	// NewSession creates a session over a catalog.
	NewSession = storefront.New

	// WithNotifier sets where a session sends notifications.
	WithNotifier = storefront.WithNotifier

	// WithLanguage sets the initial display language of a session.
	WithLanguage = storefront.WithLanguage

	// WithClock sets the clock a session uses for orders.
	WithClock = storefront.WithClock
)

// Re-export error checking functions from the errors package.
var (
	// IsNotFound returns true if the error is a missing product or order.
	IsNotFound = errors.IsNotFound

	// IsValidation returns true if the error was caused by invalid caller input.
	IsValidation = errors.IsValidation
)
