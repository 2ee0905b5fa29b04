package core

import (
	"go.uber.org/zap"

	"github.com/Humphrey-He/mtstore/internal/countdown"
	"github.com/Humphrey-He/mtstore/internal/metrics"
	"github.com/Humphrey-He/mtstore/pkg/catalog"
	"github.com/Humphrey-He/mtstore/pkg/i18n"
)

// Option is a function type for configuring a Factory.
// It follows the functional options pattern, allowing for flexible and
// readable configuration.
type Option func(f *Factory)

// WithLogger sets the logger handed to every session.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector shared by every session.
// A nil collector disables metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Factory) {
		f.metrics = m
	}
}

// WithCountdown attaches the deals countdown shown by every session.
func WithCountdown(c *countdown.Countdown) Option {
	return func(f *Factory) {
		f.countdown = c
	}
}

// WithCatalog uses the given catalog instead of the configured one.
func WithCatalog(store *catalog.Store) Option {
	return func(f *Factory) {
		f.catalog = store
	}
}

// WithTranslator uses the given translation table instead of the configured one.
func WithTranslator(t *i18n.Translator) Option {
	return func(f *Factory) {
		f.translator = t
	}
}
