// Package metrics provides storefront session metrics backed by the
// Prometheus client library.
// Package metrics 提供基于Prometheus客户端库的商店会话指标。
//
// All recording methods are safe on a nil *Metrics, so callers that run
// without metrics do not need to branch.
//
// 所有记录方法在nil *Metrics上调用都是安全的，因此不启用指标的调用方无需分支判断。
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Level defines the metrics collection level.
// Level 定义指标采集级别。
type Level int

const (
	// Disabled means metrics collection is turned off.
	// Disabled 表示禁用指标采集。
	Disabled Level = iota

	// Basic enables the activity counters.
	// Basic 启用活动计数器。
	Basic

	// Detailed adds per-operation latency histograms.
	// Detailed 额外启用每个操作的延迟直方图。
	Detailed
)

// ParseLevel converts a config string into a Level. Unknown values mean Basic.
func ParseLevel(s string) Level {
	switch s {
	case "disabled", "off", "none":
		return Disabled
	case "detailed":
		return Detailed
	default:
		return Basic
	}
}

const namespace = "mtstore"

// Config defines metrics configuration options.
// Config 定义指标配置选项。
type Config struct {
	// Level determines the detail level of metrics collection
	// Level 指定指标采集的详细程度
	Level Level

	// Store is the constant "store" label attached to every metric
	// Store 是附加到每个指标的常量"store"标签
	Store string
}

// Metrics collects session activity.
//
// Metrics 收集会话活动。
type Metrics struct {
	level    Level
	registry *prometheus.Registry

	sessions     prometheus.Gauge
	cartAdds     prometheus.Counter
	cartUnits    prometheus.Counter
	cartRemovals prometheus.Counter
	wishlist     *prometheus.CounterVec
	orders       *prometheus.CounterVec
	orderTotal   prometheus.Counter
	navigations  *prometheus.CounterVec
	browse       *prometheus.CounterVec
	toasts       prometheus.Counter
	latency      *prometheus.HistogramVec
}

// New creates a Metrics collector with its own registry. It returns nil when
// the level is Disabled.
//
// Parameters:
//   - config: Metrics configuration
//
// Returns:
//   - *Metrics: The collector, or nil when disabled
func New(config Config) *Metrics {
	if config.Level == Disabled {
		return nil
	}

	labels := prometheus.Labels{}
	if config.Store != "" {
		labels["store"] = config.Store
	}

	m := &Metrics{
		level:    config.Level,
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "sessions_active", ConstLabels: labels,
			Help: "Number of live storefront sessions.",
		}),
		cartAdds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cart", Name: "adds_total", ConstLabels: labels,
			Help: "Number of add-to-cart operations.",
		}),
		cartUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cart", Name: "units_added_total", ConstLabels: labels,
			Help: "Number of units added to carts.",
		}),
		cartRemovals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cart", Name: "removals_total", ConstLabels: labels,
			Help: "Number of cart line removals.",
		}),
		wishlist: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "wishlist", Name: "changes_total", ConstLabels: labels,
			Help: "Number of wishlist changes by action.",
		}, []string{"action"}),
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "checkout", Name: "orders_total", ConstLabels: labels,
			Help: "Number of placed orders by payment method.",
		}, []string{"payment"}),
		orderTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "checkout", Name: "order_value_total", ConstLabels: labels,
			Help: "Sum of placed order totals in dollars.",
		}),
		navigations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "navigation", Name: "views_total", ConstLabels: labels,
			Help: "Number of navigations by view.",
		}, []string{"view"}),
		browse: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "browse", Name: "queries_total", ConstLabels: labels,
			Help: "Number of shop queries by result.",
		}, []string{"result"}),
		toasts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "notifications_total", ConstLabels: labels,
			Help: "Number of user notifications shown.",
		}),
	}

	m.registry.MustRegister(
		m.sessions, m.cartAdds, m.cartUnits, m.cartRemovals, m.wishlist,
		m.orders, m.orderTotal, m.navigations, m.browse, m.toasts,
	)

	if config.Level >= Detailed {
		m.latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "operation_duration_seconds", ConstLabels: labels,
			Help:    "Latency of session operations.",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"op"})
		m.registry.MustRegister(m.latency)
	}

	return m
}

// Registry returns the registry holding every metric.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Level returns the collection level.
func (m *Metrics) Level() Level {
	if m == nil {
		return Disabled
	}
	return m.level
}

// SessionOpened increments the live session gauge.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.sessions.Inc()
	}
}

// SessionClosed decrements the live session gauge.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.sessions.Dec()
	}
}

// RecordCartAdd counts an add-to-cart of units.
func (m *Metrics) RecordCartAdd(units int) {
	if m == nil {
		return
	}
	m.cartAdds.Inc()
	m.cartUnits.Add(float64(units))
}

// RecordCartRemove counts a line removal.
func (m *Metrics) RecordCartRemove() {
	if m != nil {
		m.cartRemovals.Inc()
	}
}

// RecordWishlist counts a wishlist change.
func (m *Metrics) RecordWishlist(added bool) {
	if m == nil {
		return
	}
	action := "removed"
	if added {
		action = "added"
	}
	m.wishlist.WithLabelValues(action).Inc()
}

// RecordOrder counts a placed order and its total.
func (m *Metrics) RecordOrder(payment string, total float64) {
	if m == nil {
		return
	}
	m.orders.WithLabelValues(payment).Inc()
	m.orderTotal.Add(total)
}

// RecordNavigation counts a navigation to view.
func (m *Metrics) RecordNavigation(view string) {
	if m != nil {
		m.navigations.WithLabelValues(view).Inc()
	}
}

// RecordBrowse counts a shop query; empty marks a query with no results.
func (m *Metrics) RecordBrowse(empty bool) {
	if m == nil {
		return
	}
	result := "found"
	if empty {
		result = "empty"
	}
	m.browse.WithLabelValues(result).Inc()
}

// RecordNotification counts a notification.
func (m *Metrics) RecordNotification() {
	if m != nil {
		m.toasts.Inc()
	}
}

// ObserveOperation records the latency of op at the Detailed level.
func (m *Metrics) ObserveOperation(op string, d time.Duration) {
	if m == nil || m.latency == nil {
		return
	}
	m.latency.WithLabelValues(op).Observe(d.Seconds())
}

// Timer starts timing op. Call the returned function when op finishes.
//
//	defer m.Timer("add_to_cart")()
func (m *Metrics) Timer(op string) func() {
	if m == nil || m.latency == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.ObserveOperation(op, time.Since(start))
	}
}
