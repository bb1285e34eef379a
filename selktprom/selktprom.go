// Package selktprom exports selkt runtime activity as Prometheus metrics.
//
// Metrics collected:
//   - selkt_store_sets_total: Counter of notifying writes by store name
//   - selkt_drains_total: Counter of completed drains
//   - selkt_drain_passes: Histogram of passes per drain
//   - selkt_notifications_total: Counter of listeners fired by drains
//   - selkt_drain_duration_seconds: Histogram of drain wall time
//   - selkt_selection_changes_total: Counter of selections reporting a new slice
//
// Example:
//
//	c := selktprom.New(selktprom.WithRegistry(reg))
//	rt := selkt.New(selkt.WithHooks(c.Hooks()))
package selktprom

import (
	"time"

	"github.com/delaneyj/selkt/selkt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config configures the collector.
type Config struct {
	// Namespace is the metrics namespace (default: "selkt").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for drain duration.
	// Default: DefaultDurationBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// DefaultDurationBuckets span one microsecond to roughly a tenth of a second.
// Drains are synchronous and far faster than prometheus.DefBuckets assume.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(1e-6, 4, 10)

// passBuckets cover the default drain limit.
var passBuckets = []float64{1, 2, 3, 5, 10, 25, 50, 100}

type Option func(*Config)

func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "selkt",
		Buckets:   DefaultDurationBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the metrics fed by a runtime's hooks.
type Collector struct {
	storeSets        *prometheus.CounterVec
	drains           prometheus.Counter
	drainPasses      prometheus.Histogram
	notifications    prometheus.Counter
	drainDuration    prometheus.Histogram
	selectionChanges prometheus.Counter
}

// New registers the metrics with the configured registry. Registering twice
// with the same registry panics, as promauto does.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		storeSets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_sets_total",
			Help:        "Total number of store writes that notified listeners",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		drains: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drains_total",
			Help:        "Total number of completed drains",
			ConstLabels: config.ConstLabels,
		}),

		drainPasses: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drain_passes",
			Help:        "Number of notification passes per drain",
			ConstLabels: config.ConstLabels,
			Buckets:     passBuckets,
		}),

		notifications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "notifications_total",
			Help:        "Total number of listeners fired by drains",
			ConstLabels: config.ConstLabels,
		}),

		drainDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "drain_duration_seconds",
			Help:        "Drain wall time in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		selectionChanges: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "selection_changes_total",
			Help:        "Total number of selections that reported a new slice",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Hooks returns runtime hooks that record into c.
func (c *Collector) Hooks() selkt.Hooks {
	return selkt.Hooks{
		StoreSet:         c.storeSet,
		DrainFinished:    c.drainFinished,
		SelectionChanged: c.selectionChanges.Inc,
	}
}

func (c *Collector) storeSet(store string, _ uint64) {
	c.storeSets.WithLabelValues(store).Inc()
}

func (c *Collector) drainFinished(passes, notified int, elapsed time.Duration) {
	c.drains.Inc()
	c.drainPasses.Observe(float64(passes))
	c.notifications.Add(float64(notified))
	c.drainDuration.Observe(elapsed.Seconds())
}
