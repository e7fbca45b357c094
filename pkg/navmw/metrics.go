package navmw

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/termo-dev/termo/pkg/nav"
)

// MetricsConfig configures the Prometheus navigation observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "termo").
	Namespace string

	// Subsystem is the metrics subsystem (default: "nav").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for transition duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus navigation observer.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "termo",
		Subsystem: "nav",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// MetricsObserver records Prometheus metrics for every navigation:
//
//   - <ns>_nav_transitions_total: counter by direction and status
//   - <ns>_nav_transition_duration_seconds: histogram by direction
//   - <ns>_nav_transition_failures_total: counter by direction and reason
//   - <ns>_nav_transitions_in_flight: gauge of queued-but-unsettled requests
type MetricsObserver struct {
	transitionsTotal    *prometheus.CounterVec
	transitionDuration  *prometheus.HistogramVec
	transitionFailures  *prometheus.CounterVec
	transitionsInFlight prometheus.Gauge
}

var _ nav.Observer = (*MetricsObserver)(nil)

// Prometheus creates a navigation observer that collects Prometheus metrics.
//
// Example:
//
//	engine := nav.New(host, &nav.Config{
//	    Observers: []nav.Observer{
//	        navmw.Prometheus(navmw.WithNamespace("myapp")),
//	    },
//	})
//
//	// Expose metrics endpoint
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) *MetricsObserver {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &MetricsObserver{
		transitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_total",
			Help:        "Total number of navigation transitions processed",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "status"}),

		transitionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transition_duration_seconds",
			Help:        "Navigation transition duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"direction"}),

		transitionFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transition_failures_total",
			Help:        "Total number of failed navigation transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"direction", "reason"}),

		transitionsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "transitions_in_flight",
			Help:        "Navigation requests started but not yet settled",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// TransitionStarted implements nav.Observer.
func (m *MetricsObserver) TransitionStarted(path string, direction nav.Direction) {
	m.transitionsInFlight.Inc()
}

// TransitionFinished implements nav.Observer.
func (m *MetricsObserver) TransitionFinished(to, from *nav.Route, direction nav.Direction, err error, elapsed time.Duration) {
	m.transitionsInFlight.Dec()

	dir := string(direction)
	m.transitionDuration.WithLabelValues(dir).Observe(elapsed.Seconds())

	status := "success"
	if err != nil {
		status = "error"
		m.transitionFailures.WithLabelValues(dir, failureReason(err)).Inc()
	}
	m.transitionsTotal.WithLabelValues(dir, status).Inc()
}

// failureReason maps a transition error to a bounded label value. Sentinel
// matching keeps the cardinality fixed regardless of error messages.
func failureReason(err error) string {
	var viewErr *nav.ViewError
	switch {
	case errors.Is(err, nav.ErrGuardAbort):
		return "guard_abort"
	case errors.Is(err, nav.ErrRedirectLoop):
		return "redirect_loop"
	case errors.Is(err, nav.ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, nav.ErrQueueFull):
		return "queue_full"
	case errors.Is(err, nav.ErrEngineClosed):
		return "engine_closed"
	case errors.As(err, &viewErr):
		if viewErr.Panic != nil {
			return "view_panic"
		}
		return "view_error"
	default:
		return "internal"
	}
}
