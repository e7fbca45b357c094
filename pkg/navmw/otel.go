package navmw

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/termo-dev/termo/pkg/nav"
)

// Default tracer name for navigation spans.
const defaultTracerName = "termo"

// TracingConfig configures the OpenTelemetry navigation observer.
type TracingConfig struct {
	// TracerName is the name of the tracer (default: "termo").
	TracerName string

	// IncludeQuery includes decoded query parameters as span attributes.
	// Query strings may carry sensitive values - disabled by default.
	IncludeQuery bool

	// AttributeExtractor extracts custom attributes for each finished
	// transition. Called with the settled target and origin routes.
	AttributeExtractor func(to, from *nav.Route) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// TracingOption configures the OpenTelemetry navigation observer.
type TracingOption func(*TracingConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) TracingOption {
	return func(c *TracingConfig) {
		c.TracerName = name
	}
}

// WithIncludeQuery enables including query parameters in spans.
func WithIncludeQuery(include bool) TracingOption {
	return func(c *TracingConfig) {
		c.IncludeQuery = include
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(to, from *nav.Route) []attribute.KeyValue) TracingOption {
	return func(c *TracingConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultTracingConfig() TracingConfig {
	return TracingConfig{
		TracerName: defaultTracerName,
	}
}

// TraceObserver creates one span per navigation request, from the moment it
// is dequeued until it settles. Redirect hops live inside the same span.
//
// The engine serializes transitions through a single worker, so at most one
// span is open at a time; the mutex only defends against a misused observer
// shared across engines.
type TraceObserver struct {
	config TracingConfig

	mu   sync.Mutex
	span trace.Span
}

var _ nav.Observer = (*TraceObserver)(nil)

// Tracing creates a navigation observer that traces every transition.
//
// The tracer uses the global OpenTelemetry tracer provider. Configure it in
// your main() before creating the engine:
//
//	tp := sdktrace.NewTracerProvider(
//	    sdktrace.WithBatcher(exporter),
//	)
//	otel.SetTracerProvider(tp)
func Tracing(opts ...TracingOption) *TraceObserver {
	config := defaultTracingConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return &TraceObserver{config: config}
}

// TransitionStarted implements nav.Observer.
func (o *TraceObserver) TransitionStarted(path string, direction nav.Direction) {
	spanName := fmt.Sprintf("nav.%s", direction)
	_, span := o.config.tracer.Start(
		context.Background(),
		spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("nav.requested_path", path),
			attribute.String("nav.direction", string(direction)),
		),
		trace.WithTimestamp(time.Now()),
	)

	o.mu.Lock()
	o.span = span
	o.mu.Unlock()
}

// TransitionFinished implements nav.Observer.
func (o *TraceObserver) TransitionFinished(to, from *nav.Route, direction nav.Direction, err error, elapsed time.Duration) {
	o.mu.Lock()
	span := o.span
	o.span = nil
	o.mu.Unlock()

	if span == nil {
		return
	}
	defer span.End()

	if to != nil {
		span.SetAttributes(attribute.String("nav.settled_path", to.Path))
		if to.Name != "" {
			span.SetAttributes(attribute.String("nav.route_name", to.Name))
		}
		if to.Matched != nil {
			span.SetAttributes(attribute.String("nav.route_pattern", to.Matched.Path))
		}
		if o.config.IncludeQuery {
			for k, v := range to.Query {
				span.SetAttributes(attribute.String("nav.query."+k, fmt.Sprintf("%v", v)))
			}
		}
	}
	if from != nil {
		span.SetAttributes(attribute.String("nav.from_path", from.Path))
	}
	if o.config.AttributeExtractor != nil {
		span.SetAttributes(o.config.AttributeExtractor(to, from)...)
	}
	span.SetAttributes(attribute.Int64("nav.elapsed_us", elapsed.Microseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
