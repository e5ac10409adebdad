package engine

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/hexlight/internal/debounce"
)

// TracerName is the instrumentation name used for pipeline spans.
const TracerName = "github.com/dshills/hexlight/internal/engine"

// Span names.
const (
	SpanRefresh   = "hexlight.refresh"
	SpanHighlight = "hexlight.highlight"
)

// Option configures a Controller during creation.
type Option func(*Controller)

// WithScheduler sets the debounce scheduler used for viewport changes.
func WithScheduler(s *debounce.Scheduler) Option {
	return func(c *Controller) {
		if s != nil {
			c.sched = s
		}
	}
}

// WithTracerProvider sets the provider pipeline spans are created from.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Controller) {
		if tp != nil {
			c.tracer = tp.Tracer(TracerName)
		}
	}
}

// WithDisabled creates a controller that starts turned off.
func WithDisabled() Option {
	return func(c *Controller) {
		c.enabled.Store(false)
	}
}

func defaultTracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
