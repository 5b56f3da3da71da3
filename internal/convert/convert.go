// Package convert implements the miles-to-kilometers conversion engine.
// It exposes the exact linear formula together with three experimental
// interpolation strategies that reuse the Fibonacci sequence as a proxy
// distance axis: an on-demand interval walk, a bounded precomputed table,
// and a closed-form Binet-formula estimator. Each strategy degrades to the
// linear formula outside its useful range, so every operation is total over
// non-negative distances.
package convert

//go:generate mockgen -destination=mocks/mock_strategy.go -package=mocks github.com/alexeev-prog/fib-miles2km/internal/convert Strategy

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var (
	conversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "miles2km_conversions_total",
			Help: "The total number of distance conversions processed",
		},
		[]string{"strategy"},
	)
	conversionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "miles2km_conversion_duration_seconds",
			Help: "The duration of distance conversions in seconds",
		},
		[]string{"strategy"},
	)
)

// Strategy defines the public interface for a miles-to-kilometers conversion
// strategy. It is the primary abstraction used by the CLI, REPL, TUI and
// server layers to interact with the different conversion algorithms.
type Strategy interface {
	// Convert turns a distance in miles into kilometers. Conversions are
	// total over non-negative inputs: strategies degrade to the linear
	// formula rather than failing. The context carries tracing metadata
	// and is never used for cancellation (conversions are O(1) CPU work).
	//
	// Parameters:
	//   - ctx: The context for tracing propagation.
	//   - miles: The distance in miles. Callers validate sign and range.
	//
	// Returns:
	//   - float32: The distance in kilometers.
	Convert(ctx context.Context, miles float64) float32

	// Name returns the display name of the strategy (e.g., "Fibonacci walk").
	Name() string

	// Slug returns the short machine-friendly identifier used for flag
	// values, registry keys and metric labels (e.g., "walk").
	Slug() string
}

// coreStrategy is the internal interface for a bare conversion algorithm,
// before instrumentation is layered on top.
type coreStrategy interface {
	ConvertCore(miles float64) float32
	Name() string
	Slug() string
}

// instrumented wraps a coreStrategy with cross-cutting concerns: a tracing
// span, Prometheus counters and structured debug logging. It follows the
// Decorator pattern so the pure algorithms stay free of observability code.
type instrumented struct {
	core coreStrategy
}

// NewStrategy wraps a core conversion algorithm into a fully instrumented
// Strategy. It panics if core is nil, ensuring system integrity.
func NewStrategy(core coreStrategy) Strategy {
	if core == nil {
		panic("convert: NewStrategy called with nil core")
	}
	return &instrumented{core: core}
}

// Convert runs the underlying algorithm and records observability data.
func (s *instrumented) Convert(ctx context.Context, miles float64) float32 {
	tracer := otel.Tracer("convert")
	_, span := tracer.Start(ctx, "Convert")
	defer span.End()

	start := time.Now()
	km := s.core.ConvertCore(miles)

	conversionsTotal.WithLabelValues(s.core.Slug()).Inc()
	conversionDuration.WithLabelValues(s.core.Slug()).Observe(time.Since(start).Seconds())
	log.Debug().
		Str("strategy", s.core.Slug()).
		Float64("miles", miles).
		Float32("km", km).
		Msg("conversion complete")

	return km
}

// Name returns the display name of the wrapped algorithm.
func (s *instrumented) Name() string { return s.core.Name() }

// Slug returns the identifier of the wrapped algorithm.
func (s *instrumented) Slug() string { return s.core.Slug() }
