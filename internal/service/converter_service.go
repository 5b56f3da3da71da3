// Package service provides the validation boundary between the transports
// (CLI, REPL, HTTP) and the conversion engine. The engine is total over its
// accepted domain, so all user-facing range and sign checks live here.
package service

import (
	"context"
	"math"

	"github.com/alexeev-prog/fib-miles2km/internal/convert"
	apperrors "github.com/alexeev-prog/fib-miles2km/internal/errors"
)

// Result is the outcome of a single conversion: the kilometer value paired
// with the strategy that produced it.
type Result struct {
	Miles    float64 `json:"miles"`
	Km       float32 `json:"km"`
	Strategy string  `json:"strategy"`
}

// Service defines the operations exposed to the transports.
type Service interface {
	// Convert validates the distance and strategy and performs the
	// conversion.
	Convert(ctx context.Context, miles float64, strategy string) (Result, error)

	// FibKilometers performs the integer Fibonacci path: for a whole
	// number of miles N in 1..93 it returns F(N+1) as the kilometer value.
	FibKilometers(miles int64) (uint64, error)

	// Strategies returns the sorted slugs of the available strategies.
	Strategies() []string
}

// ConverterService is the default Service implementation backed by a
// strategy factory.
type ConverterService struct {
	factory convert.Factory
}

// NewConverterService creates a ConverterService using the given factory.
func NewConverterService(factory convert.Factory) *ConverterService {
	return &ConverterService{factory: factory}
}

// Convert validates the input and runs the selected strategy. Negative,
// NaN and infinite distances are rejected before the engine is touched.
func (s *ConverterService) Convert(ctx context.Context, miles float64, strategy string) (Result, error) {
	if math.IsNaN(miles) || math.IsInf(miles, 0) {
		return Result{}, apperrors.NewValidationError("miles", "must be a finite number")
	}
	if miles < 0 {
		return Result{}, apperrors.NewValidationError("miles", "must be non-negative, got %g", miles)
	}

	strat, err := s.factory.Get(strategy)
	if err != nil {
		return Result{}, apperrors.NewValidationError("strategy", "unknown strategy %q", strategy)
	}

	return Result{
		Miles:    miles,
		Km:       strat.Convert(ctx, miles),
		Strategy: strat.Slug(),
	}, nil
}

// FibKilometers enforces the documented 1..93 range before calling the
// generator. Note the boundary: 93 miles maps to index 94, whose value
// wraps modulo 2^64; that wrapped kilometer figure is the historical
// output for the maximum input and is preserved as-is.
func (s *ConverterService) FibKilometers(miles int64) (uint64, error) {
	if miles <= 0 {
		return 0, apperrors.NewValidationError("miles", "must be a positive integer, got %d", miles)
	}
	if miles > convert.MaxFibUint64 {
		return 0, apperrors.NewValidationError("miles", "maximum supported value is %d miles", convert.MaxFibUint64)
	}
	return convert.Fibonacci(int(miles) + 1), nil
}

// Strategies returns the sorted slugs of the available strategies.
func (s *ConverterService) Strategies() []string {
	return s.factory.List()
}
