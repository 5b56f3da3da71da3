package convert

import (
	"math"
	"testing"
)

const floatTolerance = 1e-4

func approxEqual(got, want float32, tol float64) bool {
	return math.Abs(float64(got)-float64(want)) <= tol
}

func TestLinearKm(t *testing.T) {
	tests := []struct {
		name  string
		miles float64
		want  float32
	}{
		{"zero miles", 0, 0},
		{"one mile", 1, 1.609344},
		{"ten miles", 10, 16.09344},
		{"fractional", 2.5, 4.02336},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearKm(tt.miles); !approxEqual(got, tt.want, 1e-5) {
				t.Errorf("LinearKm(%v) = %v, want %v", tt.miles, got, tt.want)
			}
		})
	}
}

// Golden-value regression tests for the interpolators. The values below are
// pinned from the documented formulas: for 10 miles the bracket is the
// sequence pair 8 -> 13 with lookahead 21, giving 13 + 2*(8/5) = 16.2.
func TestWalkKm_GoldenValues(t *testing.T) {
	tests := []struct {
		name  string
		miles float64
		want  float32
	}{
		{"ten miles", 10, 16.2},
		{"six miles", 6, 9.666667},
		{"twenty miles", 20, 32.375},
		{"exactly on a sequence value", 13, 21},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WalkKm(tt.miles); !approxEqual(got, tt.want, floatTolerance) {
				t.Errorf("WalkKm(%v) = %v, want %v", tt.miles, got, tt.want)
			}
		})
	}
}

func TestCachedKm_GoldenValues(t *testing.T) {
	tests := []struct {
		name  string
		miles float64
		want  float32
	}{
		{"ten miles", 10, 16.2},
		{"six miles", 6, 9.666667},
		{"twenty miles", 20, 32.375},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CachedKm(tt.miles); !approxEqual(got, tt.want, floatTolerance) {
				t.Errorf("CachedKm(%v) = %v, want %v", tt.miles, got, tt.want)
			}
		})
	}
}

func TestWalkKm_BelowFloorDelegatesToLinear(t *testing.T) {
	for _, miles := range []float64{0, 0.1, 1, 4.999} {
		if got, want := WalkKm(miles), LinearKm(miles); got != want {
			t.Errorf("WalkKm(%v) = %v, want linear result %v", miles, got, want)
		}
	}
}

func TestCachedKm_BelowFloorDelegatesToLinear(t *testing.T) {
	for _, miles := range []float64{0, 0.1, 1, 4.999} {
		if got, want := CachedKm(miles), LinearKm(miles); got != want {
			t.Errorf("CachedKm(%v) = %v, want linear result %v", miles, got, want)
		}
	}
}

func TestCachedKm_TableExhaustionDelegatesToLinear(t *testing.T) {
	// Inputs beyond the table's three-point lookahead use the linear
	// formula instead of a truncated bracket.
	miles := 2e19
	if got, want := CachedKm(miles), LinearKm(miles); got != want {
		t.Errorf("CachedKm(%v) = %v, want linear result %v", miles, got, want)
	}
}

func TestWalkKm_OverflowBoundaryStaysFinite(t *testing.T) {
	// Near the uint64 ceiling the walk breaks on wraparound and
	// interpolates with the last valid bracket; the result must be a
	// finite number, not NaN or Inf.
	for _, miles := range []float64{1.2e19, 1.5e19, 2e19} {
		got := WalkKm(miles)
		if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
			t.Errorf("WalkKm(%v) = %v, want a finite value", miles, got)
		}
	}
}

func TestGoldenKm_GoldenValues(t *testing.T) {
	// Binet's formula is exact enough at small indices that the ten-mile
	// bracket matches the iterative strategies.
	if got := GoldenKm(10); !approxEqual(got, 16.2, 1e-3) {
		t.Errorf("GoldenKm(10) = %v, want ~16.2", got)
	}
}

func TestGoldenKm_NearZeroReturnsZero(t *testing.T) {
	for _, miles := range []float64{0, 1e-6, 9.9e-6} {
		if got := GoldenKm(miles); got != 0 {
			t.Errorf("GoldenKm(%v) = %v, want 0", miles, got)
		}
	}
}

func TestGoldenKm_BelowFloorDelegatesToLinear(t *testing.T) {
	for _, miles := range []float64{0.001, 1, 4.999} {
		if got, want := GoldenKm(miles), LinearKm(miles); got != want {
			t.Errorf("GoldenKm(%v) = %v, want linear result %v", miles, got, want)
		}
	}
}

func TestGoldenKm_LargeInputsStayFinite(t *testing.T) {
	for _, miles := range []float64{10000, 1e9, 1e15, 1e30} {
		got := GoldenKm(miles)
		if math.IsNaN(float64(got)) || math.IsInf(float64(got), 0) {
			t.Errorf("GoldenKm(%v) = %v, want a finite value", miles, got)
		}
		if got <= 0 {
			t.Errorf("GoldenKm(%v) = %v, want a positive value", miles, got)
		}
	}
}

func TestCachedKm_RepeatedCallsAreIdentical(t *testing.T) {
	// The lazy table build must not change results across calls.
	first := CachedKm(42)
	for i := 0; i < 10; i++ {
		if got := CachedKm(42); math.Float32bits(got) != math.Float32bits(first) {
			t.Fatalf("CachedKm(42) call %d = %v, want bit-identical %v", i, got, first)
		}
	}
}
