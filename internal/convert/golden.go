package convert

import "math"

// goldenZeroFloor is the magnitude below which the golden-ratio estimator
// returns zero directly; the logarithm is unusable that close to zero.
const goldenZeroFloor = 1e-5

// dblEpsilon is the smallest representable difference at double precision
// (C's DBL_EPSILON). The degenerate-bracket check below compares against it
// as an absolute value, so it only fires at small magnitudes; that matches
// the historical behavior of this strategy and is kept unchanged.
const dblEpsilon = 2.220446049250313e-16

// GoldenKm converts miles to kilometers with the closed-form Binet formula:
// it estimates a real-valued Fibonacci index for the input, computes the
// three sequence values around it with powers of the golden ratio, and
// interpolates. No table, no loop: O(1) at any input magnitude, trading
// exactness for the accumulated floating-point error of transcendental
// functions at large indices.
func GoldenKm(miles float64) float32 {
	if miles < goldenZeroFloor {
		return 0
	}
	if km, ok := linearFallback(miles); ok {
		return km
	}

	phi := (1.0 + math.Sqrt(5.0)) / 2.0
	sqrt5 := math.Sqrt(5.0)

	n := math.Log(miles*sqrt5) / math.Log(phi)
	k := math.Floor(n)

	// Binet's formula, including the (-phi)^(-k) alternating term for
	// accuracy at small k.
	fk := (math.Pow(phi, k) - math.Pow(-phi, -k)) / sqrt5
	fk1 := (math.Pow(phi, k+1) - math.Pow(-phi, -k-1)) / sqrt5
	fk2 := (math.Pow(phi, k+2) - math.Pow(-phi, -k-2)) / sqrt5

	// Degenerate (zero-width) bracket: interpolation would divide by zero.
	if fk1-fk < dblEpsilon {
		return LinearKm(miles)
	}

	return float32(fk1 + (miles-fk)*((fk2-fk1)/(fk1-fk)))
}

// GoldenStrategy estimates conversions with the Binet formula and the
// golden ratio, with no iteration and no table.
type GoldenStrategy struct{}

// Name returns the display name of the golden-ratio strategy.
func (GoldenStrategy) Name() string { return "Golden ratio" }

// Slug returns the identifier of the golden-ratio strategy.
func (GoldenStrategy) Slug() string { return "golden" }

// ConvertCore delegates to GoldenKm.
func (GoldenStrategy) ConvertCore(miles float64) float32 { return GoldenKm(miles) }
