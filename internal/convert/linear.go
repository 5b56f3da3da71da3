package convert

// KmPerMile is the exact number of kilometers in one international mile.
const KmPerMile = 1.609344

// interpolationFloor is the distance below which every interpolation
// strategy defers to the linear formula. The Fibonacci axis is too sparse
// below this point to bracket an input meaningfully.
const interpolationFloor = 5.0

// LinearKm converts miles to kilometers with the canonical formula.
// It is pure and total: any finite input yields a finite output.
func LinearKm(miles float64) float32 {
	return float32(miles * KmPerMile)
}

// linearFallback implements the shared fallback policy of the interpolation
// strategies: inputs under the interpolation floor are converted linearly.
// It returns the linear result and true when the fallback applies.
func linearFallback(miles float64) (float32, bool) {
	if miles < interpolationFloor {
		return LinearKm(miles), true
	}
	return 0, false
}

// LinearStrategy is the canonical conversion, exposed as a Strategy so it
// can be selected and compared like the interpolators.
type LinearStrategy struct{}

// Name returns the display name of the linear strategy.
func (LinearStrategy) Name() string { return "Linear" }

// Slug returns the identifier of the linear strategy.
func (LinearStrategy) Slug() string { return "linear" }

// ConvertCore applies the canonical formula.
func (LinearStrategy) ConvertCore(miles float64) float32 { return LinearKm(miles) }
