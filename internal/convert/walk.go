package convert

// WalkKm converts miles to kilometers by walking the Fibonacci sequence on
// demand until it brackets the input on the mile axis, then interpolating
// linearly inside the bracket. The axis convention: the km value at
// mile-point F(k) is F(k+1), so each walk step advances both axes by one
// sequence position.
//
// The walk terminates early if advancing would overflow uint64, detected by
// a decrease in the otherwise monotonically increasing values; in that case
// the last valid bracket is used, which is the documented boundary behavior.
func WalkKm(miles float64) float32 {
	if km, ok := linearFallback(miles); ok {
		return km
	}

	prevMile, prevKm := uint64(0), uint64(1) // F(0) -> F(1)
	currMile, currKm := uint64(1), uint64(2) // F(1) -> F(2)

	for float64(currMile) <= miles {
		prevMile, prevKm = currMile, currKm

		currMile = prevKm
		currKm = prevMile + prevKm

		// Wraparound check: the sequence is strictly increasing, so any
		// decrease means the addition overflowed.
		if currKm < prevKm || currMile < prevMile {
			break
		}
	}

	return float32(prevKm) + float32(miles-float64(prevMile))*
		(float32(currKm-prevKm)/float32(currMile-prevMile))
}

// WalkStrategy performs bracket-and-interpolate conversion with an
// on-demand sequence walk. O(log miles) time, no state.
type WalkStrategy struct{}

// Name returns the display name of the walk strategy.
func (WalkStrategy) Name() string { return "Fibonacci walk" }

// Slug returns the identifier of the walk strategy.
func (WalkStrategy) Slug() string { return "walk" }

// ConvertCore delegates to WalkKm.
func (WalkStrategy) ConvertCore(miles float64) float32 { return WalkKm(miles) }
