package convert

import "sync"

// tableSize is the number of cached Fibonacci values. 94 entries cover
// indices 0..93, the full overflow-free range of uint64.
const tableSize = 94

// fibTable is the process-wide Fibonacci lookup table. It is built lazily
// exactly once and read-only afterwards; sync.Once makes the first touch
// safe when the engine is called from multiple goroutines (server and TUI
// modes do exactly that).
type fibTable struct {
	once   sync.Once
	values [tableSize]uint64
}

var cache fibTable

func (t *fibTable) build() {
	t.values[0] = 0
	t.values[1] = 1
	for i := 2; i < tableSize; i++ {
		t.values[i] = t.values[i-1] + t.values[i-2]
	}
}

// lookup returns the cached values, building the table on first use.
func (t *fibTable) lookup() *[tableSize]uint64 {
	t.once.Do(t.build)
	return &t.values
}

// CachedKm converts miles to kilometers using the precomputed table: it
// scans forward for the first entry exceeding the input and interpolates
// over the three consecutive entries around it. Inputs the table cannot
// bracket with two entries of lookahead fall back to the linear formula.
//
// The interpolation base point uses the mile-axis value Fn directly as if
// it were already on the km axis. This asymmetry with WalkKm's convention
// is the observable behavior of this strategy and must be preserved as-is.
func CachedKm(miles float64) float32 {
	table := cache.lookup()

	if km, ok := linearFallback(miles); ok {
		return km
	}

	i := 2
	for i < tableSize-2 && float64(table[i]) <= miles {
		i++
	}
	if i >= tableSize-2 {
		return LinearKm(miles)
	}

	fn := table[i-1]
	fn1 := table[i]
	fn2 := table[i+1]

	return float32(fn1) + float32(miles-float64(fn))*
		(float32(fn2-fn1)/float32(fn1-fn))
}

// CachedStrategy performs bracket-and-interpolate conversion with table
// lookups instead of recomputation. O(1) space after the one-time build.
type CachedStrategy struct{}

// Name returns the display name of the cached strategy.
func (CachedStrategy) Name() string { return "Fibonacci cached" }

// Slug returns the identifier of the cached strategy.
func (CachedStrategy) Slug() string { return "cached" }

// ConvertCore delegates to CachedKm.
func (CachedStrategy) ConvertCore(miles float64) float32 { return CachedKm(miles) }
