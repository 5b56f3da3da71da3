package convert

// MaxFibUint64 = 93 because F(93) is the largest Fibonacci number that fits
// in a uint64; F(94) exceeds 2^64 and wraps. Callers that need exact values
// must bound their indices with this constant, as Fibonacci itself performs
// no overflow check.
const MaxFibUint64 = 93

// Fibonacci returns the n-th Fibonacci number by iterative accumulation in
// O(n) time and O(1) space. Negative indices return 0 as a defined sentinel,
// not an error. Beyond MaxFibUint64 the value silently wraps modulo 2^64,
// which is the documented behavior for out-of-range indices.
func Fibonacci(n int) uint64 {
	if n <= 0 {
		return 0
	}

	var a, b uint64 = 0, 1 // F(0), F(1)
	if n == 1 {
		return b
	}

	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}
