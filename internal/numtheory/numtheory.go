// Package numtheory holds the pure number theory helpers used by every view:
// primality, prime counting, the prime number theorem estimate and a
// truncated zeta series.
package numtheory

import "math"

const (
	// DefaultZetaTerms is the number of series terms summed by callers that do not override it.
	DefaultZetaTerms = 1000
	// PrecisionWarning is the tail bound above which a zeta approximation is flagged as imprecise.
	PrecisionWarning = 1e-3
)

// IsPrime reports whether n has no divisor other than 1 and itself.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// GeneratePrimes returns the primes in [2, limit] in ascending order.
func GeneratePrimes(limit int) []int {
	primes := []int{}
	for i := 2; i <= limit; i++ {
		if IsPrime(i) {
			primes = append(primes, i)
		}
	}
	return primes
}

// PrimePi counts the primes less than or equal to n.
func PrimePi(n int) int {
	count := 0
	for i := 2; i <= n; i++ {
		if IsPrime(i) {
			count++
		}
	}
	return count
}

// PrimeApproximation is the first-order prime number theorem estimate n/ln(n).
// It is 0 for n < 2.
func PrimeApproximation(n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(n) / math.Log(float64(n))
}

// Divisors returns up to limit positive divisors of n in ascending order.
// A limit <= 0 returns every divisor.
func Divisors(n, limit int) []int {
	out := []int{}
	if n < 1 {
		return out
	}
	// Divisors come in pairs (i, n/i) with i <= sqrt(n); the large halves are
	// collected in descending order and appended reversed.
	var large []int
	for i := 1; i <= n/i; i++ {
		if n%i != 0 {
			continue
		}
		out = append(out, i)
		if limit > 0 && len(out) == limit {
			return out
		}
		if j := n / i; j != i {
			large = append(large, j)
		}
	}
	for k := len(large) - 1; k >= 0; k-- {
		out = append(out, large[k])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Zeta sums 1/n^s for n = 1..terms.
// The series only converges for s > 1; NaN is returned otherwise, and also for
// a NaN s or a non-positive term count.
func Zeta(s float64, terms int) float64 {
	if math.IsNaN(s) || s <= 1 || terms < 1 {
		return math.NaN()
	}
	sum := 0.0
	for n := 1; n <= terms; n++ {
		sum += 1 / math.Pow(float64(n), s)
	}
	return sum
}

// ZetaTailBound bounds the error of Zeta(s, terms) from above using the
// integral test: the omitted tail is at most terms^(1-s)/(s-1).
func ZetaTailBound(s float64, terms int) float64 {
	if math.IsNaN(s) || s <= 1 || terms < 1 {
		return math.NaN()
	}
	return math.Pow(float64(terms), 1-s) / (s - 1)
}

// Precise reports whether the truncation error of Zeta(s, terms) is known to
// be below PrecisionWarning.
func Precise(s float64, terms int) bool {
	b := ZetaTailBound(s, terms)
	return !math.IsNaN(b) && b <= PrecisionWarning
}

// KnownZetaValue returns the closed form of ζ(s) for the even integers 2..10.
func KnownZetaValue(s int) (float64, bool) {
	switch s {
	case 2:
		return math.Pi * math.Pi / 6, true
	case 4:
		return math.Pow(math.Pi, 4) / 90, true
	case 6:
		return math.Pow(math.Pi, 6) / 945, true
	case 8:
		return math.Pow(math.Pi, 8) / 9450, true
	case 10:
		return math.Pow(math.Pi, 10) / 93555, true
	}
	return 0, false
}
