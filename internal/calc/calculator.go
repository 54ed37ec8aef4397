// Package calc implements the three calculator modes: the truncated zeta
// function, prime counting against the prime number theorem, and a general
// arithmetic expression evaluator.
package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/riemann/internal/numtheory"
)

// Mode selects how the calculator interprets its input.
type Mode string

const (
	ModeZeta    Mode = "zeta"
	ModePrime   Mode = "prime"
	ModeGeneral Mode = "general"
)

// Modes lists the calculator modes in display order.
func Modes() []Mode {
	return []Mode{ModeZeta, ModePrime, ModeGeneral}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeZeta:
		return ModeZeta, nil
	case ModePrime:
		return ModePrime, nil
	case ModeGeneral:
		return ModeGeneral, nil
	}
	return "", fmt.Errorf("unknown calculator mode %q", s)
}

// Title is the heading shown for a mode.
func (m Mode) Title() string {
	switch m {
	case ModeZeta:
		return "Riemann Zeta Function Calculator"
	case ModePrime:
		return "Prime Counting Function Calculator"
	case ModeGeneral:
		return "General Mathematical Calculator"
	}
	return ""
}

// Description is the one-line summary under the heading.
func (m Mode) Description() string {
	switch m {
	case ModeZeta:
		return "Calculate ζ(s) for values where Re(s) > 1"
	case ModePrime:
		return "Count prime numbers and compare with approximations"
	case ModeGeneral:
		return "Evaluate mathematical expressions"
	}
	return ""
}

// Placeholder is the input hint shown for a mode.
func (m Mode) Placeholder() string {
	switch m {
	case ModeZeta:
		return "Enter s (e.g., 2, 3, 1.5)"
	case ModePrime:
		return "Enter n (e.g., 100, 1000)"
	case ModeGeneral:
		return "Enter expression (e.g., 2+2, sin(pi/2))"
	}
	return ""
}

// ZetaResult is the structured outcome of a zeta calculation.
type ZetaResult struct {
	S         float64
	Terms     int
	Value     float64
	TailBound float64
	Exact     *float64
	Precise   bool
}

// PrimeResult is the structured outcome of a prime counting calculation.
type PrimeResult struct {
	N             int
	Count         int
	Approximation float64
	Error         float64
}

// Calculator evaluates user input for any mode.
type Calculator struct {
	terms     int
	maxPrimeN int
	eval      *Evaluator
}

// Option mutates Calculator configuration.
type Option func(*Calculator)

// WithTerms sets the number of zeta series terms.
func WithTerms(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.terms = n
		}
	}
}

// WithMaxPrimeN caps the prime counting input.
func WithMaxPrimeN(n int) Option {
	return func(c *Calculator) {
		if n > 0 {
			c.maxPrimeN = n
		}
	}
}

// New constructs a Calculator with defaults.
func New(opts ...Option) (*Calculator, error) {
	ev, err := NewEvaluator()
	if err != nil {
		return nil, err
	}
	c := &Calculator{
		terms:     numtheory.DefaultZetaTerms,
		maxPrimeN: 1_000_000,
		eval:      ev,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Terms is the configured zeta term count.
func (c *Calculator) Terms() int { return c.terms }

// MaxPrimeN is the largest n accepted for prime counting.
func (c *Calculator) MaxPrimeN() int { return c.maxPrimeN }

// Zeta parses s and evaluates the truncated series.
func (c *Calculator) Zeta(input string) (ZetaResult, error) {
	s, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(s) {
		return ZetaResult{}, ErrInvalidNumber
	}
	return c.ZetaAt(s, c.terms), nil
}

// ZetaAt evaluates the truncated series at s with an explicit term count.
func (c *Calculator) ZetaAt(s float64, terms int) ZetaResult {
	r := ZetaResult{
		S:         s,
		Terms:     terms,
		Value:     numtheory.Zeta(s, terms),
		TailBound: numtheory.ZetaTailBound(s, terms),
		Precise:   numtheory.Precise(s, terms),
	}
	if s == math.Trunc(s) && math.Abs(s) <= math.MaxInt32 {
		if v, ok := numtheory.KnownZetaValue(int(s)); ok {
			r.Exact = &v
		}
	}
	return r
}

// PrimeCount parses n and compares π(n) with n/ln(n).
func (c *Calculator) PrimeCount(input string) (PrimeResult, error) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < 1 {
		return PrimeResult{}, ErrInvalidInteger
	}
	if n > c.maxPrimeN {
		return PrimeResult{}, TooLargeError{Max: c.maxPrimeN}
	}
	count := numtheory.PrimePi(n)
	approx := numtheory.PrimeApproximation(n)
	return PrimeResult{
		N:             n,
		Count:         count,
		Approximation: approx,
		Error:         math.Abs(float64(count) - approx),
	}, nil
}

// Expression evaluates a general arithmetic expression.
func (c *Calculator) Expression(ctx context.Context, input string) (float64, error) {
	v, err := c.eval.Evaluate(ctx, input)
	if err != nil {
		logrus.WithField("expression", input).Debugf("evaluation failed: %v", err)
		return 0, ErrInvalidExpression
	}
	return v, nil
}

// Calculate runs input through mode and renders the result text.
// Blank input yields an empty result and no error. On failure the returned
// error's message is the text to display.
func (c *Calculator) Calculate(ctx context.Context, mode Mode, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	switch mode {
	case ModeZeta:
		r, err := c.Zeta(input)
		if err != nil {
			return "", err
		}
		return FormatZeta(r), nil
	case ModePrime:
		r, err := c.PrimeCount(input)
		if err != nil {
			return "", err
		}
		return FormatPrime(r), nil
	case ModeGeneral:
		v, err := c.Expression(ctx, input)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s = %s", strings.TrimSpace(input), FormatValue(v)), nil
	}
	return "", fmt.Errorf("unknown calculator mode %q", mode)
}

// FormatZeta renders a zeta result the way the calculator displays it.
func FormatZeta(r ZetaResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ζ(%s) ≈ %s", FormatValue(r.S), fixed(r.Value, 6))
	if r.Exact != nil {
		fmt.Fprintf(&b, "\nExact: %s", fixed(*r.Exact, 6))
	}
	if !math.IsNaN(r.Value) && !r.Precise {
		fmt.Fprintf(&b, "\nWarning: truncation error may be up to %s with %d terms", numtheory.FormatNumber(r.TailBound, 6), r.Terms)
	}
	return b.String()
}

// FormatPrime renders a prime counting result the way the calculator displays it.
func FormatPrime(r PrimeResult) string {
	return fmt.Sprintf("π(%d) = %d\nApproximation: %.2f\nError: %.2f", r.N, r.Count, r.Approximation, r.Error)
}

// FormatValue renders a float with the shortest exact representation.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fixed(v float64, decimals int) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// IsInputError reports whether err is one of the user-facing input errors.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidNumber) ||
		errors.Is(err, ErrInvalidInteger) ||
		errors.Is(err, ErrInvalidExpression) ||
		errors.Is(err, ErrTooLarge)
}
