// Package chart builds the three visualizations (zeros on the critical line,
// zero density, prime gaps) as plain data and renders them either to SVG or
// to a character canvas for the terminal.
package chart

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ensigniasec/riemann/internal/numtheory"
)

// ErrUnknownView is returned for a view name that has no chart.
var ErrUnknownView = errors.New("unknown chart view")

// View names a visualization.
type View string

const (
	ViewCriticalLine View = "critical-line"
	ViewZeroDensity  View = "zero-density"
	ViewPrimeGaps    View = "prime-gaps"
)

const (
	criticalLineZeros = 5
	densitySamples    = 50
	gapPrimeLimit     = 100
)

// Views lists the visualizations in display order.
func Views() []View {
	return []View{ViewCriticalLine, ViewZeroDensity, ViewPrimeGaps}
}

// ParseView resolves a view name. "zeta-zeros" is accepted for zero-density
// and a trailing ".svg" is ignored.
func ParseView(s string) (View, error) {
	name := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".svg")
	switch name {
	case string(ViewCriticalLine):
		return ViewCriticalLine, nil
	case string(ViewZeroDensity), "zeta-zeros":
		return ViewZeroDensity, nil
	case string(ViewPrimeGaps):
		return ViewPrimeGaps, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// Label is the short tab name of a view.
func (v View) Label() string {
	switch v {
	case ViewCriticalLine:
		return "Critical Line"
	case ViewZeroDensity:
		return "Zero Density"
	case ViewPrimeGaps:
		return "Prime Gaps"
	}
	return string(v)
}

// Point is a data coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bar is one column of a bar chart; it spans [X, X+1) on the x axis.
type Bar struct {
	X     float64 `json:"x"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// Figure is a renderer-independent description of a chart.
type Figure struct {
	View     View       `json:"view"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle"`
	XLabel   string     `json:"x_label"`
	YLabel   string     `json:"y_label"`
	XDomain  [2]float64 `json:"x_domain"`
	YDomain  [2]float64 `json:"y_domain"`
	Markers  []Point    `json:"markers,omitempty"`
	Curve    []Point    `json:"curve,omitempty"`
	Bars     []Bar      `json:"bars,omitempty"`
	// VLine, when set, draws a dashed vertical guide at that x.
	VLine      *float64 `json:"vline,omitempty"`
	VLineLabel string   `json:"vline_label,omitempty"`
}

// Build returns the figure for view.
func Build(view View) (Figure, error) {
	switch view {
	case ViewCriticalLine:
		return CriticalLine(), nil
	case ViewZeroDensity:
		return ZeroDensity(), nil
	case ViewPrimeGaps:
		return PrimeGaps(), nil
	}
	return Figure{}, fmt.Errorf("%w: %q", ErrUnknownView, view)
}

// CriticalLine plots the first five known zeros and their conjugates on Re(s) = 1/2.
func CriticalLine() Figure {
	x := numtheory.CriticalLine
	f := Figure{
		View:       ViewCriticalLine,
		Title:      "Riemann Zeta Function - Critical Line",
		Subtitle:   "All non-trivial zeros lie on the line Re(s) = 1/2",
		XLabel:     "Real Part",
		YLabel:     "Imaginary Part",
		XDomain:    [2]float64{-1, 2},
		YDomain:    [2]float64{-20, 20},
		VLine:      &x,
		VLineLabel: "Critical Line (Re = 1/2)",
	}
	for _, z := range numtheory.CriticalZeros(criticalLineZeros) {
		f.Markers = append(f.Markers, Point{X: z.Real, Y: z.Imaginary}, Point{X: z.Real, Y: -z.Imaginary})
	}
	return f
}

// ZeroDensity is an illustrative density curve sampled at t = 10, 12, ..., 108.
func ZeroDensity() Figure {
	f := Figure{
		View:     ViewZeroDensity,
		Title:    "Distribution of Zeta Function Zeros",
		Subtitle: "Density and distribution of zeros along the critical strip",
		XLabel:   "Height (t)",
		YLabel:   "Zero Density",
		XDomain:  [2]float64{10, 110},
		YDomain:  [2]float64{0, 2},
	}
	for i := 0; i < densitySamples; i++ {
		p := Point{X: 10 + float64(i)*2, Y: math.Sin(float64(i)*0.3)*0.5 + 1}
		f.Curve = append(f.Curve, p)
		f.Markers = append(f.Markers, p)
	}
	return f
}

// PrimeGaps charts the gaps between consecutive primes below 100.
func PrimeGaps() Figure {
	primes := numtheory.GeneratePrimes(gapPrimeLimit)
	f := Figure{
		View:     ViewPrimeGaps,
		Title:    "Prime Number Gap Patterns",
		Subtitle: "Gaps between consecutive prime numbers",
		XLabel:   "Prime Index",
		YLabel:   "Gap Size",
		XDomain:  [2]float64{0, float64(len(primes))},
	}
	maxGap := 0
	for i := 1; i < len(primes); i++ {
		gap := primes[i] - primes[i-1]
		maxGap = max(maxGap, gap)
		f.Bars = append(f.Bars, Bar{
			X:     float64(i - 1),
			Value: float64(gap),
			Label: fmt.Sprintf("%d", primes[i]),
		})
	}
	f.YDomain = [2]float64{0, float64(maxGap)}
	return f
}

// scale maps a domain linearly onto a range.
type scale struct {
	d0, d1 float64
	r0, r1 float64
}

func (s scale) at(v float64) float64 {
	if s.d1 == s.d0 {
		return s.r0
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// ticks returns evenly spaced round values covering [lo, hi], about count of them.
func ticks(lo, hi float64, count int) []float64 {
	if hi <= lo || count < 1 {
		return []float64{lo}
	}
	raw := (hi - lo) / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 5, 10} {
		step = m * mag
		if step >= raw {
			break
		}
	}
	out := []float64{}
	for v := math.Ceil(lo/step) * step; v <= hi+step*1e-9; v += step {
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

func formatTick(v float64) string {
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
