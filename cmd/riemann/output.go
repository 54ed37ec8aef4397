package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/riemann/internal/chart"
	"github.com/ensigniasec/riemann/internal/content"
	"github.com/ensigniasec/riemann/internal/numtheory"
)

//nolint:gochecknoglobals // Shared output styles.
var (
	headingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7c3aed")).Bold(true)
	valueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	primeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	compositeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

type primeOutput struct {
	N        int   `json:"n"`
	Prime    bool  `json:"prime"`
	Divisors []int `json:"divisors"`
}

type primeCountOutput struct {
	N             int     `json:"n"`
	Count         int     `json:"count"`
	Approximation float64 `json:"approximation"`
	Error         float64 `json:"error"`
}

type zetaOutput struct {
	S         float64  `json:"s"`
	Terms     int      `json:"terms"`
	Value     *float64 `json:"value"`
	TailBound *float64 `json:"tailBound"`
	Exact     *float64 `json:"exact,omitempty"`
	Precise   bool     `json:"precise"`
}

type evalOutput struct {
	Expression string   `json:"expression"`
	Result     *float64 `json:"result"`
}

type sectionOutput struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func printJSON(w io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Fprintln(w, string(output))
	return nil
}

// finite maps NaN and the infinities to JSON null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func printResult(w io.Writer, title, body string) {
	fmt.Fprintln(w, headingStyle.Render(title))
	lines := strings.Split(body, "\n")
	fmt.Fprintln(w, valueStyle.Render(lines[0]))
	for _, l := range lines[1:] {
		fmt.Fprintln(w, mutedStyle.Render(l))
	}
}

func printPrime(w io.Writer, res primeOutput) {
	n := strconv.Itoa(res.N)
	switch {
	case res.Prime:
		fmt.Fprintf(w, "%s is %s\n", valueStyle.Render(n), primeStyle.Render("prime"))
	case res.N < 2:
		fmt.Fprintf(w, "%s is %s\n", valueStyle.Render(n), compositeStyle.Render("not prime"))
	default:
		fmt.Fprintf(w, "%s is %s\n", valueStyle.Render(n), compositeStyle.Render("composite"))
	}
	if len(res.Divisors) == 0 {
		return
	}
	shown := res.Divisors
	suffix := ""
	if len(shown) > maxListedDivisors {
		shown = shown[:maxListedDivisors]
		suffix = ", ..."
	}
	parts := make([]string, len(shown))
	for i, d := range shown {
		parts[i] = strconv.Itoa(d)
	}
	fmt.Fprintf(w, "%s %s%s\n", mutedStyle.Render("Divisors:"), strings.Join(parts, ", "), suffix)
}

func printZeros(w io.Writer, zeros []numtheory.ZeroPoint) {
	fmt.Fprintln(w, headingStyle.Render("Non-trivial zeros of ζ(s)"))
	for i, z := range zeros {
		fmt.Fprintf(w, "%s %s + %si\n",
			mutedStyle.Render(fmt.Sprintf("ρ%-3d", i+1)),
			numtheory.FormatNumber(z.Real, 1),
			valueStyle.Render(numtheory.FormatNumber(z.Imaginary, 6)))
	}
}

func printChart(w io.Writer, f chart.Figure, cols, rows int) {
	fmt.Fprintln(w, headingStyle.Render(f.Title))
	fmt.Fprintln(w, mutedStyle.Render(f.Subtitle))
	fmt.Fprintln(w)
	fmt.Fprintln(w, chart.RenderText(f, cols, rows))
	fmt.Fprintf(w, "%s  %s\n", mutedStyle.Render("x: "+f.XLabel), mutedStyle.Render("y: "+f.YLabel))
}

func theorySections(expanded map[string]bool) []sectionOutput {
	out := []sectionOutput{}
	for _, s := range content.TheorySections() {
		if expanded[s.ID] {
			out = append(out, sectionOutput{ID: s.ID, Title: s.Title, Body: s.Body})
		}
	}
	return out
}
