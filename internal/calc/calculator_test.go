//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package calc

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCalculator(t *testing.T, opts ...Option) *Calculator {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func TestCalculate_Zeta(t *testing.T) {
	c := newTestCalculator(t)
	ctx := context.Background()

	out, err := c.Calculate(ctx, ModeZeta, "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ζ(2) ≈ 1.64"), out)
	assert.Contains(t, out, "Exact: 1.644934")
	assert.NotContains(t, out, "Warning")

	out, err = c.Calculate(ctx, ModeZeta, " 1.5 ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ζ(1.5) ≈ "), out)
	assert.Contains(t, out, "Warning: truncation error")

	out, err = c.Calculate(ctx, ModeZeta, "1")
	require.NoError(t, err)
	assert.Equal(t, "ζ(1) ≈ NaN", out)

	_, err = c.Calculate(ctx, ModeZeta, "two")
	require.ErrorIs(t, err, ErrInvalidNumber)
	assert.Equal(t, "Invalid input. Please enter a number.", err.Error())
}

func TestCalculate_Prime(t *testing.T) {
	c := newTestCalculator(t, WithMaxPrimeN(5000))
	ctx := context.Background()

	out, err := c.Calculate(ctx, ModePrime, "100")
	require.NoError(t, err)
	assert.Equal(t, "π(100) = 25\nApproximation: 21.71\nError: 3.29", out)

	for _, in := range []string{"0", "-3", "1.5", "abc"} {
		_, err := c.Calculate(ctx, ModePrime, in)
		require.ErrorIs(t, err, ErrInvalidInteger, "input %q", in)
	}

	_, err = c.Calculate(ctx, ModePrime, "5001")
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Equal(t, "Invalid input. n must be at most 5000.", err.Error())
}

func TestCalculate_General(t *testing.T) {
	c := newTestCalculator(t)
	ctx := context.Background()

	tests := []struct {
		expr string
		want float64
	}{
		{expr: "2+2", want: 4},
		{expr: "1/3", want: 1.0 / 3},
		{expr: "sqrt(2)", want: math.Sqrt2},
		{expr: "log(10)", want: math.Log(10)},
		{expr: "pi", want: math.Pi},
		{expr: "e", want: math.E},
		{expr: "sin(pi/2)", want: 1},
		{expr: "pow(2, 10) - 24", want: 1000},
		{expr: "-(3 * (2 + 1.5))", want: -10.5},
		{expr: "1e3 / 8", want: 125},
		{expr: "--2", want: 2},
		{expr: "3 ++ 1", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			v, err := c.Expression(ctx, tt.expr)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, v, 1e-12)
		})
	}

	out, err := c.Calculate(ctx, ModeGeneral, "2+2")
	require.NoError(t, err)
	assert.Equal(t, "2+2 = 4", out)
}

func TestCalculate_GeneralDivisionByZero(t *testing.T) {
	c := newTestCalculator(t)
	ctx := context.Background()

	v, err := c.Expression(ctx, "1/0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, 1))

	v, err = c.Expression(ctx, "-sqrt(4)/0")
	require.NoError(t, err)
	assert.True(t, math.IsInf(v, -1))

	v, err = c.Expression(ctx, "0/0")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	out, err := c.Calculate(ctx, ModeGeneral, "1/0")
	require.NoError(t, err)
	assert.Equal(t, "1/0 = +Inf", out)
}

func TestCalculate_GeneralRejectsNonArithmetic(t *testing.T) {
	c := newTestCalculator(t)
	ctx := context.Background()

	for _, expr := range []string{
		"2^3",
		"(1 + 2",
		"1) + (2",
		"os.Exit(1)",
		"x + 1",
		"func() float64 { return 1 }()",
		"1; 2",
		"0x10",
		"\"text\"",
		"7 % 2",
		"lit(2)",
	} {
		_, err := c.Calculate(ctx, ModeGeneral, expr)
		require.Error(t, err, "expr %q", expr)
		assert.True(t, errors.Is(err, ErrInvalidExpression), "expr %q", expr)
		assert.Equal(t, "Error: Invalid expression", err.Error())
	}
}

func TestCalculate_BlankInput(t *testing.T) {
	c := newTestCalculator(t)
	for _, m := range Modes() {
		out, err := c.Calculate(context.Background(), m, "   ")
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestSanitize_WidensIntegers(t *testing.T) {
	got, err := sanitize("1/3 + sqrt(4)")
	require.NoError(t, err)
	assert.Equal(t, "lit(1.0) / lit(3.0) + sqrt ( lit(4.0) )", got)

	got, err = sanitize("--2")
	require.NoError(t, err)
	assert.Equal(t, "- - lit(2.0)", got)
}

func TestEvaluator_ReusedAcrossCalls(t *testing.T) {
	ev, err := NewEvaluator()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		v, err := ev.Evaluate(context.Background(), "abs(-2) * 3")
		require.NoError(t, err)
		assert.InDelta(t, 6.0, v, 1e-12)
	}
}

func TestZetaAt_ExactOnlyForKnownEvenIntegers(t *testing.T) {
	c := newTestCalculator(t)
	assert.NotNil(t, c.ZetaAt(4, 1000).Exact)
	assert.Nil(t, c.ZetaAt(3, 1000).Exact)
	assert.Nil(t, c.ZetaAt(4.5, 1000).Exact)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Prime")
	require.NoError(t, err)
	assert.Equal(t, ModePrime, m)
	_, err = ParseMode("matrix")
	require.Error(t, err)
}

func TestPresets(t *testing.T) {
	c := newTestCalculator(t)
	for _, m := range Modes() {
		presets := Presets(m)
		require.Len(t, presets, 4)
		for _, p := range presets {
			out, err := c.Calculate(context.Background(), m, p.Value)
			require.NoError(t, err, "preset %s", p.Label)
			assert.NotEmpty(t, out)
		}
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "sqrt")
	assert.Contains(t, names, "pi")
	assert.IsNonDecreasing(t, names)
}
