//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package game

import (
	"math/rand/v2"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/riemann/internal/numtheory"
)

func newTestGame(opts ...Option) *Game {
	return New(append([]Option{WithRand(rand.New(rand.NewPCG(1, 2)))}, opts...)...)
}

// answerRight guesses correctly and dismisses the result.
func answerRight(t *testing.T, g *Game) Outcome {
	t.Helper()
	out, ok := g.Guess(numtheory.IsPrime(g.State().Current))
	require.True(t, ok)
	g.DismissResult()
	return out
}

func TestGame_InitialState(t *testing.T) {
	g := newTestGame()
	assert.False(t, g.Active())
	assert.Equal(t, 1, g.State().Level)
	assert.Equal(t, ModePrimePrediction, g.State().Mode)
	assert.Equal(t, DefaultRoundSeconds, g.TimeLeft())
	assert.Equal(t, uuid.Nil, g.Session())

	_, ok := g.Guess(true)
	assert.False(t, ok, "guess before start is ignored")
	_, ok = g.Tick()
	assert.False(t, ok, "tick before start is ignored")
}

func TestGame_StartDrawsInRange(t *testing.T) {
	g := newTestGame()
	for i := 0; i < 200; i++ {
		g.Start()
		n := g.State().Current
		assert.GreaterOrEqual(t, n, 11)
		assert.LessOrEqual(t, n, 60)
	}
	assert.NotEqual(t, uuid.Nil, g.Session())
}

func TestGame_CorrectGuessScoresByLevel(t *testing.T) {
	g := newTestGame()
	g.Start()

	out := answerRight(t, g)
	assert.True(t, out.Correct)
	assert.Equal(t, 10, out.Points)
	assert.Equal(t, 10, g.State().Score)
	assert.Equal(t, 1, g.State().Streak)

	for i := 0; i < 4; i++ {
		answerRight(t, g)
	}
	s := g.State()
	assert.Equal(t, 5, s.Streak)
	assert.Equal(t, 2, s.Level, "five in a row raises the level")
	assert.Equal(t, 50, s.Score)
	assert.Equal(t, "x2", g.Bonus())
	assert.GreaterOrEqual(t, s.Current, 21, "next number drawn at the new level")
	assert.LessOrEqual(t, s.Current, 70)

	out = answerRight(t, g)
	assert.Equal(t, 20, out.Points)
	assert.Equal(t, 70, g.State().Score)
}

func TestGame_WrongGuessResetsStreak(t *testing.T) {
	g := newTestGame()
	g.Start()
	answerRight(t, g)
	answerRight(t, g)

	n := g.State().Current
	out, ok := g.Guess(!numtheory.IsPrime(n))
	require.True(t, ok)
	assert.False(t, out.Correct)
	assert.Equal(t, n, out.Number)
	assert.Equal(t, 0, g.State().Streak)
	assert.Equal(t, 1, g.State().Level)
	assert.Equal(t, 20, g.State().Score)
	assert.Equal(t, "x1", g.Bonus())
	assert.Contains(t, out.Feedback, "Wrong!")
}

func TestGame_GuessIgnoredWhileResultShown(t *testing.T) {
	g := newTestGame()
	g.Start()
	_, ok := g.Guess(true)
	require.True(t, ok)
	require.True(t, g.ShowingResult())

	before := g.State()
	_, ok = g.Guess(true)
	assert.False(t, ok)
	assert.Equal(t, before, g.State())

	_, ok = g.Tick()
	assert.False(t, ok)
	assert.Equal(t, DefaultRoundSeconds, g.TimeLeft(), "countdown paused while result is shown")
}

func TestGame_TimeoutIsAlwaysIncorrect(t *testing.T) {
	g := newTestGame(WithRoundSeconds(3))
	g.Start()
	answerRight(t, g)

	_, ok := g.Tick()
	require.False(t, ok)
	_, ok = g.Tick()
	require.False(t, ok)
	assert.Equal(t, 1, g.TimeLeft())

	n := g.State().Current
	out, ok := g.Tick()
	require.True(t, ok)
	assert.True(t, out.TimedOut)
	assert.False(t, out.Correct)
	assert.Equal(t, n, out.Number)
	assert.Equal(t, numtheory.IsPrime(n), out.WasPrime)
	assert.Contains(t, out.Feedback, "Time's up!")
	assert.Equal(t, 0, g.State().Streak)
	assert.Equal(t, 10, g.State().Score)
	assert.Equal(t, 3, g.TimeLeft(), "countdown resets for the next round")
}

func TestGame_RoundAdvancesOnStateChange(t *testing.T) {
	g := newTestGame()
	r0 := g.Round()
	g.Start()
	r1 := g.Round()
	assert.Greater(t, r1, r0)

	g.Guess(true)
	r2 := g.Round()
	assert.Greater(t, r2, r1)

	g.Reset()
	assert.Greater(t, g.Round(), r2)
	assert.False(t, g.Active())
	assert.False(t, g.ShowingResult())
	_, ok := g.LastOutcome()
	assert.False(t, ok)
}

func TestGame_StartResetsScoreboardKeepsMode(t *testing.T) {
	g := newTestGame()
	g.SetMode(ModeZeroHunt)
	g.Start()
	answerRight(t, g)
	g.Start()
	s := g.State()
	assert.Zero(t, s.Score)
	assert.Zero(t, s.Streak)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, ModeZeroHunt, s.Mode)
}

func TestOutcome_Divisors(t *testing.T) {
	g := newTestGame()
	g.Start()
	g.state.Current = 12
	out, ok := g.Guess(false)
	require.True(t, ok)
	assert.True(t, out.Correct)
	assert.Equal(t, "Correct! 12 is composite", out.Feedback)
	assert.Equal(t, []int{1, 2, 3, 4, 6, 12}, out.Divisors)
	assert.False(t, out.Truncated)

	g.DismissResult()
	g.state.Current = 120
	out, _ = g.Guess(false)
	assert.Len(t, out.Divisors, 10)
	assert.True(t, out.Truncated)

	g.DismissResult()
	g.state.Current = 2
	out, _ = g.Guess(true)
	assert.Empty(t, out.Divisors)
}

func TestMode_Label(t *testing.T) {
	assert.Equal(t, "Prime Prediction", ModePrimePrediction.Label())
	assert.Equal(t, "Zero Hunt", ModeZeroHunt.Label())
}
