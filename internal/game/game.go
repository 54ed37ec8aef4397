// Package game implements the prime prediction game: a number is drawn, the
// player says whether it is prime before a countdown runs out, and correct
// answers build a streak that raises the level and the points per answer.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/riemann/internal/numtheory"
)

// Mode is the selected mini-game.
type Mode string

const (
	ModePrimePrediction Mode = "prime-prediction"
	ModeZeroHunt        Mode = "zero-hunt"
)

// Label is the display name of a mode.
func (m Mode) Label() string {
	switch m {
	case ModePrimePrediction:
		return "Prime Prediction"
	case ModeZeroHunt:
		return "Zero Hunt"
	}
	return string(m)
}

const (
	// DefaultRoundSeconds is the countdown length of one guess.
	DefaultRoundSeconds = 10

	pointsPerLevel  = 10
	streakPerLevel  = 5
	maxOffset       = 50
	shownDivisors   = 10
	divisorsCutoff  = 100
	bonusStreakMark = 5
)

// State is the scoreboard of a game.
type State struct {
	Score   int  `json:"score"`
	Level   int  `json:"level"`
	Streak  int  `json:"streak"`
	Current int  `json:"current"`
	Mode    Mode `json:"mode"`
}

// Outcome describes how a round was resolved.
type Outcome struct {
	Number   int    `json:"number"`
	WasPrime bool   `json:"was_prime"`
	Correct  bool   `json:"correct"`
	TimedOut bool   `json:"timed_out"`
	Points   int    `json:"points"`
	Feedback string `json:"feedback"`
	// Divisors holds at most the first ten divisors; Truncated marks numbers above 100.
	Divisors  []int `json:"divisors,omitempty"`
	Truncated bool  `json:"truncated,omitempty"`
}

// Game is the prime prediction state machine. It holds no timers: callers
// drive the countdown with Tick.
type Game struct {
	state        State
	active       bool
	showResult   bool
	timeLeft     int
	roundSeconds int
	round        int
	last         *Outcome
	rng          *rand.Rand
	session      uuid.UUID
	log          *logrus.Entry
}

// Option mutates Game configuration.
type Option func(*Game)

// WithRoundSeconds sets the countdown length of a round.
func WithRoundSeconds(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.roundSeconds = n
		}
	}
}

// WithRand injects the random source used to draw numbers.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) {
		if r != nil {
			g.rng = r
		}
	}
}

// New constructs an inactive prime prediction game.
func New(opts ...Option) *Game {
	g := &Game{
		state:        State{Level: 1, Current: 2, Mode: ModePrimePrediction},
		roundSeconds: DefaultRoundSeconds,
		rng:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())), //nolint:gosec // game numbers need no cryptographic strength
		log:          logrus.WithField("component", "game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.timeLeft = g.roundSeconds
	return g
}

// State returns a copy of the scoreboard.
func (g *Game) State() State { return g.state }

// Active reports whether a game is in progress.
func (g *Game) Active() bool { return g.active }

// ShowingResult reports whether the last outcome is on display.
func (g *Game) ShowingResult() bool { return g.showResult }

// TimeLeft is the number of seconds left in the current round.
func (g *Game) TimeLeft() int { return g.timeLeft }

// RoundSeconds is the configured countdown length.
func (g *Game) RoundSeconds() int { return g.roundSeconds }

// Round increments every time a new number is drawn or the game stops.
// Countdown ticks scheduled for an earlier round are stale.
func (g *Game) Round() int { return g.round }

// Session identifies the current game in logs; it is the zero UUID before Start.
func (g *Game) Session() uuid.UUID { return g.session }

// LastOutcome returns the most recent outcome, if any.
func (g *Game) LastOutcome() (Outcome, bool) {
	if g.last == nil {
		return Outcome{}, false
	}
	return *g.last, true
}

// Bonus is the multiplier badge shown on the scoreboard.
func (g *Game) Bonus() string {
	if g.state.Streak >= bonusStreakMark {
		return "x2"
	}
	return "x1"
}

// SetMode switches the mini-game without touching the scoreboard.
func (g *Game) SetMode(m Mode) {
	g.state.Mode = m
}

// Start begins a fresh game at level 1.
func (g *Game) Start() {
	g.session = uuid.New()
	g.log = logrus.WithFields(logrus.Fields{"component": "game", "session": g.session.String()})
	g.active = true
	g.showResult = false
	g.last = nil
	g.state = State{Score: 0, Level: 1, Streak: 0, Mode: g.state.Mode}
	g.state.Current = g.nextNumber(g.state.Level)
	g.timeLeft = g.roundSeconds
	g.round++
	g.log.WithField("number", g.state.Current).Debug("game started")
}

// Reset stops the game and clears the displayed result.
func (g *Game) Reset() {
	if g.active {
		g.log.WithField("score", g.state.Score).Debug("game reset")
	}
	g.active = false
	g.showResult = false
	g.last = nil
	g.timeLeft = g.roundSeconds
	g.round++
}

// Guess answers the current round. It is ignored, returning false, while no
// game is active or while a result is still on display.
func (g *Game) Guess(prime bool) (Outcome, bool) {
	if !g.active || g.showResult {
		return Outcome{}, false
	}
	return g.resolve(prime, false), true
}

// Tick advances the countdown by one second. When it reaches zero the round
// resolves as incorrect and the outcome is returned. Ticks are ignored while
// inactive or while a result is on display.
func (g *Game) Tick() (Outcome, bool) {
	if !g.active || g.showResult || g.timeLeft <= 0 {
		return Outcome{}, false
	}
	g.timeLeft--
	if g.timeLeft > 0 {
		return Outcome{}, false
	}
	return g.resolve(false, true), true
}

// DismissResult hides the last outcome so the next round can be played.
func (g *Game) DismissResult() {
	g.showResult = false
}

func (g *Game) resolve(guess bool, timedOut bool) Outcome {
	n := g.state.Current
	wasPrime := numtheory.IsPrime(n)
	correct := !timedOut && guess == wasPrime

	out := Outcome{Number: n, WasPrime: wasPrime, Correct: correct, TimedOut: timedOut}
	if correct {
		out.Points = pointsPerLevel * g.state.Level
		g.state.Score += out.Points
		g.state.Streak++
	} else {
		g.state.Streak = 0
	}
	out.Feedback = feedback(n, wasPrime, correct, timedOut)
	if n > 2 {
		out.Divisors = numtheory.Divisors(n, shownDivisors)
		out.Truncated = n > divisorsCutoff
	}

	g.state.Level = g.state.Streak/streakPerLevel + 1
	g.state.Current = g.nextNumber(g.state.Level)
	g.timeLeft = g.roundSeconds
	g.showResult = true
	g.round++
	g.last = &out

	g.log.WithFields(logrus.Fields{
		"number":  n,
		"correct": correct,
		"timeout": timedOut,
		"score":   g.state.Score,
		"streak":  g.state.Streak,
	}).Debug("round resolved")
	return out
}

// nextNumber draws level*10 plus a uniform offset in [1, 50].
func (g *Game) nextNumber(level int) int {
	return level*pointsPerLevel + g.rng.IntN(maxOffset) + 1
}

func feedback(n int, wasPrime, correct, timedOut bool) string {
	kind := "composite"
	if wasPrime {
		kind = "prime"
	}
	switch {
	case timedOut:
		return fmt.Sprintf("Time's up! %d is %s", n, kind)
	case correct:
		return fmt.Sprintf("Correct! %d is %s", n, kind)
	default:
		return fmt.Sprintf("Wrong! %d is %s", n, kind)
	}
}
