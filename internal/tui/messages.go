package tui

// Message types for Bubble Tea update loop.

// tickMsg fires once per second while a round is counting down. Ticks whose
// round does not match the game's current round are stale and dropped.
type tickMsg struct{ round int }

// dismissMsg hides a shown game result once the result delay elapses.
type dismissMsg struct{ round int }

// calcResultMsg carries the outcome of an asynchronous calculation.
type calcResultMsg struct {
	seq  int
	text string
	err  error
}
