package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/riemann/internal/content"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // tea.Model is the framework contract
	var cmd tea.Cmd
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(x.Width, x.Height)

	case tea.KeyMsg:
		m, cmd = m.handleKey(x)

	case tickMsg:
		m, cmd = m.handleTick(x)

	case dismissMsg:
		m, cmd = m.handleDismiss(x)

	case calcResultMsg:
		m.applyCalcResult(x)

	default:
		// Cursor blink and other component-internal messages.
		if m.page == content.PageCalculator {
			m.input, cmd = m.input.Update(msg)
		}
	}

	m.refresh()
	return m, cmd
}

// handleTick advances the game countdown. Ticks from an earlier round, or
// arriving while no countdown should run, are dropped.
func (m Model) handleTick(x tickMsg) (Model, tea.Cmd) {
	g := m.game
	if x.round != g.Round() || !g.Active() || g.ShowingResult() {
		return m, nil
	}
	if _, resolved := g.Tick(); resolved {
		return m, scheduleDismiss(g.Round(), m.resultDelay)
	}
	return m, tickCountdown(g.Round())
}

// handleDismiss hides the result of the round it was scheduled for and
// restarts the countdown.
func (m Model) handleDismiss(x dismissMsg) (Model, tea.Cmd) {
	g := m.game
	if x.round != g.Round() || !g.ShowingResult() {
		return m, nil
	}
	g.DismissResult()
	return m, tickCountdown(g.Round())
}

// applyCalcResult shows a finished calculation unless a newer one superseded it.
func (m *Model) applyCalcResult(x calcResultMsg) {
	if x.seq != m.calcSeq {
		return
	}
	m.evaluating = false
	if x.err != nil {
		m.calcResult, m.calcErr = "", x.err.Error()
		return
	}
	m.calcResult, m.calcErr = x.text, ""
}
