package tui

import (
	"context"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/chart"
	"github.com/ensigniasec/riemann/internal/content"
	"github.com/ensigniasec/riemann/internal/game"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPage):
		return m.switchPage(m.pageOffset(1))

	case key.Matches(msg, m.keys.PrevPage):
		return m.switchPage(m.pageOffset(-1))

	case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	// The calculator input owns every printable key.
	if m.page == content.PageCalculator {
		return m.handleCalculatorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.JumpPage):
		idx := int(msg.String()[0] - '1')
		return m.switchPage(content.Pages()[idx])
	}

	switch m.page {
	case content.PageTheory:
		m.handleTheoryKey(msg)
	case content.PageVisualization:
		m.handleVisualizationKey(msg)
	case content.PageGame:
		return m.handleGameKey(msg)
	case content.PageHome, content.PageCalculator:
	}
	return m, nil
}

func (m Model) pageOffset(delta int) content.Page {
	pages := content.Pages()
	i := slices.Index(pages, m.page)
	return pages[(i+delta+len(pages))%len(pages)]
}

// switchPage changes the page. Leaving the game stops it, as does any other
// change to its state, so no countdown survives off screen.
func (m Model) switchPage(p content.Page) (Model, tea.Cmd) {
	if p == m.page {
		return m, nil
	}
	if m.page == content.PageGame {
		m.game.Reset()
	}
	m.page = p
	m.viewport.GotoTop()
	return m, m.focusPage()
}

// focusPage routes keyboard focus to the calculator input when it is shown.
func (m *Model) focusPage() tea.Cmd {
	if m.page == content.PageCalculator {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) handleTheoryKey(msg tea.KeyMsg) {
	sections := content.TheorySections()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.theoryCursor = max(m.theoryCursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.theoryCursor = min(m.theoryCursor+1, len(sections)-1)
	case key.Matches(msg, m.keys.Toggle):
		id := sections[m.theoryCursor].ID
		m.expanded[id] = !m.expanded[id]
	}
}

func (m *Model) handleVisualizationKey(msg tea.KeyMsg) {
	n := len(chart.Views())
	switch {
	case key.Matches(msg, m.keys.NextView):
		m.viewIndex = (m.viewIndex + 1) % n
		m.viewport.GotoTop()
	case key.Matches(msg, m.keys.PrevView):
		m.viewIndex = (m.viewIndex - 1 + n) % n
		m.viewport.GotoTop()
	}
}

func (m Model) handleGameKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	g := m.game
	switch {
	case key.Matches(msg, m.keys.GameMode):
		next := game.ModeZeroHunt
		if g.State().Mode == game.ModeZeroHunt {
			next = game.ModePrimePrediction
		}
		g.Reset()
		g.SetMode(next)
		return m, nil

	case key.Matches(msg, m.keys.Start):
		if g.State().Mode != game.ModePrimePrediction {
			return m, nil
		}
		g.Start()
		return m, tickCountdown(g.Round())

	case key.Matches(msg, m.keys.Prime, m.keys.Composite):
		if _, ok := g.Guess(key.Matches(msg, m.keys.Prime)); ok {
			return m, scheduleDismiss(g.Round(), m.resultDelay)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		g.Reset()
		return m, nil
	}
	return m, nil
}

func (m Model) handleCalculatorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ZetaMode):
		m.setCalcMode(calc.ModeZeta)
		return m, nil

	case key.Matches(msg, m.keys.PrimeMode):
		m.setCalcMode(calc.ModePrime)
		return m, nil

	case key.Matches(msg, m.keys.GeneralMode):
		m.setCalcMode(calc.ModeGeneral)
		return m, nil

	case key.Matches(msg, m.keys.Evaluate):
		return m.evaluate(m.input.Value())

	case key.Matches(msg, m.keys.PresetUp):
		m.presets.CursorUp()
		return m, nil

	case key.Matches(msg, m.keys.PresetDown):
		m.presets.CursorDown()
		return m, nil

	case key.Matches(msg, m.keys.UsePreset):
		if it, ok := m.presets.SelectedItem().(presetItem); ok {
			m.input.SetValue(it.preset.Value)
			m.input.CursorEnd()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.input.Reset()
		m.calcSeq++
		m.calcResult, m.calcErr, m.evaluating = "", "", false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// setCalcMode switches the calculator mode, keeping the typed input.
func (m *Model) setCalcMode(mode calc.Mode) {
	if mode == m.calcMode {
		return
	}
	m.calcMode = mode
	m.calcSeq++
	m.calcResult, m.calcErr, m.evaluating = "", "", false
	m.input.Placeholder = mode.Placeholder()
	m.presets.SetItems(presetItems(mode))
	m.presets.Select(0)
}

// evaluate runs the calculation off the update loop; the result arrives as
// calcResultMsg tagged with its sequence number.
func (m Model) evaluate(input string) (Model, tea.Cmd) {
	m.calcSeq++
	seq, mode, c := m.calcSeq, m.calcMode, m.calc
	m.evaluating = true
	return m, func() tea.Msg {
		text, err := c.Calculate(context.Background(), mode, input)
		if err != nil && !calc.IsInputError(err) {
			logrus.WithField("mode", mode).Debugf("calculation failed: %v", err)
		}
		return calcResultMsg{seq: seq, text: text, err: err}
	}
}

// resize recomputes size-dependent layout.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.help.Width = width
	bodyWidth := m.bodyWidth()
	m.viewport.Width = bodyWidth
	m.presets.SetWidth(bodyWidth)
	m.input.Width = max(bodyWidth-4, 1)
	m.countdown.Width = max(bodyWidth/2, 10)
	if m.renderer != nil {
		if err := m.renderer.SetWidth(bodyWidth - 2); err != nil {
			logrus.Debugf("resize markdown renderer: %v", err)
		}
	}
	clear(m.rendered)
}

func (m Model) bodyWidth() int {
	return max(min(m.width, contentMaxWidth), 1)
}

// refresh re-renders the page into the viewport so scrolling sees the
// current content height.
func (m *Model) refresh() {
	footer := lipgloss.Height(m.renderFooter())
	m.viewport.Height = max(m.height-headerLines-footer-1, bodyMinHeight)
	m.viewport.SetContent(m.renderBody())
}
