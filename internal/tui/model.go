package tui

import (
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/chart"
	"github.com/ensigniasec/riemann/internal/content"
	"github.com/ensigniasec/riemann/internal/game"
)

// Options configure the initial state of the program.
type Options struct {
	Page        content.Page
	View        chart.View
	ResultDelay time.Duration
}

// Model is the root Bubble Tea model.
type Model struct {
	page     content.Page
	width    int
	height   int
	quitting bool

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	renderer *content.Renderer
	// rendered caches glamour output by key; cleared on resize.
	rendered map[string]string

	// theory page
	theoryCursor int
	expanded     map[string]bool

	// visualization page
	viewIndex int

	// game page
	game        *game.Game
	resultDelay time.Duration
	countdown   progress.Model

	// calculator page
	calc       *calc.Calculator
	calcMode   calc.Mode
	input      textinput.Model
	presets    list.Model
	calcSeq    int
	calcResult string
	calcErr    string
	evaluating bool
}

// NewModel constructs a Model with initial state.
func NewModel(c *calc.Calculator, g *game.Game, r *content.Renderer, opts Options) Model {
	page := opts.Page
	if !slices.Contains(content.Pages(), page) {
		page = content.PageHome
	}
	viewIndex := max(slices.Index(chart.Views(), opts.View), 0)
	delay := opts.ResultDelay
	if delay <= 0 {
		delay = defaultResultDelay
	}

	in := textinput.New()
	in.CharLimit = calcInputLimit
	in.Prompt = "› "
	in.Placeholder = calc.ModeZeta.Placeholder()

	vp := viewport.New(defaultWidth, defaultHeight-headerLines-footerLines)
	vp.KeyMap = viewport.KeyMap{
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}

	m := Model{
		page:        page,
		width:       defaultWidth,
		height:      defaultHeight,
		keys:        newKeyMap(),
		help:        help.New(),
		viewport:    vp,
		renderer:    r,
		rendered:    map[string]string{},
		expanded:    map[string]bool{content.DefaultExpanded: true},
		viewIndex:   viewIndex,
		game:        g,
		resultDelay: delay,
		countdown:   progress.New(progress.WithGradient(colorPurple, colorGold), progress.WithoutPercentage()),
		calc:        c,
		calcMode:    calc.ModeZeta,
		input:       in,
		presets:     newPresetList(calc.ModeZeta, defaultWidth),
	}
	m.focusPage()
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle("Riemann Hypothesis Explorer"), textinput.Blink)
}

// Page returns the page on display.
func (m Model) Page() content.Page { return m.page }

// chartView is the selected chart.
func (m Model) chartView() chart.View { return chart.Views()[m.viewIndex] }

// tickCountdown schedules the next countdown tick for round.
func tickCountdown(round int) tea.Cmd {
	return tea.Tick(countdownTickInterval, func(time.Time) tea.Msg {
		return tickMsg{round: round}
	})
}

// scheduleDismiss hides the shown result of round after d.
func scheduleDismiss(round int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissMsg{round: round}
	})
}
