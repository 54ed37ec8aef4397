package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/ensigniasec/riemann/internal/content"
)

// keyMap defines global key bindings used across the TUI.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	JumpPage  key.Binding
	PageUp    key.Binding
	PageDown  key.Binding

	// theory
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding

	// visualization
	NextView key.Binding
	PrevView key.Binding

	// game
	Start     key.Binding
	Prime     key.Binding
	Composite key.Binding
	Reset     key.Binding
	GameMode  key.Binding

	// calculator
	ZetaMode    key.Binding
	PrimeMode   key.Binding
	GeneralMode key.Binding
	Evaluate    key.Binding
	UsePreset   key.Binding
	Clear       key.Binding
	// PresetUp and PresetDown use arrows only so that j and k stay typeable.
	PresetUp    key.Binding
	PresetDown  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous page"),
		),
		JumpPage: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "go to page"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "expand/collapse"),
		),
		NextView: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next chart"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous chart"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Prime: key.NewBinding(
			key.WithKeys("y", "p"),
			key.WithHelp("y", "prime"),
		),
		Composite: key.NewBinding(
			key.WithKeys("n", "c"),
			key.WithHelp("n", "composite"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		GameMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "switch game"),
		),
		ZetaMode: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "zeta"),
		),
		PrimeMode: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prime count"),
		),
		GeneralMode: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "expression"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "calculate"),
		),
		UsePreset: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("↑/↓ ctrl+f", "use preset"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		PresetUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "previous preset"),
		),
		PresetDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "next preset"),
		),
	}
}

// pageHelp adapts keyMap to help.KeyMap for the bindings of one page.
type pageHelp struct {
	keys keyMap
	page content.Page
}

var _ help.KeyMap = pageHelp{}

func (p pageHelp) pageBindings() []key.Binding {
	k := p.keys
	switch p.page {
	case content.PageHome:
		return []key.Binding{k.PageDown, k.PageUp}
	case content.PageTheory:
		return []key.Binding{k.Up, k.Down, k.Toggle}
	case content.PageVisualization:
		return []key.Binding{k.PrevView, k.NextView}
	case content.PageGame:
		return []key.Binding{k.Start, k.Prime, k.Composite, k.Reset, k.GameMode}
	case content.PageCalculator:
		return []key.Binding{k.Evaluate, k.ZetaMode, k.PrimeMode, k.GeneralMode, k.UsePreset, k.Clear}
	}
	return nil
}

func (p pageHelp) globalBindings() []key.Binding {
	k := p.keys
	if p.page == content.PageCalculator {
		return []key.Binding{k.NextPage, k.PrevPage, k.ForceQuit}
	}
	return []key.Binding{k.NextPage, k.PrevPage, k.JumpPage, k.Help, k.Quit}
}

// ShortHelp implements help.KeyMap.
func (p pageHelp) ShortHelp() []key.Binding {
	out := p.pageBindings()
	if p.page == content.PageCalculator {
		return append(out, p.keys.NextPage, p.keys.ForceQuit)
	}
	return append(out, p.keys.NextPage, p.keys.Help, p.keys.Quit)
}

// FullHelp implements help.KeyMap.
func (p pageHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{p.pageBindings(), p.globalBindings(), {p.keys.PageUp, p.keys.PageDown}}
}
