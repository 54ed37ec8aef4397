package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ensigniasec/riemann/internal/calc"
)

// presetItem is the list item backing one quick calculation.
type presetItem struct{ preset calc.Preset }

// List item interface methods.
func (it presetItem) Title() string       { return it.preset.Label }
func (it presetItem) Description() string { return it.preset.Description }
func (it presetItem) FilterValue() string { return it.preset.Label + " " + it.preset.Value }

// presetDelegate renders presetItem rows with the description right-justified.
type presetDelegate struct{}

func (d presetDelegate) Height() int                             { return 1 }
func (d presetDelegate) Spacing() int                            { return 0 }
func (d presetDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d presetDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(presetItem)
	if !ok {
		return
	}
	selected := index == m.Index()
	leftPrefix := "  "
	lineStyle := lipgloss.NewStyle()
	if selected {
		leftPrefix = "> "
		lineStyle = lineStyle.Foreground(lipgloss.Color(colorGold)).Bold(true)
	}

	left := fmt.Sprintf("%s%-8s %s", leftPrefix, it.preset.Label, it.preset.Value)
	right := lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Render(it.preset.Description)

	padding := max(m.Width()-lipgloss.Width(left)-lipgloss.Width(right), 1)
	_, _ = fmt.Fprint(w, lineStyle.Render(left)+spaces(padding)+right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(n).Render("")
}

func newPresetList(mode calc.Mode, width int) list.Model {
	lst := list.New(presetItems(mode), presetDelegate{}, width, presetListLines)
	lst.SetShowTitle(false)
	lst.SetShowStatusBar(false)
	lst.SetFilteringEnabled(false)
	lst.SetShowHelp(false)
	lst.SetShowPagination(false)
	return lst
}

func presetItems(mode calc.Mode) []list.Item {
	presets := calc.Presets(mode)
	items := make([]list.Item, 0, len(presets))
	for _, p := range presets {
		items = append(items, presetItem{preset: p})
	}
	return items
}
