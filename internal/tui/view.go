package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/chart"
	"github.com/ensigniasec/riemann/internal/content"
	"github.com/ensigniasec/riemann/internal/game"
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple)).Bold(true)
	goldStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGold)).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))
	activeTab     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGold)).Bold(true).Underline(true).Padding(0, 1)
	inactiveTab   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted)).Padding(0, 1)
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)).Bold(true)
	panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colorPurple)).Padding(0, 1)
	bigNumber     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGold)).Bold(true).Padding(1, 4).Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(colorPurple))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true)
)

func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}
	var b strings.Builder
	b.WriteString(renderBanner())
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func renderBanner() string {
	return titleStyle.Render("ζ Riemann Explorer") + "  " + mutedStyle.Render("Re(s) = 1/2")
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(content.Pages()))
	for i, p := range content.Pages() {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if p == m.page {
			tabs = append(tabs, activeTab.Render(label))
			continue
		}
		tabs = append(tabs, inactiveTab.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFooter() string {
	return m.help.View(pageHelp{keys: m.keys, page: m.page})
}

func (m Model) renderBody() string {
	var b strings.Builder
	title, tagline := m.page.Heading()
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(tagline))
	b.WriteString("\n\n")

	switch m.page {
	case content.PageHome:
		b.WriteString(m.markdown("home", content.Home()))
	case content.PageTheory:
		b.WriteString(m.renderTheory())
	case content.PageVisualization:
		b.WriteString(m.renderVisualization())
	case content.PageGame:
		b.WriteString(m.renderGame())
	case content.PageCalculator:
		b.WriteString(m.renderCalculator())
	}
	return b.String()
}

// markdown renders md through glamour, caching by key until the next resize.
func (m Model) markdown(cacheKey, md string) string {
	if out, ok := m.rendered[cacheKey]; ok {
		return out
	}
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		logrus.Debugf("render %s: %v", cacheKey, err)
	}
	m.rendered[cacheKey] = out
	return out
}

func (m Model) notes(key string) string {
	md, err := content.Notes(key)
	if err != nil {
		logrus.Debug(err)
		return ""
	}
	return m.markdown("notes:"+key, md)
}

func (m Model) renderTheory() string {
	var b strings.Builder
	for i, s := range content.TheorySections() {
		marker := "▸"
		if m.expanded[s.ID] {
			marker = "▾"
		}
		line := fmt.Sprintf("%s %s", marker, s.Title)
		if i == m.theoryCursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
		if m.expanded[s.ID] {
			b.WriteString(m.markdown("theory:"+s.ID, s.Body))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func (m Model) renderVisualization() string {
	var b strings.Builder
	current := m.chartView()
	items := make([]string, 0, len(chart.Views()))
	for _, v := range chart.Views() {
		if v == current {
			items = append(items, activeTab.Render(v.Label()))
			continue
		}
		items = append(items, inactiveTab.Render(v.Label()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, items...))
	b.WriteString("\n\n")

	f, err := chart.Build(current)
	if err != nil {
		return wrongStyle.Render(err.Error())
	}
	b.WriteString(goldStyle.Render(f.Title))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(f.Subtitle))
	b.WriteString("\n\n")

	height := min(max(m.viewport.Height-6, chartMinHeight), chartMaxHeight)
	b.WriteString(colorizeChart(chart.RenderText(f, m.bodyWidth(), height)))
	b.WriteString("\n\n")
	b.WriteString(m.notes(string(current)))
	b.WriteString("\n")
	b.WriteString(m.notes("insights"))
	return b.String()
}

// colorizeChart paints the chart glyphs in the page palette.
func colorizeChart(s string) string {
	purple := lipgloss.NewStyle().Foreground(lipgloss.Color(colorPurple))
	gold := lipgloss.NewStyle().Foreground(lipgloss.Color(colorGold))
	r := strings.NewReplacer(
		"●", gold.Render("●"),
		"█", purple.Render("█"),
		"·", purple.Render("·"),
		"┊", purple.Render("┊"),
	)
	return r.Replace(s)
}

func (m Model) renderGame() string {
	var b strings.Builder
	g := m.game
	s := g.State()

	modes := make([]string, 0, 2)
	for _, mode := range []game.Mode{game.ModePrimePrediction, game.ModeZeroHunt} {
		if mode == s.Mode {
			modes = append(modes, activeTab.Render(mode.Label()))
			continue
		}
		modes = append(modes, inactiveTab.Render(mode.Label()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, modes...))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Score %s   Level %s   Streak %s   Bonus %s\n\n",
		goldStyle.Render(fmt.Sprint(s.Score)),
		goldStyle.Render(fmt.Sprint(s.Level)),
		goldStyle.Render(fmt.Sprint(s.Streak)),
		goldStyle.Render(g.Bonus()),
	)

	switch {
	case s.Mode == game.ModeZeroHunt:
		b.WriteString(m.notes("zero-hunt"))
	case !g.Active():
		b.WriteString(goldStyle.Render("Ready to test your mathematical intuition?"))
		b.WriteString("\n")
		b.WriteString("Challenge yourself with prime number prediction and explore the patterns\n")
		b.WriteString("that make the Riemann Hypothesis so fascinating.\n\n")
		b.WriteString(mutedStyle.Render("Press s to start."))
	default:
		// While a result is shown the next number is already drawn; keep the
		// answered one on screen.
		out, showing := g.LastOutcome()
		showing = showing && g.ShowingResult()
		number := s.Current
		if showing {
			number = out.Number
		}
		b.WriteString("Is this number prime?\n")
		b.WriteString(bigNumber.Render(fmt.Sprint(number)))
		b.WriteString("\n")
		pct := float64(g.TimeLeft()) / float64(g.RoundSeconds())
		fmt.Fprintf(&b, "Time: %ds  %s\n", g.TimeLeft(), m.countdown.ViewAs(pct))
		if showing {
			b.WriteString("\n")
			b.WriteString(renderOutcome(out))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.notes("game"))
	return b.String()
}

func renderOutcome(out game.Outcome) string {
	style := wrongStyle
	if out.Correct {
		style = correctStyle
	}
	lines := []string{style.Render(out.Feedback)}
	if len(out.Divisors) > 0 {
		parts := make([]string, len(out.Divisors))
		for i, d := range out.Divisors {
			parts[i] = fmt.Sprint(d)
		}
		factors := "Factors: " + strings.Join(parts, ", ")
		if out.Truncated {
			factors += "..."
		}
		lines = append(lines, mutedStyle.Render(factors))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderCalculator() string {
	var b strings.Builder
	modes := make([]string, 0, len(calc.Modes()))
	for _, mode := range calc.Modes() {
		label := calcTabLabel(mode)
		if mode == m.calcMode {
			modes = append(modes, activeTab.Render(label))
			continue
		}
		modes = append(modes, inactiveTab.Render(label))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, modes...))
	b.WriteString("\n\n")
	b.WriteString(goldStyle.Render(m.calcMode.Title()))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.calcMode.Description()))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case m.evaluating:
		b.WriteString(mutedStyle.Render("Calculating..."))
		b.WriteString("\n\n")
	case m.calcErr != "":
		b.WriteString(panelStyle.Render(wrongStyle.Render(m.calcErr)))
		b.WriteString("\n\n")
	case m.calcResult != "":
		b.WriteString(panelStyle.Render("Result:\n" + m.calcResult))
		b.WriteString("\n\n")
	}

	b.WriteString(goldStyle.Render("Quick Calculations:"))
	b.WriteString("\n")
	b.WriteString(m.presets.View())
	b.WriteString("\n\n")
	b.WriteString(m.notes(string(m.calcMode)))
	return b.String()
}

func calcTabLabel(mode calc.Mode) string {
	switch mode {
	case calc.ModeZeta:
		return "ζ(s) Zeta"
	case calc.ModePrime:
		return "π(x) Prime"
	case calc.ModeGeneral:
		return "∑ General"
	}
	return string(mode)
}
