package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/riemann/internal/calc"
	"github.com/ensigniasec/riemann/internal/config"
	"github.com/ensigniasec/riemann/internal/content"
	"github.com/ensigniasec/riemann/internal/game"
)

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, cfg config.Config, opts Options) error {
	c, err := calc.New(calc.WithTerms(cfg.ZetaTerms), calc.WithMaxPrimeN(cfg.MaxPrimeN))
	if err != nil {
		return fmt.Errorf("create calculator: %w", err)
	}
	// Resolve the glamour style before the alt screen takes over the terminal.
	r, err := content.NewRenderer(content.StyleAuto, defaultWidth-2)
	if err != nil {
		return err
	}
	g := game.New(game.WithRoundSeconds(cfg.Game.RoundSeconds))
	if opts.ResultDelay <= 0 {
		opts.ResultDelay = cfg.Game.ResultDelay
	}

	model := NewModel(c, g, r, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Silence logs during TUI to avoid corrupting the view.
	prevOut := logrus.StandardLogger().Out
	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(prevOut)

	_, err = p.Run()
	return err
}
