package content

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// Glamour style names accepted by NewRenderer.
const (
	StyleAuto  = "auto"
	StyleDark  = "dark"
	StyleLight = "light"
	StyleNoTTY = "notty"
)

const defaultWrap = 80

// Renderer turns markdown into styled terminal text. It caches one glamour
// renderer per width.
type Renderer struct {
	style string
	width int
	term  *glamour.TermRenderer
}

// NewRenderer builds a renderer wrapping at width columns.
func NewRenderer(style string, width int) (*Renderer, error) {
	r := &Renderer{style: style}
	if err := r.SetWidth(width); err != nil {
		return nil, err
	}
	return r, nil
}

// SetWidth rebuilds the underlying renderer when the wrap width changes.
func (r *Renderer) SetWidth(width int) error {
	if width <= 0 {
		width = defaultWrap
	}
	if r.term != nil && width == r.width {
		return nil
	}
	styleOpt := glamour.WithStandardStyle(r.style)
	if r.style == "" || r.style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}
	term, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("create markdown renderer: %w", err)
	}
	r.term, r.width = term, width
	return nil
}

// Width is the current wrap width.
func (r *Renderer) Width() int { return r.width }

// Render styles md. On failure the raw markdown is returned with the error.
func (r *Renderer) Render(md string) (string, error) {
	out, err := r.term.Render(md)
	if err != nil {
		return md, fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
