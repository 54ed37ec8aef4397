package chart

import (
	"math"
	"strings"
)

const (
	minTextWidth  = 20
	minTextHeight = 6
	yGutter       = 7 // columns reserved for y tick labels and the axis
)

// Glyphs used by RenderText.
const (
	glyphMarker = '●'
	glyphCurve  = '·'
	glyphBar    = '█'
	glyphVLine  = '┊'
	glyphXAxis  = '─'
	glyphYAxis  = '│'
	glyphOrigin = '└'
)

// canvas is a fixed grid of runes addressed as (column, row), row 0 on top.
type canvas struct {
	w, h  int
	cells [][]rune
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		cells[i] = []rune(strings.Repeat(" ", w))
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(col, row int, r rune) {
	if col < 0 || row < 0 || col >= c.w || row >= c.h {
		return
	}
	c.cells[row][col] = r
}

func (c *canvas) text(col, row int, s string) {
	for i, r := range []rune(s) {
		c.set(col+i, row, r)
	}
}

func (c *canvas) String() string {
	lines := make([]string, c.h)
	for i, row := range c.cells {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// RenderText draws f on a width x height character grid, axes included.
func RenderText(f Figure, width, height int) string {
	width = max(width, minTextWidth)
	height = max(height, minTextHeight)
	c := newCanvas(width, height)

	plotW := width - yGutter
	plotH := height - 2 // x axis and its labels
	origin := yGutter - 1
	x := scale{d0: f.XDomain[0], d1: f.XDomain[1], r0: 0, r1: float64(plotW - 1)}
	y := scale{d0: f.YDomain[0], d1: f.YDomain[1], r0: float64(plotH - 1), r1: 0}
	col := func(v float64) int { return origin + 1 + int(math.Round(x.at(v))) }
	row := func(v float64) int { return int(math.Round(y.at(v))) }

	for r := 0; r < plotH; r++ {
		c.set(origin, r, glyphYAxis)
	}
	for i := origin + 1; i < width; i++ {
		c.set(i, plotH, glyphXAxis)
	}
	c.set(origin, plotH, glyphOrigin)

	for _, t := range ticks(f.YDomain[0], f.YDomain[1], max(plotH/3, 1)) {
		label := formatTick(t)
		c.text(origin-1-len([]rune(label)), row(t), label)
	}
	for _, t := range ticks(f.XDomain[0], f.XDomain[1], max(plotW/10, 1)) {
		label := formatTick(t)
		c.text(col(t)-len([]rune(label))/2, plotH+1, label)
	}

	barCols := max((x.at(1)-x.at(0))-1, 1)
	for _, b := range f.Bars {
		top := row(b.Value)
		start := col(b.X)
		for dc := 0; dc < int(barCols); dc++ {
			for r := top; r < plotH; r++ {
				c.set(start+dc, r, glyphBar)
			}
		}
	}

	for i := 0; i+1 < len(f.Curve); i++ {
		a, b := f.Curve[i], f.Curve[i+1]
		steps := max(col(b.X)-col(a.X), 1)
		for s := 0; s <= steps; s++ {
			t := float64(s) / float64(steps)
			c.set(col(a.X+(b.X-a.X)*t), row(a.Y+(b.Y-a.Y)*t), glyphCurve)
		}
	}

	if f.VLine != nil {
		vc := col(*f.VLine)
		for r := 0; r < plotH; r++ {
			c.set(vc, r, glyphVLine)
		}
		if f.VLineLabel != "" {
			c.text(vc+2, 0, f.VLineLabel)
		}
	}

	for _, p := range f.Markers {
		c.set(col(p.X), row(p.Y), glyphMarker)
	}
	return c.String()
}
