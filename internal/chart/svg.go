package chart

import (
	"bytes"
	"fmt"
	"html"
)

const (
	ColorPurple = "#7c3aed"
	ColorGold   = "#f59e0b"
	colorWhite  = "#ffffff"
	colorAxis   = "#9ca3af"
	colorFrame  = "#0f172a"

	tickCount   = 8
	tickLength  = 6
	zeroRadius  = 6
	pointRadius = 4
	barGap      = 2
)

// Margin is the space around the plotting area.
type Margin struct {
	Top, Right, Bottom, Left float64
}

type svgRenderer struct {
	width, height float64
	margin        Margin
	background    bool
}

// SVGOption mutates the SVG renderer.
type SVGOption func(*svgRenderer)

// WithSize sets the outer canvas size in pixels.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 && h > 0 {
			r.width, r.height = w, h
		}
	}
}

// WithMargin sets the margins around the plotting area.
func WithMargin(m Margin) SVGOption { return func(r *svgRenderer) { r.margin = m } }

// WithBackground fills the canvas with a dark frame colour.
func WithBackground() SVGOption { return func(r *svgRenderer) { r.background = true } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{
		width:  800,
		height: 400,
		margin: Margin{Top: 20, Right: 20, Bottom: 40, Left: 40},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws f as a standalone SVG document.
func RenderSVG(f Figure, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	innerW := r.width - r.margin.Left - r.margin.Right
	innerH := r.height - r.margin.Top - r.margin.Bottom
	x := scale{d0: f.XDomain[0], d1: f.XDomain[1], r0: 0, r1: innerW}
	y := scale{d0: f.YDomain[0], d1: f.YDomain[1], r0: innerH, r1: 0}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.0f %.0f" width="%.0f" height="%.0f">`+"\n",
		r.width, r.height, r.width, r.height)
	fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(f.Title))
	if r.background {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", colorFrame)
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f,%.1f)">`+"\n", r.margin.Left, r.margin.Top)

	renderAxes(&buf, f, x, y, innerW, innerH)
	renderBars(&buf, f, x, y, innerH)
	renderCurve(&buf, f, x, y)
	renderVLine(&buf, f, x, innerH)
	renderMarkers(&buf, f, x, y)

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderAxes(buf *bytes.Buffer, f Figure, x, y scale, innerW, innerH float64) {
	fmt.Fprintf(buf, `    <g class="axis axis-x" transform="translate(0,%.1f)">`+"\n", innerH)
	fmt.Fprintf(buf, `      <line x1="0" y1="0" x2="%.1f" y2="0" stroke="%s"/>`+"\n", innerW, colorAxis)
	for _, t := range ticks(f.XDomain[0], f.XDomain[1], tickCount) {
		px := x.at(t)
		fmt.Fprintf(buf, `      <line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s"/>`+"\n", px, px, tickLength, colorAxis)
		fmt.Fprintf(buf, `      <text x="%.1f" y="18" fill="%s" font-size="10" text-anchor="middle">%s</text>`+"\n", px, colorAxis, formatTick(t))
	}
	fmt.Fprintf(buf, `      <text x="%.1f" y="35" fill="%s" text-anchor="middle">%s</text>`+"\n", innerW/2, ColorGold, html.EscapeString(f.XLabel))
	buf.WriteString("    </g>\n")

	buf.WriteString(`    <g class="axis axis-y">` + "\n")
	fmt.Fprintf(buf, `      <line x1="0" y1="0" x2="0" y2="%.1f" stroke="%s"/>`+"\n", innerH, colorAxis)
	for _, t := range ticks(f.YDomain[0], f.YDomain[1], tickCount) {
		py := y.at(t)
		fmt.Fprintf(buf, `      <line x1="%d" y1="%.1f" x2="0" y2="%.1f" stroke="%s"/>`+"\n", -tickLength, py, py, colorAxis)
		fmt.Fprintf(buf, `      <text x="-9" y="%.1f" fill="%s" font-size="10" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n", py, colorAxis, formatTick(t))
	}
	fmt.Fprintf(buf, `      <text transform="rotate(-90)" x="%.1f" y="-25" fill="%s" text-anchor="middle">%s</text>`+"\n", -innerH/2, ColorGold, html.EscapeString(f.YLabel))
	buf.WriteString("    </g>\n")
}

func renderBars(buf *bytes.Buffer, f Figure, x, y scale, innerH float64) {
	if len(f.Bars) == 0 {
		return
	}
	w := max(x.at(1)-x.at(0)-barGap, 1)
	for _, b := range f.Bars {
		top := y.at(b.Value)
		fmt.Fprintf(buf, `    <rect class="gap-bar" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"><title>%s: %s</title></rect>`+"\n",
			x.at(b.X), top, w, innerH-top, ColorPurple, ColorGold, html.EscapeString(b.Label), formatTick(b.Value))
	}
}

func renderCurve(buf *bytes.Buffer, f Figure, x, y scale) {
	if len(f.Curve) < 2 {
		return
	}
	pts := make([]Point, len(f.Curve))
	for i, p := range f.Curve {
		pts[i] = Point{X: x.at(p.X), Y: y.at(p.Y)}
	}
	fmt.Fprintf(buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="3"/>`+"\n", cardinalPath(pts), ColorPurple)
}

// cardinalPath joins pts with a cardinal spline of tension 0 expressed as cubic Béziers.
func cardinalPath(pts []Point) string {
	const k = 1.0 / 6
	var b bytes.Buffer
	fmt.Fprintf(&b, "M%.2f,%.2f", pts[0].X, pts[0].Y)
	for i := 0; i < len(pts)-1; i++ {
		p0 := pts[max(i-1, 0)]
		p1 := pts[i]
		p2 := pts[i+1]
		p3 := pts[min(i+2, len(pts)-1)]
		c1 := Point{X: p1.X + k*(p2.X-p0.X), Y: p1.Y + k*(p2.Y-p0.Y)}
		c2 := Point{X: p2.X - k*(p3.X-p1.X), Y: p2.Y - k*(p3.Y-p1.Y)}
		fmt.Fprintf(&b, "C%.2f,%.2f,%.2f,%.2f,%.2f,%.2f", c1.X, c1.Y, c2.X, c2.Y, p2.X, p2.Y)
	}
	return b.String()
}

func renderVLine(buf *bytes.Buffer, f Figure, x scale, innerH float64) {
	if f.VLine == nil {
		return
	}
	px := x.at(*f.VLine)
	fmt.Fprintf(buf, `    <line class="critical-line" x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="3" stroke-dasharray="5,5"/>`+"\n",
		px, px, innerH, ColorPurple)
	if f.VLineLabel != "" {
		fmt.Fprintf(buf, `    <text x="%.1f" y="20" fill="%s" font-size="14px">%s</text>`+"\n", px+10, ColorPurple, html.EscapeString(f.VLineLabel))
	}
}

func renderMarkers(buf *bytes.Buffer, f Figure, x, y scale) {
	r := pointRadius
	if f.VLine != nil {
		r = zeroRadius
	}
	for _, p := range f.Markers {
		fmt.Fprintf(buf, `    <circle class="point" cx="%.1f" cy="%.1f" r="%d" fill="%s" stroke="%s" stroke-width="2"/>`+"\n",
			x.at(p.X), y.at(p.Y), r, ColorGold, colorWhite)
	}
}
