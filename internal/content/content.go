// Package content holds the explanatory prose shown on each page, written as
// markdown and rendered for the terminal with glamour.
package content

import (
	"embed"
	"fmt"
	"path"
	"strings"
)

//go:embed pages
var pages embed.FS

// Page names a top-level page.
type Page string

const (
	PageHome          Page = "home"
	PageTheory        Page = "theory"
	PageVisualization Page = "visualization"
	PageGame          Page = "game"
	PageCalculator    Page = "calculator"
)

// Pages lists the pages in navigation order.
func Pages() []Page {
	return []Page{PageHome, PageTheory, PageVisualization, PageGame, PageCalculator}
}

// ParsePage resolves a page by name or navigation label, case-insensitively.
// "visualize" is accepted for the visualization page.
func ParsePage(s string) (Page, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Pages() {
		if name == string(p) || name == strings.ToLower(p.Title()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown page %q", s)
}

// Title is the navigation label of p.
func (p Page) Title() string {
	switch p {
	case PageHome:
		return "Home"
	case PageTheory:
		return "Theory"
	case PageVisualization:
		return "Visualize"
	case PageGame:
		return "Game"
	case PageCalculator:
		return "Calculator"
	}
	return string(p)
}

// Heading is the page headline and its tagline.
func (p Page) Heading() (string, string) {
	switch p {
	case PageHome:
		return "The Riemann Hypothesis", "One of mathematics' greatest unsolved mysteries"
	case PageTheory:
		return "Understanding the Theory", "Dive deep into the mathematical foundations of the Riemann Hypothesis"
	case PageVisualization:
		return "Interactive Visualizations", "Explore the Riemann Hypothesis through dynamic, interactive graphs"
	case PageGame:
		return "Riemann Games", "Test your understanding through interactive mathematical challenges"
	case PageCalculator:
		return "Mathematical Calculator", "Explore the Riemann zeta function, prime numbers, and mathematical expressions"
	}
	return string(p), ""
}

// Section is one collapsible block of the theory page.
type Section struct {
	ID    string
	Title string
	Body  string
}

var theorySections = []struct{ id, title string }{
	{id: "basics", title: "The Basics"},
	{id: "hypothesis", title: "The Hypothesis Statement"},
	{id: "implications", title: "Why It Matters"},
}

// DefaultExpanded is the theory section open when the page is first shown.
const DefaultExpanded = "basics"

// TheorySections returns the theory page sections in order.
func TheorySections() []Section {
	out := make([]Section, 0, len(theorySections))
	for _, s := range theorySections {
		out = append(out, Section{ID: s.id, Title: s.title, Body: mustRead(path.Join("theory", s.id+".md"))})
	}
	return out
}

// Home is the landing page markdown.
func Home() string { return mustRead("home.md") }

// Notes returns the markdown tip panel named key: a chart view
// ("critical-line", "zero-density", "prime-gaps"), a calculator mode
// ("zeta", "prime", "general"), "game", "zero-hunt" or "insights".
func Notes(key string) (string, error) {
	b, err := pages.ReadFile(path.Join("pages", "notes", key+".md"))
	if err != nil {
		return "", fmt.Errorf("no notes for %q: %w", key, err)
	}
	return string(b), nil
}

// Theory renders the theory page as one markdown document, including the body
// of each section whose ID is in expanded.
func Theory(expanded map[string]bool) string {
	var b strings.Builder
	for _, s := range TheorySections() {
		marker := "▸"
		if expanded[s.ID] {
			marker = "▾"
		}
		fmt.Fprintf(&b, "## %s %s\n\n", marker, s.Title)
		if expanded[s.ID] {
			b.WriteString(s.Body)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func mustRead(name string) string {
	b, err := pages.ReadFile(path.Join("pages", name))
	if err != nil {
		panic(fmt.Sprintf("content: embedded page %s missing: %v", name, err))
	}
	return string(b)
}
