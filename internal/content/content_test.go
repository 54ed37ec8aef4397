//nolint:testpackage // White-box tests require access to unexported identifiers in this package.
package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheorySections(t *testing.T) {
	sections := TheorySections()
	require.Len(t, sections, 3)
	assert.Equal(t, "The Basics", sections[0].Title)
	assert.Equal(t, "The Hypothesis Statement", sections[1].Title)
	assert.Equal(t, "Why It Matters", sections[2].Title)
	assert.Equal(t, DefaultExpanded, sections[0].ID)
	for _, s := range sections {
		assert.NotEmpty(t, s.Body, s.ID)
	}
	assert.Contains(t, sections[1].Body, "real part equal to 1/2")
}

func TestTheory_OnlyExpandedBodies(t *testing.T) {
	md := Theory(map[string]bool{"basics": true})
	assert.Contains(t, md, "▾ The Basics")
	assert.Contains(t, md, "▸ Why It Matters")
	assert.Contains(t, md, "Bernhard Riemann in 1859")
	assert.NotContains(t, md, "Cryptography")
}

func TestNotes(t *testing.T) {
	for _, key := range []string{
		"critical-line", "zero-density", "prime-gaps", "insights",
		"zeta", "prime", "general", "game", "zero-hunt",
	} {
		md, err := Notes(key)
		require.NoError(t, err, key)
		assert.NotEmpty(t, md, key)
	}
	_, err := Notes("nope")
	require.Error(t, err)
}

func TestPages(t *testing.T) {
	require.Len(t, Pages(), 5)
	for _, p := range Pages() {
		title, tagline := p.Heading()
		assert.NotEmpty(t, p.Title())
		assert.NotEmpty(t, title)
		assert.NotEmpty(t, tagline)
	}
	assert.Contains(t, Home(), "Millennium Prize")
}

func TestParsePage(t *testing.T) {
	for in, want := range map[string]Page{
		"home":          PageHome,
		" Theory ":      PageTheory,
		"visualize":     PageVisualization,
		"visualization": PageVisualization,
		"CALCULATOR":    PageCalculator,
	} {
		got, err := ParsePage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParsePage("settings")
	require.Error(t, err)
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer(StyleNoTTY, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, r.Width())

	out, err := r.Render("# Title\n\nSome **bold** words.")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "bold")

	require.NoError(t, r.SetWidth(0))
	assert.Equal(t, defaultWrap, r.Width())
}
