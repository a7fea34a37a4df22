package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/scrollplot/pkg/scroll"
	"github.com/matzehuels/scrollplot/pkg/story"
)

var (
	activeBar   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8E800")).Render("┃ ")
	inactiveBar = "  "
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim)).Italic(true)
)

// stepText holds the step paragraphs rendered once for a given width.
type stepText struct {
	blocks [][]string // rendered lines per step
	lead   int        // blank lines above the first step
	gap    int        // blank lines between steps
}

// renderSteps renders each step's markdown at width. lead and gap are the
// spacer heights; the last step is followed by lead lines too, so it can
// reach the trigger line.
func renderSteps(steps []story.Step, width, lead, gap int, style string) (*stepText, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(width-4, 10)),
	)
	if err != nil {
		return nil, err
	}
	st := &stepText{lead: lead, gap: gap, blocks: make([][]string, len(steps))}
	for i, s := range steps {
		out, err := r.Render(s.Text)
		if err != nil {
			return nil, err
		}
		lines := strings.Split(strings.Trim(out, "\n"), "\n")
		if s.Note != "" {
			lines = append(lines, "", noteStyle.Render(s.Note))
		}
		st.blocks[i] = lines
	}
	return st, nil
}

// Extents lays out the step blocks in content lines.
func (t *stepText) Extents() []scroll.Extent {
	heights := make([]float64, len(t.blocks))
	for i, b := range t.blocks {
		heights[i] = float64(len(b))
	}
	return scroll.Stack(float64(t.lead), float64(t.gap), heights...)
}

// Content joins the blocks, marking highlighted steps with a bar.
func (t *stepText) Content(hl *scroll.Highlights) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("\n", t.lead))
	for i, block := range t.blocks {
		if i > 0 {
			b.WriteString(strings.Repeat("\n", t.gap))
		}
		bar := inactiveBar
		if hl.Has(i) {
			bar = activeBar
		}
		for _, line := range block {
			b.WriteString(bar)
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString(strings.Repeat("\n", t.lead))
	return b.String()
}
