package storyboard

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/scrollplot/pkg/errors"
	"github.com/matzehuels/scrollplot/pkg/story"
)

// Options configures storyboard generation.
type Options struct {
	// Detailed adds the step flags and the start of the step text to each
	// label.
	Detailed bool
}

const (
	sentinelID  = "start"
	excerptRune = 40
)

// ToDOT converts a story to Graphviz DOT.
func ToDOT(s *story.Story, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Story {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("\n")

	sentinel := s.Sentinel()
	fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,filled,dashed\", fillcolor=lightgrey];\n",
		sentinelID, fmt.Sprintf("before start\n%s\nthrough %d", sentinel.Category, sentinel.MaxYear))

	for i, st := range s.Steps {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(i, st, opts.Detailed))}
		if st.ShowPercentGraph {
			attrs = append(attrs, "fillcolor=\"#F8E800\"")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	prev, prevCategory := sentinelID, sentinel.Category
	for i, st := range s.Steps {
		if st.Category != prevCategory {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", prev, nodeID(i))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", prev, nodeID(i))
		}
		prev, prevCategory = nodeID(i), st.Category
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return fmt.Sprintf("step%d", i) }

func fmtLabel(i int, st story.Step, detailed bool) string {
	label := fmt.Sprintf("%d: %s\nthrough %d", i, st.Category, st.MaxYear)
	if !detailed {
		return label
	}

	var flags []string
	if st.ShowAxesIndicators || i == 0 {
		flags = append(flags, "axes")
	}
	if st.ShowLine {
		flags = append(flags, "line")
	}
	if st.ShowPercentGraph {
		flags = append(flags, "percent")
	}
	for _, g := range st.Guides {
		flags = append(flags, g.Kind+"@"+fmt.Sprint(g.Year))
	}
	if len(flags) > 0 {
		label += "\n[" + strings.Join(flags, ", ") + "]"
	}
	return label + "\n" + excerpt(st.Text)
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptRune {
		return text
	}
	r := []rune(text)
	return string(r[:excerptRune-1]) + "…"
}

// RenderSVG renders DOT source to SVG with Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render storyboard")
	}
	return buf.Bytes(), nil
}
