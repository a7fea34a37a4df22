// Package storyboard draws a story's step sequence as a Graphviz diagram.
//
// Each step becomes a box labelled with its index, category and max year;
// the sentinel state (before the first step) comes first and edges follow
// scroll order. Edges where the category changes are dashed. The diagram is
// a debugging aid for story authors:
//
//	dot := storyboard.ToDOT(s, storyboard.Options{Detailed: true})
//	svg, err := storyboard.RenderSVG(ctx, dot)
//
// Rendering runs Graphviz in-process through [github.com/goccy/go-graphviz].
package storyboard
