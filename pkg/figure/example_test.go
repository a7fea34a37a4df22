package figure_test

import (
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/scrollplot/pkg/dataset"
	"github.com/matzehuels/scrollplot/pkg/figure"
	"github.com/matzehuels/scrollplot/pkg/narrative"
	"github.com/matzehuels/scrollplot/pkg/story"
)

func ExampleCompose() {
	store, _ := dataset.New(1990, map[string]dataset.Series{
		"Engineering": {{A: 10, B: 5}, {A: 12, B: 6}, {A: 15, B: 20}},
	})
	s := &story.Story{
		StartYear:       1990,
		EndYear:         1992,
		DefaultCategory: "Engineering",
		Steps:           []story.Step{{Text: "all years", Category: "Engineering", MaxYear: 1992}},
	}
	s.SetDefaults()

	r := narrative.NewReducer(s)
	f, _ := figure.Compose(s, store, r.Apply(narrative.EnterStep(0, narrative.Down)), nil, time.Time{}, 600)
	svg := string(figure.RenderSVG(f))

	fmt.Println("points:", strings.Count(svg, "<circle"))
	fmt.Println("parity line:", strings.Contains(svg, figure.ParityLabel))
	fmt.Printf("upper limit: %.1f\n", f.Plot.Upper)
	// Output:
	// points: 3
	// parity line: true
	// upper limit: 20.4
}
