package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/scrollplot/pkg/figure"
)

// renderPercent draws the share of A per year as bars, one per year.
func renderPercent(f *figure.Frame, width, height int) string {
	shares := figure.Shares(f.Series, f.StartYear)
	title := lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Render(f.Title + " · share of total")
	if len(shares) == 0 || width < 10 || height < 6 {
		return title
	}

	barWidth := 1
	if w := (width - 2) / len(shares); w >= 3 {
		barWidth = w - 1
	}
	bc := barchart.New(width, height-3,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(barWidth),
		barchart.WithNoAxis(),
	)
	for i, s := range shares {
		color := lipgloss.Color(f.Colors[i])
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{{
				Name:  fmt.Sprint(s.Year),
				Value: s.Share * 100,
				Style: lipgloss.NewStyle().Foreground(color).Background(color),
			}},
		})
	}
	bc.Draw()

	first, last := shares[0], shares[len(shares)-1]
	legend := lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim)).Render(
		fmt.Sprintf("%d: %.0f%%%s%d: %.0f%%",
			first.Year, first.Share*100,
			strings.Repeat(" ", max(width-22, 1)),
			last.Year, last.Share*100))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", bc.View(), legend)
}
