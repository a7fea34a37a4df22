package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r     rune
	color string
	bold  bool
}

// canvas is a grid of styled character cells.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	w, h = max(w, 0), max(h, 0)
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].r = ' '
	}
	return c
}

func (c *canvas) in(x, y int) bool { return x >= 0 && x < c.w && y >= 0 && y < c.h }

func (c *canvas) set(x, y int, r rune, color string) {
	if c.in(x, y) {
		c.cells[y*c.w+x] = cell{r: r, color: color}
	}
}

func (c *canvas) setBold(x, y int, r rune, color string) {
	if c.in(x, y) {
		c.cells[y*c.w+x] = cell{r: r, color: color, bold: true}
	}
}

// blank reports whether the cell holds a space.
func (c *canvas) blank(x, y int) bool {
	return c.in(x, y) && c.cells[y*c.w+x].r == ' '
}

func (c *canvas) text(x, y int, s, color string) {
	for _, r := range s {
		c.set(x, y, r, color)
		x++
	}
}

// String renders the grid, merging runs of equally styled cells.
func (c *canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		row := c.cells[y*c.w : (y+1)*c.w]
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].color == row[i].color && row[j].bold == row[i].bold {
				run.WriteRune(row[j].r)
				j++
			}
			b.WriteString(styleFor(row[i]).Render(run.String()))
			i = j
		}
		if y < c.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func styleFor(c cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c.color != "" {
		s = s.Foreground(lipgloss.Color(c.color))
	}
	if c.bold {
		s = s.Bold(true)
	}
	return s
}
