package display

import (
	"strings"

	"github.com/rivo/uniseg"
)

type cell struct {
	text  string // one grapheme cluster; empty for blanks and wide-char tails
	style Style
	tail  bool
}

// grid is the pending frame shared by the Terminal and the Recorder.
type grid struct {
	rows, cols int
	cells      [][]cell
}

func (g *grid) reset(rows, cols int) {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	if g.rows != rows || g.cols != cols || g.cells == nil {
		g.rows, g.cols = rows, cols
		g.cells = make([][]cell, rows)
		for r := range g.cells {
			g.cells[r] = make([]cell, cols)
		}
		return
	}
	for r := range g.cells {
		clear(g.cells[r])
	}
}

// put writes s from (row, col) by grapheme cluster, clipping at the right
// edge. A wide cluster that does not fit entirely is dropped.
func (g *grid) put(row, col int, s string, style Style) {
	if row < 0 || row >= g.rows || col >= g.cols {
		return
	}
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		if width == 0 {
			continue
		}
		if col+width > g.cols {
			return
		}
		if col >= 0 {
			line := g.cells[row]
			line[col] = cell{text: cluster, style: style}
			for k := 1; k < width; k++ {
				line[col+k] = cell{style: style, tail: true}
			}
		}
		col += width
	}
}

func (g *grid) line(row int) string {
	if row < 0 || row >= g.rows {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[row] {
		switch {
		case c.tail:
		case c.text == "":
			b.WriteByte(' ')
		default:
			b.WriteString(c.text)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func (g *grid) style(row, col int) Style {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return StyleNormal
	}
	return g.cells[row][col].style
}
