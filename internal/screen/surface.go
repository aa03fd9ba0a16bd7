// Package screen provides the drawing surface the dashboard views write to.
//
// Views draw into a Buffer: a fixed grid of cells sized to the terminal. The
// Bubble Tea runtime owns key input and the physical refresh. Each View()
// clears a buffer, lets the active view draw into it, and returns the rendered
// frame, so every frame is a full redraw and nothing from a previous view
// survives.
package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Attr is the display attribute applied to the cells written after it is set.
type Attr int

const (
	AttrNormal Attr = iota
	AttrHighlight
	AttrTitle
	AttrGraph
	AttrError
	AttrMuted
	AttrWarning
	AttrHealthy
)

// Surface is the abstract terminal the views draw on.
type Surface interface {
	// Clear blanks every cell and resets the attribute to AttrNormal.
	Clear()
	// WriteAt writes text starting at row, col. A newline continues on the
	// next row at the same column. Cells outside the surface are dropped.
	WriteAt(row, col int, text string)
	// SetHighlight switches between AttrHighlight and AttrNormal.
	SetHighlight(on bool)
	SetAttr(attr Attr)
	Size() (height, width int)
}

// Styles maps attributes to the lipgloss style used to render them.
// Attributes without an entry render unstyled.
type Styles map[Attr]lipgloss.Style

type cell struct {
	r    rune
	attr Attr
}

// Buffer is a Surface backed by an in-memory cell grid.
type Buffer struct {
	height int
	width  int
	cells  [][]cell
	attr   Attr
}

var _ Surface = (*Buffer)(nil)

// NewBuffer creates a cleared buffer. Negative dimensions are treated as zero.
func NewBuffer(height, width int) *Buffer {
	if height < 0 {
		height = 0
	}
	if width < 0 {
		width = 0
	}
	b := &Buffer{height: height, width: width}
	b.cells = make([][]cell, height)
	for i := range b.cells {
		b.cells[i] = make([]cell, width)
	}
	b.Clear()
	return b
}

func (b *Buffer) Clear() {
	for _, row := range b.cells {
		for i := range row {
			row[i] = cell{r: ' ', attr: AttrNormal}
		}
	}
	b.attr = AttrNormal
}

func (b *Buffer) WriteAt(row, col int, text string) {
	c := col
	for _, r := range text {
		if r == '\n' {
			row++
			c = col
			continue
		}
		if row >= 0 && row < b.height && c >= 0 && c < b.width {
			b.cells[row][c] = cell{r: r, attr: b.attr}
		}
		c++
	}
}

func (b *Buffer) SetHighlight(on bool) {
	if on {
		b.attr = AttrHighlight
		return
	}
	b.attr = AttrNormal
}

func (b *Buffer) SetAttr(attr Attr) {
	b.attr = attr
}

func (b *Buffer) Size() (height, width int) {
	return b.height, b.width
}

// Lines returns each row as plain text, exactly width runes long.
func (b *Buffer) Lines() []string {
	lines := make([]string, b.height)
	for i, row := range b.cells {
		var sb strings.Builder
		for _, c := range row {
			sb.WriteRune(c.r)
		}
		lines[i] = sb.String()
	}
	return lines
}

// AttrAt reports the attribute of a cell, or AttrNormal outside the grid.
func (b *Buffer) AttrAt(row, col int) Attr {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return AttrNormal
	}
	return b.cells[row][col].attr
}

// Render returns the frame with each run of equally-attributed cells styled.
func (b *Buffer) Render(styles Styles) string {
	lines := make([]string, b.height)
	for i, row := range b.cells {
		var line strings.Builder
		var run strings.Builder
		runAttr := AttrNormal

		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := styles[runAttr]; ok && runAttr != AttrNormal {
				line.WriteString(style.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}

		for _, c := range row {
			if c.attr != runAttr {
				flush()
				runAttr = c.attr
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[i] = line.String()
	}
	return strings.Join(lines, "\n")
}
