package monitor

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Braille character rendering for high-resolution line plots.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

const (
	// DefaultGraphWidth and DefaultGraphHeight are the live graph frame size in cells.
	DefaultGraphWidth  = 60
	DefaultGraphHeight = 30

	// GraphGutter is the width of the y-axis tick column, including the axis line.
	GraphGutter = 7

	// Rows outside the plot area: y label, x axis, x tick labels.
	graphChromeRows = 3
)

// Graph renders a series as a line plot with labelled axes.
type Graph struct {
	Width  int
	Height int
	XLabel string
	YLabel string
}

// RenderGraph draws a series into a width x height frame.
func RenderGraph(series *Series, width, height int, xLabel, yLabel string) string {
	var points []Point
	if series != nil {
		points = series.Points()
	}
	return Graph{Width: width, Height: height, XLabel: xLabel, YLabel: yLabel}.Render(points)
}

// PlotRows returns the first and last frame rows (inclusive) that hold plot cells.
func (g Graph) PlotRows() (first, last int) {
	return 1, g.Height - graphChromeRows
}

// Render draws the points as exactly Height lines of Width cells joined by
// newlines. The x axis spans the points' positions re-based to 0..n-1, so a
// single point sits at x=0. Empty input yields axes with no plotted line.
// Frames too small to hold the axes come back blank. Returns "" when either
// dimension is not positive.
func (g Graph) Render(points []Point) string {
	if g.Width <= 0 || g.Height <= 0 {
		return ""
	}

	plotW := g.Width - GraphGutter
	plotH := g.Height - graphChromeRows
	if plotW < 1 || plotH < 1 {
		return blankFrame(g.Width, g.Height)
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	minVal, maxVal, _ := findMinMax(values)

	grid := plotLine(values, minVal, maxVal, plotW, plotH)

	lines := make([]string, 0, g.Height)
	lines = append(lines, fitCells(g.YLabel, g.Width))

	for row := 0; row < plotH; row++ {
		var sb strings.Builder
		sb.WriteString(gutterLabel(row, plotH, minVal, maxVal))
		for _, cell := range grid[row] {
			if cell == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(brailleBase | cell)
			}
		}
		lines = append(lines, sb.String())
	}

	lines = append(lines, strings.Repeat(" ", GraphGutter-1)+"└"+strings.Repeat("─", plotW))
	lines = append(lines, xTickLine(len(points), plotW, g.XLabel))

	return strings.Join(lines, "\n")
}

// plotLine rasterises the values onto a braille grid of plotW x plotH cells,
// joining consecutive samples with straight segments.
func plotLine(values []float64, minVal, maxVal float64, plotW, plotH int) [][]rune {
	grid := make([][]rune, plotH)
	for i := range grid {
		grid[i] = make([]rune, plotW)
	}
	if len(values) == 0 {
		return grid
	}

	dotsW := plotW * 2
	dotsH := plotH * 4

	set := func(x, y int) {
		x = clampInt(x, dotsW-1)
		y = clampInt(y, dotsH-1)
		grid[y/4][x/2] |= rune(1) << brailleDots[y%4][x%2]
	}

	dotX := func(i int) int {
		if len(values) == 1 {
			return 0
		}
		return int(math.Round(float64(i) * float64(dotsW-1) / float64(len(values)-1)))
	}
	dotY := func(v float64) int {
		n := normalizeValue(v, minVal, maxVal)
		n = math.Max(0, math.Min(1, n))
		return int(math.Round((1 - n) * float64(dotsH-1)))
	}

	prevX, prevY := dotX(0), dotY(values[0])
	set(prevX, prevY)
	for i := 1; i < len(values); i++ {
		x, y := dotX(i), dotY(values[i])
		drawSegment(prevX, prevY, x, y, set)
		prevX, prevY = x, y
	}
	return grid
}

// drawSegment walks a Bresenham line between two dot coordinates.
func drawSegment(x0, y0, x1, y1 int, set func(x, y int)) {
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// gutterLabel renders the y-axis column for a plot row. The top, middle and
// bottom rows carry tick values.
func gutterLabel(row, plotH int, minVal, maxVal float64) string {
	label := ""
	switch {
	case row == 0:
		label = formatTick(maxVal)
	case row == plotH-1:
		label = formatTick(minVal)
	case plotH >= 5 && row == plotH/2:
		label = formatTick((minVal + maxVal) / 2)
	}
	if label == "" {
		return strings.Repeat(" ", GraphGutter-1) + "│"
	}
	return padLeft(label, GraphGutter-1) + "┤"
}

// xTickLine renders the first and last sample positions with the axis label
// centred between them when it fits.
func xTickLine(n, plotW int, label string) string {
	cells := []rune(strings.Repeat(" ", GraphGutter+plotW))
	put := func(col int, s string) {
		for i, r := range []rune(s) {
			if col+i >= 0 && col+i < len(cells) {
				cells[col+i] = r
			}
		}
	}

	first, last := "0", ""
	if n > 1 {
		last = strconv.Itoa(n - 1)
	}
	put(GraphGutter-1, first)
	lastCol := len(cells) - utf8.RuneCountInString(last)
	put(lastCol, last)

	labelLen := utf8.RuneCountInString(label)
	labelCol := GraphGutter + (plotW-labelLen)/2
	if labelLen > 0 && labelCol > GraphGutter && labelCol+labelLen < lastCol {
		put(labelCol, label)
	}
	return string(cells)
}

// formatTick formats an axis value to at most GraphGutter-1 characters.
func formatTick(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	if len(s) > GraphGutter-1 {
		s = strconv.FormatFloat(v, 'g', 2, 64)
	}
	if len(s) > GraphGutter-1 {
		s = s[:GraphGutter-1]
	}
	return s
}

// findMinMax returns the minimum and maximum values in a slice.
// For percentage data (all values 0-100), returns fixed range 0-100.
func findMinMax(data []float64) (minVal, maxVal float64, isPercentage bool) {
	if len(data) == 0 {
		return 0, 100, true
	}

	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	// Percentage data uses a fixed range so the scale doesn't jump between frames.
	isPercentage = maxVal <= 100 && minVal >= 0
	if isPercentage {
		minVal = 0
		maxVal = 100
	}

	return minVal, maxVal, isPercentage
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

// clampInt clamps an integer to a range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func blankFrame(width, height int) string {
	row := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = row
	}
	return strings.Join(lines, "\n")
}

// fitCells truncates or pads s to exactly width cells.
func fitCells(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

func padLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}
