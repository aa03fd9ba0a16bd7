package monitor

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderLines(t *testing.T, g Graph, points []Point) []string {
	t.Helper()
	out := g.Render(points)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, g.Height)
	for i, line := range lines {
		require.Equal(t, g.Width, utf8.RuneCountInString(line), "line %d: %q", i, line)
	}
	return lines
}

func pointsOf(values ...float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Tick: i, Value: v}
	}
	return points
}

func isBraille(r rune) bool {
	return r > brailleBase && r <= brailleBase+0xFF
}

func TestGraph_NonPositiveDimensions(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Graph{Width: tt.width, Height: tt.height}
			assert.Equal(t, "", g.Render(pointsOf(1, 2, 3)))
		})
	}
}

func TestGraph_EmptySeriesHasAxes(t *testing.T) {
	g := Graph{Width: DefaultGraphWidth, Height: DefaultGraphHeight, XLabel: "Time", YLabel: "CPU %"}
	lines := renderLines(t, g, nil)

	assert.True(t, strings.HasPrefix(lines[0], "CPU %"))
	assert.Contains(t, lines[len(lines)-2], "└")
	assert.Contains(t, lines[len(lines)-1], "Time")

	first, last := g.PlotRows()
	for row := first; row <= last; row++ {
		plot := []rune(lines[row])[GraphGutter:]
		assert.Equal(t, strings.Repeat(" ", len(plot)), string(plot), "row %d should be empty", row)
	}
}

func TestGraph_TooSmallIsBlank(t *testing.T) {
	g := Graph{Width: 5, Height: 3}
	lines := renderLines(t, g, pointsOf(50))
	for _, line := range lines {
		assert.Equal(t, "     ", line)
	}
}

func TestGraph_Deterministic(t *testing.T) {
	g := Graph{Width: 40, Height: 12, XLabel: "Time", YLabel: "CPU %"}
	points := pointsOf(3, 80, 45.5, 12, 99, 0, 61)
	assert.Equal(t, g.Render(points), g.Render(points))
}

func TestGraph_SinglePointAtOrigin(t *testing.T) {
	g := Graph{Width: 30, Height: 10}
	lines := renderLines(t, g, pointsOf(50))

	first, last := g.PlotRows()
	found := false
	for row := first; row <= last; row++ {
		plot := []rune(lines[row])[GraphGutter:]
		for col, r := range plot {
			if r == ' ' {
				continue
			}
			assert.Equal(t, 0, col, "a single point plots in the first column")
			assert.True(t, isBraille(r))
			found = true
		}
	}
	assert.True(t, found)
}

func TestGraph_LineSpansRange(t *testing.T) {
	g := Graph{Width: 30, Height: 10}
	lines := renderLines(t, g, pointsOf(0, 100))

	first, last := g.PlotRows()
	for row := first; row <= last; row++ {
		plot := []rune(lines[row])[GraphGutter:]
		hasDot := false
		for _, r := range plot {
			if isBraille(r) {
				hasDot = true
			}
		}
		assert.True(t, hasDot, "segment from 0 to 100 should cross row %d", row)
	}
}

func TestGraph_NoEmptyBrailleCells(t *testing.T) {
	g := Graph{Width: 40, Height: 12}
	out := g.Render(pointsOf(10, 20, 30))
	assert.NotContains(t, out, string(brailleBase))
}

func TestGraph_AxisTicks(t *testing.T) {
	g := Graph{Width: 60, Height: 20, XLabel: "Time"}
	values := make([]float64, 60)
	for i := range values {
		values[i] = float64(i)
	}
	lines := renderLines(t, g, pointsOf(values...))

	first, last := g.PlotRows()
	assert.True(t, strings.HasPrefix(lines[first], " 100.0┤"))
	assert.True(t, strings.HasPrefix(lines[last], "   0.0┤"))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "59"))
}

func TestGraph_NonPercentageRange(t *testing.T) {
	g := Graph{Width: 40, Height: 10}
	lines := renderLines(t, g, pointsOf(200, 400))

	first, last := g.PlotRows()
	assert.True(t, strings.HasPrefix(lines[first], " 400.0┤"))
	assert.True(t, strings.HasPrefix(lines[last], " 200.0┤"))
}

func TestRenderGraph_FromSeries(t *testing.T) {
	s := NewSeries(5)
	s.Push(0, 10)
	s.Push(1, 20)

	assert.Equal(t,
		Graph{Width: 30, Height: 8, XLabel: "x", YLabel: "y"}.Render(s.Points()),
		RenderGraph(s, 30, 8, "x", "y"))
	assert.NotEmpty(t, RenderGraph(nil, 30, 8, "x", "y"))
}

func TestFormatTick(t *testing.T) {
	tests := []struct {
		value  float64
		expect string
	}{
		{0, "0.0"},
		{100, "100.0"},
		{42.42, "42.4"},
		{1234567, "1.2e+0"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			got := formatTick(tt.value)
			assert.Equal(t, tt.expect, got)
			assert.LessOrEqual(t, len(got), GraphGutter-1)
		})
	}
}

func TestFindMinMax(t *testing.T) {
	minVal, maxVal, pct := findMinMax(nil)
	assert.Equal(t, 0.0, minVal)
	assert.Equal(t, 100.0, maxVal)
	assert.True(t, pct)

	minVal, maxVal, pct = findMinMax([]float64{150, -5, 20})
	assert.Equal(t, -5.0, minVal)
	assert.Equal(t, 150.0, maxVal)
	assert.False(t, pct)
}

func TestNormalizeValue_FlatRange(t *testing.T) {
	assert.Equal(t, 0.5, normalizeValue(7, 7, 7))
	assert.Equal(t, 0.25, normalizeValue(25, 0, 100))
}
