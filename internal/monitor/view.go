package monitor

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/hostdash/internal/errors"
	"github.com/rileyhilliard/hostdash/internal/screen"
)

// MenuTitle is drawn on the first row of the menu screen.
const MenuTitle = "hostdash (Use arrow keys to navigate, Enter to select)"

// menuOrigin returns the cell where option idx is drawn: centred horizontally
// on its own label, with the block of options centred vertically.
func menuOrigin(height, width, count, idx int, label string) (row, col int) {
	col = width/2 - len([]rune(label))/2
	row = height/2 - count/2 + idx
	return row, col
}

// drawMenu draws the title, the options with the selected one highlighted,
// and the key help on the bottom row.
func drawMenu(s screen.Surface, menu MenuState, helpText string) {
	height, width := s.Size()

	s.SetAttr(screen.AttrTitle)
	s.WriteAt(0, 0, MenuTitle)

	options := menu.Options()
	for idx, opt := range options {
		row, col := menuOrigin(height, width, len(options), idx, opt.Label)
		s.SetHighlight(idx == menu.Selected())
		s.WriteAt(row, col, opt.Label)
	}
	s.SetHighlight(false)

	if helpText == "" {
		return
	}
	helpLines := strings.Split(helpText, "\n")
	first := height - len(helpLines)
	lastOption, _ := menuOrigin(height, width, len(options), len(options)-1, "")
	if first <= lastOption {
		return
	}
	s.SetAttr(screen.AttrMuted)
	for i, line := range helpLines {
		s.WriteAt(first+i, 0, line)
	}
	s.SetAttr(screen.AttrNormal)
}

// drawGraph draws the live CPU plot with the latest reading under it. The
// frame shrinks to fit small terminals. After a sampling failure the last
// frame stays up with the error beneath.
func drawGraph(s screen.Surface, g *liveGraph) {
	height, width := s.Size()

	var errLines []string
	if g.err != nil {
		for i, line := range errors.Lines(g.err) {
			if i == 0 {
				line = "✗ " + line
			} else {
				line = "  " + line
			}
			errLines = append(errLines, line)
		}
		errLines = append(errLines, "", "Press q or esc to return to menu...")
	}

	// title, the reading line below the frame, and any error block
	reserved := 3
	if len(errLines) > 0 {
		reserved += len(errLines) + 1
	}
	graph := Graph{
		Width:  min(DefaultGraphWidth, width),
		Height: min(DefaultGraphHeight, height-reserved),
		XLabel: GraphXLabel,
		YLabel: GraphYLabel,
	}

	s.SetAttr(screen.AttrTitle)
	s.WriteAt(0, 0, "Live CPU usage (q/esc to return)")

	top := 1
	firstPlot, lastPlot := graph.PlotRows()
	rendered := graph.Render(g.series.Points())
	if rendered != "" {
		for i, line := range strings.Split(rendered, "\n") {
			row := top + i
			cells := []rune(line)
			if i < firstPlot || i > lastPlot || len(cells) < GraphGutter {
				s.SetAttr(screen.AttrNormal)
				s.WriteAt(row, 0, line)
				continue
			}
			s.SetAttr(screen.AttrNormal)
			s.WriteAt(row, 0, string(cells[:GraphGutter]))
			s.SetAttr(screen.AttrGraph)
			s.WriteAt(row, GraphGutter, string(cells[GraphGutter:]))
		}
	}

	row := top + max(graph.Height, 0) + 1
	if latest, ok := g.series.Latest(); ok {
		s.SetAttr(screen.AttrNormal)
		s.WriteAt(row, 0, fmt.Sprintf("Current CPU usage: %.1f %%", latest.Value))
	} else if g.err == nil {
		s.SetAttr(screen.AttrMuted)
		s.WriteAt(row, 0, "Waiting for first sample...")
	}

	row += 2
	for i, line := range errLines {
		if i < len(errLines)-1 {
			s.SetAttr(screen.AttrError)
		} else {
			s.SetAttr(screen.AttrMuted)
		}
		s.WriteAt(row+i, 0, line)
	}
	s.SetAttr(screen.AttrNormal)
}
