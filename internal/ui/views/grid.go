package views

import (
	"math"

	"placegrip/internal/domain"
	"placegrip/internal/panel"
)

// Grid maps a camera region onto a block of terminal cells.
// Row 0 is the north edge, column 0 the west edge.
type Grid struct {
	Width  int
	Height int
	Region domain.Region
}

// Usable reports whether the grid can project anything
func (g Grid) Usable() bool {
	return g.Width > 0 && g.Height > 0 && g.Region.HasSpan()
}

// Project returns the cell showing c, or false when c is off screen
func (g Grid) Project(c domain.Coordinate) (col, row int, ok bool) {
	if !g.Usable() || !g.Region.Contains(c) {
		return 0, 0, false
	}
	sw, ne := g.Region.Bounds()
	fx := (c.Longitude - sw.Longitude) / g.Region.Span.LongitudeDelta
	fy := (ne.Latitude - c.Latitude) / g.Region.Span.LatitudeDelta
	col = int(math.Round(fx * float64(steps(g.Width))))
	row = int(math.Round(fy * float64(steps(g.Height))))
	return col, row, true
}

// Unproject returns the coordinate at the center of a cell
func (g Grid) Unproject(col, row int) domain.Coordinate {
	sw, ne := g.Region.Bounds()
	return domain.Coordinate{
		Latitude:  ne.Latitude - float64(row)/float64(steps(g.Height))*g.Region.Span.LatitudeDelta,
		Longitude: sw.Longitude + float64(col)/float64(steps(g.Width))*g.Region.Span.LongitudeDelta,
	}
}

// CellSpan is the extent of one cell in degrees
func (g Grid) CellSpan() (lat, lon float64) {
	return g.Region.Span.LatitudeDelta / float64(steps(g.Height)),
		g.Region.Span.LongitudeDelta / float64(steps(g.Width))
}

func steps(n int) int {
	return max(n-1, 1)
}

// Layout splits the terminal between the map and the panel
type Layout struct {
	GridWidth   int // map cells inside the border
	GridHeight  int
	PanelHeight int
}

const (
	chromeLines    = 3 // header, status, help
	mapBorder      = 2
	collapsedLines = 2
	minGridRows    = 3
	minMidLines    = 5 // rule, title, one card line, two rows
)

// ComputeLayout sizes the surfaces for a terminal and an expansion level
func ComputeLayout(width, height int, level panel.ExpansionLevel, midRatio float64) Layout {
	body := max(height-chromeLines, mapBorder+1+collapsedLines)
	maxPanel := body - mapBorder - 1

	var panelHeight int
	switch level {
	case panel.Mid:
		panelHeight = max(minMidLines, int(float64(body)*midRatio))
	case panel.Full:
		panelHeight = body - mapBorder - minGridRows
	default:
		panelHeight = collapsedLines
	}
	panelHeight = max(min(panelHeight, maxPanel), collapsedLines)

	return Layout{
		GridWidth:   max(width-mapBorder, 1),
		GridHeight:  max(body-panelHeight-mapBorder, 1),
		PanelHeight: panelHeight,
	}
}
