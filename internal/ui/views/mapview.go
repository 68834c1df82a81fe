package views

import (
	"strconv"
	"strings"

	"placegrip/internal/domain"
	"placegrip/internal/ui/coordinator"
)

// MapState is what the map renderer needs for one frame
type MapState struct {
	Grid        Grid
	Annotations []coordinator.Annotation
	Highlighted domain.PlaceID
	CursorCol   int
	CursorRow   int
	Focused     bool
}

const (
	glyphEmpty    = "·"
	glyphPin      = "●"
	glyphSelected = "◉"
	glyphCursor   = "+"
)

type cell struct {
	count    int
	selected bool
}

// MapRenderer draws pins on a character grid
type MapRenderer struct {
	styles *Styles
}

// NewMapRenderer creates a map renderer
func NewMapRenderer(styles *Styles) *MapRenderer {
	return &MapRenderer{styles: styles}
}

// Render draws the grid inside a border
func (r *MapRenderer) Render(state MapState) string {
	box := r.styles.MapBox
	if state.Focused {
		box = r.styles.MapBoxFocus
	}
	return box.Render(r.renderGrid(state))
}

func (r *MapRenderer) renderGrid(state MapState) string {
	g := state.Grid
	if g.Width <= 0 || g.Height <= 0 {
		return ""
	}
	if !g.Region.HasSpan() {
		lines := make([]string, g.Height)
		for i := range lines {
			lines[i] = strings.Repeat(" ", g.Width)
		}
		lines[g.Height/2] = Truncate(centerText("Waiting for results...", g.Width), g.Width)
		return r.styles.Dim.Render(strings.Join(lines, "\n"))
	}

	cells := make(map[[2]int]*cell)
	for _, a := range state.Annotations {
		col, row, ok := g.Project(a.Coordinate)
		if !ok {
			continue
		}
		k := [2]int{col, row}
		c := cells[k]
		if c == nil {
			c = &cell{}
			cells[k] = c
		}
		c.count++
		if a.Selected || (state.Highlighted != "" && a.ID == state.Highlighted) {
			c.selected = true
		}
	}

	var b strings.Builder
	for row := 0; row < g.Height; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < g.Width; col++ {
			b.WriteString(r.renderCell(cells[[2]int{col, row}], state.Focused && col == state.CursorCol && row == state.CursorRow))
		}
	}
	return b.String()
}

func (r *MapRenderer) renderCell(c *cell, cursor bool) string {
	if c == nil {
		if cursor {
			return r.styles.Cursor.Render(glyphCursor)
		}
		return r.styles.Dim.Render(glyphEmpty)
	}

	glyph, style := glyphPin, r.styles.Pin
	if c.count > 1 {
		glyph = clusterGlyph(c.count)
	}
	if c.selected {
		style = r.styles.PinSelected
		if c.count == 1 {
			glyph = glyphSelected
		}
	}
	if cursor {
		style = style.Reverse(true)
	}
	return style.Render(glyph)
}

func clusterGlyph(n int) string {
	if n > 9 {
		return "*"
	}
	return strconv.Itoa(n)
}

func centerText(s string, width int) string {
	pad := (width - len([]rune(s))) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
