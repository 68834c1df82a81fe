package views

import (
	"fmt"
	"strings"

	"placegrip/internal/domain"
	"placegrip/internal/panel"
)

// minPreviewRows is how many list rows Preview keeps under the card
const minPreviewRows = 2

// PanelState is what the panel renderer needs for one frame
type PanelState struct {
	Mode         panel.Mode
	Expansion    panel.ExpansionLevel
	Cursor       int
	Width        int
	Height       int
	ShowDistance bool
	Focused      bool
}

// PanelRenderer draws the bottom panel
type PanelRenderer struct {
	styles *Styles
}

// NewPanelRenderer creates a panel renderer
func NewPanelRenderer(styles *Styles) *PanelRenderer {
	return &PanelRenderer{styles: styles}
}

// Render returns exactly state.Height lines
func (r *PanelRenderer) Render(state PanelState) string {
	if state.Height <= 0 {
		return ""
	}
	lines := []string{r.rule(state)}

	switch m := state.Mode.(type) {
	case panel.Summary:
		lines = append(lines, r.styles.PanelTitle.Render(m.Title())+r.styles.Dim.Render("  K to expand"))
	case panel.Preview:
		lines = append(lines, r.styles.PanelTitle.Render(m.Title()))
		reserve := 0
		if len(m.Places) > 1 {
			reserve = min(minPreviewRows, len(m.Places))
		}
		// The card gives up its trailing lines (photos, then review) to the list
		card := r.card(m.Selected, state)
		lines = append(lines, card[:min(len(card), max(state.Height-len(lines)-reserve, 1))]...)
		if reserve > 0 {
			room := state.Height - len(lines)
			if room > reserve {
				lines = append(lines, "")
				room--
			}
			lines = append(lines, r.rows(m.Places, m.Selected.ID, room, state)...)
		}
	case panel.List:
		lines = append(lines, r.styles.PanelTitle.Render(m.Title()))
		if len(m.Places) == 0 {
			lines = append(lines, r.styles.Dim.Render("No results"))
		} else {
			lines = append(lines, r.rows(m.Places, "", state.Height-len(lines), state)...)
		}
	default:
		lines = append(lines, r.styles.Dim.Render("Loading..."))
	}

	if len(lines) > state.Height {
		lines = lines[:state.Height]
	}
	for len(lines) < state.Height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (r *PanelRenderer) rule(state PanelState) string {
	label := " " + state.Expansion.String() + " "
	if state.Focused {
		label = " " + state.Expansion.String() + " ● "
	}
	fill := max(state.Width-len([]rune(label))-2, 0)
	return r.styles.PanelRule.Render("──" + label + strings.Repeat("─", fill))
}

// card describes a single place
func (r *PanelRenderer) card(p domain.Place, state PanelState) []string {
	w := state.Width
	lines := []string{
		r.styles.Name.Render(Truncate(p.Name, w)),
		r.styles.Rating.Render(FormatRating(p.Rating)) + "  " + Truncate(FormatKind(p), max(w-9, 0)),
	}

	opening := r.styles.Closed.Render(FormatOpening(p))
	if p.IsOpenNow {
		opening = r.styles.Open.Render(FormatOpening(p))
	}
	if d := FormatDistance(p.DistanceMeters); state.ShowDistance && d != "" {
		opening += r.styles.Dim.Render("  " + d)
	}
	lines = append(lines, opening)

	if p.Review != "" {
		lines = append(lines, r.styles.Review.Render(Truncate(p.Review, w)))
	}
	if photos := FormatPhotos(len(p.ImageURLs)); photos != "" {
		lines = append(lines, r.styles.Dim.Render(photos+"  i for details"))
	}
	return lines
}

// rows renders a scrolling window of places that keeps the cursor visible
func (r *PanelRenderer) rows(places []domain.Place, selected domain.PlaceID, room int, state PanelState) []string {
	if room <= 0 {
		return nil
	}
	cursor := min(max(state.Cursor, 0), len(places)-1)
	offset := 0
	if cursor >= room {
		offset = cursor - room + 1
	}
	end := min(offset+room, len(places))

	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		lines = append(lines, r.row(places[i], i == cursor, places[i].ID == selected, state))
	}
	return lines
}

func (r *PanelRenderer) row(p domain.Place, atCursor, selected bool, state PanelState) string {
	marker := "  "
	switch {
	case atCursor && state.Focused:
		marker = "▸ "
	case selected:
		marker = "› "
	}

	suffix := fmt.Sprintf("  %s", FormatRating(p.Rating))
	if d := FormatDistance(p.DistanceMeters); state.ShowDistance && d != "" {
		suffix += "  " + d
	}
	nameWidth := max(state.Width-len([]rune(marker))-len([]rune(suffix)), 1)
	text := marker + Truncate(p.Name, nameWidth) + suffix

	if atCursor && state.Focused {
		return r.styles.SelectionBg.Render(text)
	}
	if selected {
		return r.styles.PinSelected.Render(text)
	}
	return text
}
