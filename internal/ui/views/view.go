package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Query         string
	LocationLabel string
	RatingFilter  *float64
	Loading       bool
	Map           MapState
	Panel         PanelState
	StatusMessage string
	StatusIsError bool
	Prompt        string // filter input, replaces the status line while active
	HelpLine      string
	Popup         string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	mapRender   *MapRenderer
	panelRender *PanelRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		mapRender:   NewMapRenderer(styles),
		panelRender: NewPanelRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	if state.Popup != "" {
		return r.popupRender.RenderPopup(state.Popup, state.Width, state.Height)
	}

	sections := []string{
		r.header(state),
		r.mapRender.Render(state.Map),
		r.panelRender.Render(state.Panel),
		r.statusLine(state),
		r.styles.Help.Render(state.HelpLine),
	}
	return lipgloss.NewStyle().MaxHeight(state.Height).Render(strings.Join(sections, "\n"))
}

func (r *Renderer) header(state ViewState) string {
	left := r.styles.Title.Render("placegrip")
	if search := searchLabel(state.Query, state.LocationLabel); search != "" {
		left += "  " + search
	}

	var right []string
	if state.Loading {
		right = append(right, r.styles.Dim.Render("Loading..."))
	}
	if state.RatingFilter != nil {
		right = append(right, r.styles.Filter.Render(fmt.Sprintf("[min %s]", FormatRating(*state.RatingFilter))))
	}
	if len(right) == 0 {
		return left
	}

	rightContent := strings.Join(right, "  ")
	padding := state.Width - lipgloss.Width(left) - lipgloss.Width(rightContent)
	if padding < 2 {
		padding = 2
	}
	return left + strings.Repeat(" ", padding) + rightContent
}

func (r *Renderer) statusLine(state ViewState) string {
	if state.Prompt != "" {
		return state.Prompt
	}
	if state.StatusIsError {
		return r.styles.StatusError.Render(Truncate(state.StatusMessage, state.Width))
	}
	return r.styles.Status.Render(Truncate(state.StatusMessage, state.Width))
}

func searchLabel(query, location string) string {
	switch {
	case query != "" && location != "":
		return query + " in " + location
	case query != "":
		return query
	default:
		return location
	}
}
