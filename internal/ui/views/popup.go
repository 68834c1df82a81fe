package views

import (
	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer draws a modal box in the middle of the screen. It is used
// when the external pager cannot take over the terminal.
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopup centers content in a width x height area
func (pr *PopupRenderer) RenderPopup(content string, width, height int) string {
	boxWidth := min(max(width-6, 20), 80)
	styled := pr.styles.InfoBox.Width(boxWidth).MaxHeight(max(height-2, 3)).Render(content)
	hint := pr.styles.Help.Render("esc to close")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, styled, hint))
}
