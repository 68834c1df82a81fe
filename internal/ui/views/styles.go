package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Dim         lipgloss.Style
	Filter      lipgloss.Style
	MapBox      lipgloss.Style
	MapBoxFocus lipgloss.Style
	Pin         lipgloss.Style
	PinSelected lipgloss.Style
	Cursor      lipgloss.Style
	PanelRule   lipgloss.Style
	PanelTitle  lipgloss.Style
	Name        lipgloss.Style
	Rating      lipgloss.Style
	Open        lipgloss.Style
	Closed      lipgloss.Style
	Review      lipgloss.Style
	SelectionBg lipgloss.Style
	InfoBox     lipgloss.Style
	Help        lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241"))
	return &Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Filter:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		MapBox:      box,
		MapBoxFocus: box.BorderForeground(lipgloss.Color("39")),
		Pin:         lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		PinSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		PanelRule:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		PanelTitle:  lipgloss.NewStyle().Bold(true),
		Name:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Rating:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Open:        lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Closed:      lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Review:      lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Help:        lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}
