package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"placegrip/internal/domain"
	"placegrip/internal/ui/views"
)

var errNoProgram = errors.New("program not set")

// PagerOps shows long content in the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// Show hands the terminal to ov until the user quits it
func (p *PagerOps) Show(content string) error {
	if p == nil || p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

var (
	pagerTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	pagerSection = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)
	pagerKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	pagerText    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)

// renderHelpContent lists the key bindings by area
func renderHelpContent(keys KeyMap) string {
	var b strings.Builder
	b.WriteString(pagerTitle.Render("placegrip Help"))
	b.WriteString("\n")

	sections := []struct {
		name  string
		lines [][2]string
	}{
		{"Map", [][2]string{
			{keys.Up.Help().Key + " " + keys.Down.Help().Key, "Move cursor up/down"},
			{keys.Left.Help().Key + " " + keys.Right.Help().Key, "Move cursor left/right"},
			{"+ / -", "Zoom in/out"},
			{"enter", "Select the pin under the cursor"},
			{keys.Refit.Help().Key, "Frame all results"},
		}},
		{"Panel", [][2]string{
			{keys.Up.Help().Key + " " + keys.Down.Help().Key, "Move between rows"},
			{"enter", "Select row and center the map on it"},
			{"K / shift+up", "Raise panel"},
			{"J / shift+down", "Lower panel"},
		}},
		{"Results", [][2]string{
			{keys.Filter.Help().Key, "Set minimum rating"},
			{keys.Clear.Help().Key, "Clear selection"},
			{keys.Details.Help().Key, "Show place details"},
			{keys.Reload.Help().Key, "Reload results"},
		}},
		{"Other", [][2]string{
			{keys.Focus.Help().Key, "Switch between map and panel"},
			{keys.Help.Help().Key, "Show this help"},
			{keys.Quit.Help().Key, "Quit"},
		}},
	}

	for _, s := range sections {
		b.WriteString(pagerSection.Render(s.name))
		b.WriteString("\n")
		for _, l := range s.lines {
			b.WriteString(fmt.Sprintf("  %-16s %s\n", pagerKey.Render(l[0]), pagerText.Render(l[1])))
		}
	}
	return b.String()
}

// renderPlaceDetails describes one place in full
func renderPlaceDetails(p domain.Place) string {
	var b strings.Builder
	b.WriteString(pagerTitle.Render(p.Name))
	b.WriteString("\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(fmt.Sprintf("  %-10s %s\n", pagerKey.Render(label), pagerText.Render(value)))
	}
	field("Rating", views.FormatRating(p.Rating))
	field("Kind", views.FormatKind(p))
	field("Hours", views.FormatOpening(p))
	field("Distance", views.FormatDistance(p.DistanceMeters))
	field("Location", fmt.Sprintf("%.4f, %.4f", p.Coordinate.Latitude, p.Coordinate.Longitude))

	if p.Review != "" {
		b.WriteString(pagerSection.Render("Review"))
		b.WriteString("\n  ")
		b.WriteString(p.Review)
		b.WriteString("\n")
		if p.ReviewerImageURL != "" {
			b.WriteString("  " + p.ReviewerImageURL + "\n")
		}
	}
	if len(p.ImageURLs) > 0 {
		b.WriteString(pagerSection.Render(views.FormatPhotos(len(p.ImageURLs))))
		b.WriteString("\n")
		for _, u := range p.ImageURLs {
			b.WriteString("  " + u + "\n")
		}
	}
	return b.String()
}
