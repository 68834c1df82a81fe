// Package panel decides what the bottom panel shows for a given expansion
// level and search state.
package panel

import (
	"placegrip/internal/domain"
	"placegrip/internal/search"
)

// Kind names a panel mode variant
type Kind int

const (
	KindSummary Kind = iota
	KindPreview
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindPreview:
		return "preview"
	case KindList:
		return "list"
	default:
		return "summary"
	}
}

// Mode is the content the panel renders. Exactly one of Summary, Preview
// and List implements it.
type Mode interface {
	Kind() Kind
	Title() string
}

// Summary is the collapsed one-line view
type Summary struct {
	TitleText string
}

func (m Summary) Kind() Kind { return KindSummary }
func (m Summary) Title() string { return m.TitleText }

// Preview shows the results with one of them highlighted
type Preview struct {
	Places    []domain.Place
	Selected  domain.Place
	TitleText string
}

func (m Preview) Kind() Kind { return KindPreview }
func (m Preview) Title() string { return m.TitleText }

// List shows every result without a selection
type List struct {
	Places    []domain.Place
	TitleText string
}

func (m List) Kind() Kind { return KindList }
func (m List) Title() string { return m.TitleText }

// Items returns the rows a mode displays, in order
func Items(m Mode) []domain.Place {
	switch v := m.(type) {
	case Preview:
		return v.Places
	case List:
		return v.Places
	default:
		return nil
	}
}

// Resolve maps an expansion level and a state to the mode to display.
// An unknown level is treated as Collapsed.
func Resolve(expansion ExpansionLevel, state search.State) Mode {
	title := state.Title()
	if expansion == Collapsed || !expansion.Valid() {
		return Summary{TitleText: title}
	}
	if selected, ok := state.SelectedPlace(); ok {
		return Preview{Places: state.Places, Selected: selected, TitleText: title}
	}
	return List{Places: state.Places, TitleText: title}
}
