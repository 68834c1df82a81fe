package search

import (
	"fmt"

	"placegrip/internal/domain"
)

// DefaultTitleNoun is used in the title when none is configured
const DefaultTitleNoun = "places"

// State is a snapshot of the search session. Every snapshot carries its own
// SelectedID and RatingFilter, so writing through them never reaches the
// store. Places and the index are shared and must be treated as read-only.
type State struct {
	Query         string
	LocationLabel string
	Places        []domain.Place
	SelectedID    *domain.PlaceID
	RatingFilter  *float64
	TitleNoun     string

	// index maps a place id to its position in Places.
	// It is rebuilt together with Places and shared by snapshots.
	index map[domain.PlaceID]int
}

// clone detaches the pointer fields from the receiver
func (s State) clone() State {
	s.SelectedID = copyID(s.SelectedID)
	s.RatingFilter = copyFloat(s.RatingFilter)
	return s
}

// Count returns the number of results
func (s State) Count() int {
	return len(s.Places)
}

// Title returns the summary line shown by the panel
func (s State) Title() string {
	noun := s.TitleNoun
	if noun == "" {
		noun = DefaultTitleNoun
	}
	return fmt.Sprintf("Over %d %s", len(s.Places), noun)
}

// Place looks up a place by id
func (s State) Place(id domain.PlaceID) (domain.Place, bool) {
	i, ok := s.index[id]
	if !ok {
		return domain.Place{}, false
	}
	return s.Places[i], true
}

// IndexOf returns the display position of a place, or -1
func (s State) IndexOf(id domain.PlaceID) int {
	if i, ok := s.index[id]; ok {
		return i
	}
	return -1
}

// SelectedPlace resolves the selection. It returns false when nothing is
// selected or the selected id is not among the results.
func (s State) SelectedPlace() (domain.Place, bool) {
	if s.SelectedID == nil {
		return domain.Place{}, false
	}
	return s.Place(*s.SelectedID)
}

// HasSelection reports whether a selection is set
func (s State) HasSelection() bool {
	return s.SelectedID != nil
}

func buildIndex(places []domain.Place) map[domain.PlaceID]int {
	index := make(map[domain.PlaceID]int, len(places))
	for i, p := range places {
		if _, dup := index[p.ID]; !dup {
			index[p.ID] = i
		}
	}
	return index
}

func sameID(a, b *domain.PlaceID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func sameFilter(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
