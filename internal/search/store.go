// Package search owns the canonical search session: results, selection,
// query and filter intent. It is the only writer of that state.
package search

import (
	"log"
	"reflect"
	"runtime/debug"

	"placegrip/internal/domain"
)

// Observer receives the state after every change
type Observer func(State)

// Token identifies an observer registration
type Token uint64

type mutation struct {
	name  string
	apply func(*State) bool
}

// Store holds the search state and notifies observers synchronously.
//
// Store is not safe for concurrent use: every call must come from the UI
// goroutine. A mutation requested by an observer while a notification is in
// progress is queued and applied, in order, once the current cycle is done.
type Store struct {
	state     State
	observers map[Token]Observer
	order     []Token
	nextToken Token
	busy      bool
	pending   []mutation
}

// NewStore creates a store seeded with initial. The selection is dropped if
// it does not reference one of the initial places.
func NewStore(initial State) *Store {
	st := initial
	st.Places = copyPlaces(initial.Places)
	st.index = buildIndex(st.Places)
	st.SelectedID = copyID(initial.SelectedID)
	st.RatingFilter = copyFloat(initial.RatingFilter)
	if st.SelectedID != nil {
		if _, ok := st.index[*st.SelectedID]; !ok {
			st.SelectedID = nil
		}
	}

	return &Store{
		state:     st,
		observers: make(map[Token]Observer),
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	return s.state.clone()
}

// Subscribe registers an observer and returns its token
func (s *Store) Subscribe(obs Observer) Token {
	s.nextToken++
	token := s.nextToken
	s.observers[token] = obs
	s.order = append(s.order, token)
	return token
}

// Unsubscribe removes an observer. Unknown tokens are ignored.
func (s *Store) Unsubscribe(token Token) {
	if _, ok := s.observers[token]; !ok {
		return
	}
	delete(s.observers, token)
	for i, t := range s.order {
		if t == token {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// SelectPlace sets the selection; nil clears it. An id that is not among
// the current results is rejected without changing anything.
func (s *Store) SelectPlace(id *domain.PlaceID) {
	want := copyID(id)
	s.mutate(mutation{name: "SelectPlace", apply: func(st *State) bool {
		if want != nil {
			if _, ok := st.index[*want]; !ok {
				log.Printf("Store: rejected selection of unknown place %q", *want)
				return false
			}
		}
		if sameID(st.SelectedID, want) {
			return false
		}
		st.SelectedID = want
		return true
	}})
}

// ClearSelection is SelectPlace(nil)
func (s *Store) ClearSelection() {
	s.SelectPlace(nil)
}

// SetRatingFilter records the minimum rating the user asked for.
// Results are not filtered here; the result source returns filtered sets.
// A value off the rating scale, NaN included, is rejected without a change.
func (s *Store) SetRatingFilter(minRating *float64) {
	want := copyFloat(minRating)
	s.mutate(mutation{name: "SetRatingFilter", apply: func(st *State) bool {
		if want != nil && !domain.ValidRating(*want) {
			log.Printf("Store: rejected rating filter %v", *want)
			return false
		}
		if sameFilter(st.RatingFilter, want) {
			return false
		}
		st.RatingFilter = want
		return true
	}})
}

// SetQuery replaces the query text and location label
func (s *Store) SetQuery(query, locationLabel string) {
	s.mutate(mutation{name: "SetQuery", apply: func(st *State) bool {
		if st.Query == query && st.LocationLabel == locationLabel {
			return false
		}
		st.Query = query
		st.LocationLabel = locationLabel
		return true
	}})
}

// ReplaceResults swaps in a new result sequence. A selection that no longer
// resolves is cleared in the same update.
func (s *Store) ReplaceResults(places []domain.Place) {
	next := copyPlaces(places)
	s.mutate(mutation{name: "ReplaceResults", apply: func(st *State) bool {
		if reflect.DeepEqual(st.Places, next) {
			return false
		}
		st.Places = next
		st.index = buildIndex(next)
		if st.SelectedID != nil {
			if _, ok := st.index[*st.SelectedID]; !ok {
				st.SelectedID = nil
			}
		}
		return true
	}})
}

// mutate applies m and notifies, or queues m when called from an observer
func (s *Store) mutate(m mutation) {
	if s.busy {
		log.Printf("Store: queued %s issued during notification", m.name)
		s.pending = append(s.pending, m)
		return
	}

	s.busy = true
	defer func() { s.busy = false }()

	s.apply(m)
	for len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.apply(next)
	}
}

func (s *Store) apply(m mutation) {
	next := s.state
	if !m.apply(&next) {
		return
	}
	s.state = next
	s.notify(next)
}

// notify calls a snapshot of the registered observers
func (s *Store) notify(st State) {
	observers := make([]Observer, 0, len(s.order))
	for _, token := range s.order {
		observers = append(observers, s.observers[token])
	}

	for _, obs := range observers {
		s.call(obs, st.clone())
	}
}

func (s *Store) call(obs Observer, st State) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Store observer panic: %v\nStack: %s", r, debug.Stack())
		}
	}()
	obs(st)
}

func copyPlaces(places []domain.Place) []domain.Place {
	out := make([]domain.Place, len(places))
	copy(out, places)
	return out
}

func copyID(id *domain.PlaceID) *domain.PlaceID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
