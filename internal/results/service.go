package results

import (
	"context"
	"log"
	"time"

	"placegrip/internal/domain"
	"placegrip/internal/eventbus"
	"placegrip/internal/search"
)

// Result is the outcome of one Fetch
type Result struct {
	Source string
	Places []domain.Place
	Err    error
	Took   time.Duration
}

// Service loads result sets and hands them to the search store.
//
// Fetch may run on any goroutine. Apply mutates the store and publishes on
// the bus, so it must run on the goroutine that owns both.
type Service struct {
	store *search.Store
	bus   eventbus.EventBus
}

// NewService creates a results service
func NewService(store *search.Store, bus eventbus.EventBus) *Service {
	return &Service{store: store, bus: bus}
}

// Fetch runs src and captures its outcome
func (s *Service) Fetch(ctx context.Context, src Source) Result {
	start := time.Now()
	places, err := src.Load(ctx)
	res := Result{Source: src.Name(), Places: places, Err: err, Took: time.Since(start)}
	if err != nil {
		log.Printf("Loading results from %s failed: %v", res.Source, err)
	} else {
		log.Printf("Loaded %d places from %s in %v", len(places), res.Source, res.Took)
	}
	return res
}

// Apply replaces the store's results with a successful Result. A failed
// Result leaves the current results in place.
func (s *Service) Apply(res Result) {
	if res.Err != nil {
		s.publish(eventbus.ResultsFailedEvent{Source: res.Source, Err: res.Err})
		return
	}
	s.store.ReplaceResults(res.Places)
	s.publish(eventbus.ResultsLoadedEvent{Source: res.Source, Places: res.Places})
}

// Load fetches and applies in one step
func (s *Service) Load(ctx context.Context, src Source) error {
	res := s.Fetch(ctx, src)
	s.Apply(res)
	return res.Err
}

func (s *Service) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
