package coordinator

import (
	"log"

	"placegrip/internal/domain"
	"placegrip/internal/eventbus"
	"placegrip/internal/geometry"
	"placegrip/internal/panel"
	"placegrip/internal/search"
)

// Annotation is one pin on the map. Annotations are rebuilt from scratch on
// every state change; that is fine for result sets of a few hundred places
// but would need diffing for larger ones.
type Annotation struct {
	ID         domain.PlaceID
	Title      string
	Coordinate domain.Coordinate
	Rating     float64
	Selected   bool
}

// MapSurface is the map the coordinator draws on
type MapSurface interface {
	SetAnnotations(annotations []Annotation)
	// Region returns the live camera; false if it was never set
	Region() (domain.Region, bool)
	SetRegion(region domain.Region, animated bool)
	SetCenter(center domain.Coordinate)
	SelectAnnotation(id domain.PlaceID)
}

// PanelSurface is the bottom panel the coordinator fills
type PanelSurface interface {
	SetMode(mode panel.Mode)
	SetExpansion(level panel.ExpansionLevel)
}

// Options configures a Coordinator
type Options struct {
	Fit              geometry.FitOptions
	InitialExpansion panel.ExpansionLevel
}

// DefaultOptions returns the standard fitter and a collapsed panel
func DefaultOptions() Options {
	return Options{
		Fit:              geometry.DefaultFitOptions(),
		InitialExpansion: panel.Collapsed,
	}
}

// Coordinator keeps the map and the panel in step with the search store and
// turns user gestures into store mutations. It is the only component with
// side effects on the surfaces and must be driven from the UI goroutine.
type Coordinator struct {
	store     *search.Store
	mapView   MapSurface
	panelView PanelSurface
	bus       eventbus.EventBus
	fit       geometry.FitOptions

	expansion    panel.ExpansionLevel
	mode         panel.Mode
	annotations  []Annotation
	lastSelected *domain.PlaceID

	attached     bool
	token        search.Token
	firstApplied bool
	rowTap       bool // set while a list-row selection is being applied
}

// NewCoordinator creates a coordinator. Call Attach to start syncing.
func NewCoordinator(store *search.Store, mapView MapSurface, panelView PanelSurface, bus eventbus.EventBus, opts Options) *Coordinator {
	expansion := opts.InitialExpansion
	if !expansion.Valid() {
		expansion = panel.Collapsed
	}
	return &Coordinator{
		store:     store,
		mapView:   mapView,
		panelView: panelView,
		bus:       bus,
		fit:       opts.Fit,
		expansion: expansion,
	}
}

// Attach subscribes to the store and applies the current state right away.
// The first state applied after Attach frames the camera.
func (c *Coordinator) Attach() {
	if c.attached {
		return
	}
	c.attached = true
	c.firstApplied = false
	c.lastSelected = nil
	c.token = c.store.Subscribe(c.apply)

	c.panelView.SetExpansion(c.expansion)
	c.apply(c.store.State())
}

// Detach stops listening to the store
func (c *Coordinator) Detach() {
	if !c.attached {
		return
	}
	c.store.Unsubscribe(c.token)
	c.attached = false
}

// Expansion returns the last known expansion level
func (c *Coordinator) Expansion() panel.ExpansionLevel {
	return c.expansion
}

// Mode returns the mode last pushed to the panel
func (c *Coordinator) Mode() panel.Mode {
	return c.mode
}

// Annotations returns the annotations last pushed to the map
func (c *Coordinator) Annotations() []Annotation {
	return c.annotations
}

// PinTapped handles a tap on a map pin. The pin is already on screen, so
// the camera stays where it is. Tapping the selected pin again while the
// panel is collapsed surfaces it, since the store sees no change.
func (c *Coordinator) PinTapped(id domain.PlaceID) {
	state := c.store.State()
	if state.SelectedID != nil && *state.SelectedID == id && c.expansion == panel.Collapsed {
		c.setExpansion(panel.Mid, true)
		c.pushMode(state)
		return
	}
	c.store.SelectPlace(&id)
}

// RowTapped handles a tap on a panel row. Selecting from the list moves the
// camera onto the place and highlights its pin.
func (c *Coordinator) RowTapped(id domain.PlaceID) {
	c.rowTap = true
	c.store.SelectPlace(&id)
	c.rowTap = false

	p, ok := c.store.State().Place(id)
	if !ok {
		return
	}
	c.mapView.SetCenter(p.Coordinate)
	c.mapView.SelectAnnotation(id)
}

// ClearSelection drops the current selection
func (c *Coordinator) ClearSelection() {
	c.store.ClearSelection()
}

// ExpansionChanged records a new panel level chosen by the user and
// re-resolves the panel. It never touches the selection.
func (c *Coordinator) ExpansionChanged(level panel.ExpansionLevel) {
	if !level.Valid() {
		log.Printf("Coordinator: unknown expansion level %d, using collapsed", int(level))
		level = panel.Collapsed
	}
	if level == c.expansion {
		return
	}
	c.setExpansion(level, false)
	c.pushMode(c.store.State())
}

// Refit frames the camera around the current results on request.
// The automatic policy in apply is unaffected.
func (c *Coordinator) Refit() bool {
	return c.fitCamera(c.store.State(), true)
}

// apply reconciles the surfaces with a new state
func (c *Coordinator) apply(state search.State) {
	c.annotations = buildAnnotations(state)
	c.mapView.SetAnnotations(c.annotations)

	selected, hasSelected := state.SelectedPlace()
	selectionChanged := !sameSelection(c.lastSelected, state.SelectedID)
	if selectionChanged && hasSelected && c.expansion == panel.Collapsed {
		// A new selection always surfaces its details
		c.setExpansion(panel.Mid, true)
	}
	c.pushMode(state)
	if selectionChanged && hasSelected {
		c.publish(eventbus.SelectionSurfacedEvent{ID: selected.ID, FromList: c.rowTap, Recentered: c.rowTap})
	}
	c.lastSelected = copyID(state.SelectedID)

	// Fit on the first application, or while the camera was never placed.
	// Later result changes leave the camera where the user put it.
	region, ok := c.mapView.Region()
	if !c.firstApplied || !ok || !region.HasSpan() {
		c.fitCamera(state, c.firstApplied)
		c.firstApplied = true
	}
}

func (c *Coordinator) pushMode(state search.State) {
	c.mode = panel.Resolve(c.expansion, state)
	c.panelView.SetMode(c.mode)
}

func (c *Coordinator) setExpansion(level panel.ExpansionLevel, forced bool) {
	from := c.expansion
	c.expansion = level
	c.panelView.SetExpansion(level)
	c.publish(eventbus.ExpansionChangedEvent{From: from.String(), To: level.String(), Forced: forced})
}

func (c *Coordinator) fitCamera(state search.State, animated bool) bool {
	region, ok := c.fit.Fit(geometry.Coordinates(state.Places))
	if !ok {
		return false
	}
	c.mapView.SetRegion(region, animated)
	c.publish(eventbus.CameraFittedEvent{Region: region, Places: state.Count()})
	return true
}

func (c *Coordinator) publish(event eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

func buildAnnotations(state search.State) []Annotation {
	annotations := make([]Annotation, 0, len(state.Places))
	for _, p := range state.Places {
		annotations = append(annotations, Annotation{
			ID:         p.ID,
			Title:      p.Name,
			Coordinate: p.Coordinate,
			Rating:     p.Rating,
			Selected:   state.SelectedID != nil && *state.SelectedID == p.ID,
		})
	}
	return annotations
}

func sameSelection(a, b *domain.PlaceID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyID(id *domain.PlaceID) *domain.PlaceID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
