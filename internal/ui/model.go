package ui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"placegrip/internal/config"
	"placegrip/internal/domain"
	"placegrip/internal/eventbus"
	"placegrip/internal/geometry"
	"placegrip/internal/panel"
	"placegrip/internal/results"
	"placegrip/internal/search"
	"placegrip/internal/ui/coordinator"
	"placegrip/internal/ui/views"
)

const (
	defaultMidPanelRatio = 0.4
	zoomStep             = 2.0
	panStep              = 0.25 // fraction of the span moved when the cursor hits an edge
)

type focusArea int

const (
	focusMap focusArea = iota
	focusPanel
)

// Options wires a Model to the rest of the program
type Options struct {
	Config  *config.Config
	Bus     eventbus.EventBus
	Store   *search.Store
	Results *results.Service
	Source  results.Source
}

// Model represents the UI state
type Model struct {
	ctx     context.Context
	cfg     *config.Config
	bus     eventbus.EventBus
	store   *search.Store
	coord   *coordinator.Coordinator
	results *results.Service
	source  results.Source

	mapView     *mapSurface
	panelView   *panelSurface
	renderer    *views.Renderer
	keys        KeyMap
	help        help.Model
	filterInput textinput.Model
	filtering   bool

	focus         focusArea
	cursorCol     int
	cursorRow     int
	width         int
	height        int
	loading       bool
	statusMessage string
	statusIsError bool
	popup         string // pager fallback
	inPagerMode   bool   // tracks if we're currently in pager mode

	// Program reference for terminal management
	program     *tea.Program
	pager       *PagerOps
	unsubscribe []func()
}

// NewModel creates a new UI model and attaches its coordinator to the store
func NewModel(ctx context.Context, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	expansion, err := cfg.Expansion()
	if err != nil {
		log.Printf("Invalid initial expansion %q, using collapsed: %v", cfg.InitialExpansion, err)
		expansion = panel.Collapsed
	}

	ti := textinput.New()
	ti.Prompt = "Minimum rating (0-5, empty to clear): "
	ti.Placeholder = "4.5"
	ti.CharLimit = 4

	m := &Model{
		ctx:         ctx,
		cfg:         cfg,
		bus:         opts.Bus,
		store:       opts.Store,
		results:     opts.Results,
		source:      opts.Source,
		mapView:     &mapSurface{},
		panelView:   &panelSurface{},
		renderer:    views.NewRenderer(),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		filterInput: ti,
	}

	if m.bus != nil {
		for _, t := range []eventbus.EventType{
			eventbus.EventResultsLoaded,
			eventbus.EventResultsFailed,
			eventbus.EventCameraFitted,
			eventbus.EventExpansionChanged,
			eventbus.EventSelectionSurfaced,
		} {
			m.unsubscribe = append(m.unsubscribe, m.bus.Subscribe(t, m.handleEvent))
		}
	}

	m.coord = coordinator.NewCoordinator(m.store, m.mapView, m.panelView, m.bus, coordinator.Options{
		Fit:              cfg.FitOptions(),
		InitialExpansion: expansion,
	})
	m.coord.Attach()
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Close detaches the model from the store and the bus
func (m *Model) Close() {
	m.coord.Detach()
	for _, unsub := range m.unsubscribe {
		unsub()
	}
	m.unsubscribe = nil
}

// Init starts loading results
func (m *Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if first {
			m.centerCursor()
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case resultsMsg:
		m.loading = false
		m.results.Apply(msg.result)
		m.clampCursor()
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: show the content inline instead
			log.Printf("Pager failed: %v", msg.err)
			m.popup = msg.content
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil
	}

	if m.filtering {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	state := m.store.State()
	layout := m.layout()
	prompt := ""
	if m.filtering {
		prompt = m.filterInput.View()
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Query:         state.Query,
		LocationLabel: state.LocationLabel,
		RatingFilter:  state.RatingFilter,
		Loading:       m.loading,
		Map: views.MapState{
			Grid:        m.grid(),
			Annotations: m.mapView.annotations,
			Highlighted: m.mapView.highlighted,
			CursorCol:   m.cursorCol,
			CursorRow:   m.cursorRow,
			Focused:     m.focus == focusMap,
		},
		Panel: views.PanelState{
			Mode:         m.panelView.mode,
			Expansion:    m.panelView.expansion,
			Cursor:       m.panelView.cursor,
			Width:        m.width,
			Height:       layout.PanelHeight,
			ShowDistance: m.cfg.UISettings.ShowDistance,
			Focused:      m.focus == focusPanel,
		},
		StatusMessage: m.statusMessage,
		StatusIsError: m.statusIsError,
		Prompt:        prompt,
		HelpLine:      m.help.View(m.keys),
		Popup:         m.popup,
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.popup != "" {
		switch msg.String() {
		case "esc", "q", "i", "enter":
			m.popup = ""
		}
		return m, nil
	}
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		return m, m.pagerCmd(renderHelpContent(m.keys))

	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusMap {
			m.focus = focusPanel
		} else {
			m.focus = focusMap
		}
		return m, nil

	case key.Matches(msg, m.keys.Raise):
		m.coord.ExpansionChanged(m.coord.Expansion().Raise())
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Lower):
		m.coord.ExpansionChanged(m.coord.Expansion().Lower())
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Refit):
		if !m.coord.Refit() {
			m.setStatus("Nothing to frame", false)
		}
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		return m, m.startFilter()

	case key.Matches(msg, m.keys.Clear):
		m.coord.ClearSelection()
		return m, nil

	case key.Matches(msg, m.keys.Details):
		p, ok := m.detailsTarget()
		if !ok {
			m.setStatus("No place selected", false)
			return m, nil
		}
		return m, m.pagerCmd(renderPlaceDetails(p))

	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1 / zoomStep)
		return m, nil

	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(zoomStep)
		return m, nil
	}

	if m.focus == focusMap {
		return m.handleMapKey(msg)
	}
	return m.handlePanelKey(msg)
}

func (m *Model) handleMapKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Enter):
		m.tapAtCursor()
	}
	return m, nil
}

func (m *Model) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.panelView.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.panelView.move(1)
	case key.Matches(msg, m.keys.Enter):
		if _, ok := m.panelView.mode.(panel.Summary); ok {
			m.coord.ExpansionChanged(panel.Mid)
			m.clampCursor()
			return m, nil
		}
		p, ok := m.panelView.current()
		if !ok {
			return m, nil
		}
		m.coord.RowTapped(p.ID)
		m.centerCursor()
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.stopFilter()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.filterInput.Value())
		m.stopFilter()
		if value == "" {
			m.store.SetRatingFilter(nil)
			m.setStatus("Rating filter cleared", false)
			return m, nil
		}
		rating, err := strconv.ParseFloat(value, 64)
		if err != nil || !domain.ValidRating(rating) {
			m.setStatus(fmt.Sprintf("Invalid rating %q, expected a number between 0 and 5", value), true)
			return m, nil
		}
		m.store.SetRatingFilter(&rating)
		m.setStatus(fmt.Sprintf("Minimum rating set to %s", views.FormatRating(rating)), false)
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m *Model) startFilter() tea.Cmd {
	m.filtering = true
	m.filterInput.SetValue("")
	if f := m.store.State().RatingFilter; f != nil {
		m.filterInput.SetValue(strconv.FormatFloat(*f, 'f', -1, 64))
	}
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

func (m *Model) stopFilter() {
	m.filtering = false
	m.filterInput.Blur()
}

// handleEvent turns domain events into the status line.
// Events are published from Update, so this runs on the UI goroutine.
func (m *Model) handleEvent(e eventbus.DomainEvent) {
	switch ev := e.(type) {
	case eventbus.ResultsLoadedEvent:
		m.setStatus(fmt.Sprintf("Loaded %d results from %s", len(ev.Places), ev.Source), false)
	case eventbus.ResultsFailedEvent:
		m.setStatus(fmt.Sprintf("Could not load results from %s: %v", ev.Source, ev.Err), true)
	case eventbus.CameraFittedEvent:
		m.setStatus(fmt.Sprintf("Showing all %d results", ev.Places), false)
	case eventbus.ExpansionChangedEvent:
		if ev.Forced {
			m.setStatus("Panel raised to show the selection", false)
		} else {
			m.setStatus("Panel "+ev.To, false)
		}
	case eventbus.SelectionSurfacedEvent:
		name := string(ev.ID)
		if p, ok := m.store.State().Place(ev.ID); ok {
			name = p.Name
		}
		if ev.Recentered {
			m.setStatus("Centered on "+name, false)
		} else {
			m.setStatus("Selected "+name, false)
		}
	}
}

func (m *Model) setStatus(message string, isError bool) {
	m.statusMessage = message
	m.statusIsError = isError
}

func (m *Model) loadCmd() tea.Cmd {
	if m.results == nil || m.source == nil {
		return nil
	}
	m.loading = true
	ctx, svc, src := m.ctx, m.results, m.source
	return func() tea.Msg {
		return resultsMsg{result: svc.Fetch(ctx, src)}
	}
}

// pagerCmd returns a command that shows content in the ov pager
func (m *Model) pagerCmd(content string) tea.Cmd {
	program, pager := m.program, m.pager
	return func() tea.Msg {
		if program == nil {
			return pagerMsg{content: content, err: errNoProgram}
		}
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})

		err := pager.Show(content)

		// Send resume message to restart rendering
		program.Send(resumeRenderingMsg{})

		return pagerMsg{content: content, err: err}
	}
}

// detailsTarget is the selected place, or the panel row under the cursor
func (m *Model) detailsTarget() (domain.Place, bool) {
	if p, ok := m.store.State().SelectedPlace(); ok {
		return p, true
	}
	if _, summary := m.panelView.mode.(panel.Summary); summary {
		return domain.Place{}, false
	}
	return m.panelView.current()
}

func (m *Model) layout() views.Layout {
	ratio := m.cfg.UISettings.MidPanelRatio
	if ratio <= 0 {
		ratio = defaultMidPanelRatio
	}
	return views.ComputeLayout(m.width, m.height, m.panelView.expansion, ratio)
}

func (m *Model) grid() views.Grid {
	l := m.layout()
	return views.Grid{Width: l.GridWidth, Height: l.GridHeight, Region: m.mapView.region}
}

// moveCursor moves the map cursor one cell, panning when it would leave the grid
func (m *Model) moveCursor(dCol, dRow int) {
	g := m.grid()
	col, row := m.cursorCol+dCol, m.cursorRow+dRow

	var panLat, panLon float64
	switch {
	case row < 0:
		panLat, row = panStep, 0
	case row >= g.Height:
		panLat, row = -panStep, g.Height-1
	}
	switch {
	case col < 0:
		panLon, col = -panStep, 0
	case col >= g.Width:
		panLon, col = panStep, g.Width-1
	}
	if (panLat != 0 || panLon != 0) && m.mapView.region.HasSpan() {
		m.mapView.SetRegion(geometry.Pan(m.mapView.region, panLat, panLon), false)
	}
	m.cursorCol, m.cursorRow = col, row
}

func (m *Model) zoom(factor float64) {
	if !m.mapView.region.HasSpan() {
		return
	}
	m.mapView.SetRegion(geometry.Zoom(m.mapView.region, factor), false)
}

// tapAtCursor selects the pin nearest the cursor
func (m *Model) tapAtCursor() {
	g := m.grid()
	if !g.Usable() {
		m.setStatus("Nothing on the map yet", false)
		return
	}
	latRadius, lonRadius := g.CellSpan()
	id, ok := m.mapView.pins.Nearest(g.Unproject(m.cursorCol, m.cursorRow), latRadius, lonRadius)
	if !ok {
		m.setStatus("No place under the cursor", false)
		return
	}
	m.coord.PinTapped(id)
}

func (m *Model) centerCursor() {
	g := m.grid()
	m.cursorCol, m.cursorRow = g.Width/2, g.Height/2
}

func (m *Model) clampCursor() {
	g := m.grid()
	m.cursorCol = max(min(m.cursorCol, g.Width-1), 0)
	m.cursorRow = max(min(m.cursorRow, g.Height-1), 0)
	m.panelView.clampCursor()
}
