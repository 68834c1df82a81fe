package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"placegrip/internal/config"
	"placegrip/internal/domain"
	"placegrip/internal/eventbus"
	"placegrip/internal/panel"
	"placegrip/internal/results"
	"placegrip/internal/search"
)

type stubSource struct {
	places []domain.Place
	err    error
}

func (s *stubSource) Name() string { return "stub" }
func (s *stubSource) Load(context.Context) ([]domain.Place, error) {
	return s.places, s.err
}

var (
	place1 = domain.Place{ID: "p1", Name: "Entrecôte Café de Paris", Rating: 4.8,
		Coordinate: domain.Coordinate{Latitude: 25.0, Longitude: 55.0}, ImageURLs: []string{"a"}}
	place2 = domain.Place{ID: "p2", Name: "Akira Back Dubai", Rating: 4.7,
		Coordinate: domain.Coordinate{Latitude: 25.2, Longitude: 55.4}}
)

func newTestModel(t *testing.T, src *stubSource) *Model {
	t.Helper()
	bus := eventbus.New()
	store := search.NewStore(search.State{Query: "Restaurants", LocationLabel: "Dubai"})
	m := NewModel(context.Background(), Options{
		Config:  config.DefaultConfig(),
		Bus:     bus,
		Store:   store,
		Results: results.NewService(store, bus),
		Source:  src,
	})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m
}

// loaded returns a model that has finished its initial load
func loaded(t *testing.T) *Model {
	t.Helper()
	m := newTestModel(t, &stubSource{places: []domain.Place{place1, place2}})
	run(t, m, m.Init())
	return m
}

// run executes cmd synchronously and feeds its message back
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	m.Update(cmd())
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "shift+up":
			msg = tea.KeyMsg{Type: tea.KeyShiftUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func TestModel_InitialLoadFitsCamera(t *testing.T) {
	m := newTestModel(t, &stubSource{places: []domain.Place{place1, place2}})

	cmd := m.Init()
	assert.True(t, m.loading)
	run(t, m, cmd)

	assert.False(t, m.loading)
	region, ok := m.mapView.Region()
	require.True(t, ok)
	assert.InDelta(t, 25.1, region.Center.Latitude, 1e-9)
	assert.InDelta(t, 55.2, region.Center.Longitude, 1e-9)
	assert.Len(t, m.mapView.annotations, 2)
	assert.Equal(t, 2, m.mapView.pins.Len())
	assert.IsType(t, panel.Summary{}, m.panelView.mode)
	assert.Equal(t, "Loaded 2 results from stub", m.statusMessage)
}

func TestModel_FailedLoadShowsError(t *testing.T) {
	m := newTestModel(t, &stubSource{err: errors.New("disk on fire")})

	run(t, m, m.Init())

	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMessage, "disk on fire")
	_, ok := m.mapView.Region()
	assert.False(t, ok)
}

func TestModel_PinTapAtCursor(t *testing.T) {
	m := loaded(t)
	before := m.mapView.region
	col, row, ok := m.grid().Project(place2.Coordinate)
	require.True(t, ok)
	m.cursorCol, m.cursorRow = col, row

	press(m, "enter")

	selected := m.store.State().SelectedID
	require.NotNil(t, selected)
	assert.Equal(t, domain.PlaceID("p2"), *selected)
	assert.Equal(t, panel.Mid, m.panelView.expansion)
	preview, ok := m.panelView.mode.(panel.Preview)
	require.True(t, ok)
	assert.Equal(t, domain.PlaceID("p2"), preview.Selected.ID)
	assert.Equal(t, before, m.mapView.region, "pin tap keeps the camera")
	assert.Equal(t, 1, m.panelView.cursor, "panel cursor follows the selection")
}

func TestModel_PinTapOnEmptyCell(t *testing.T) {
	m := loaded(t)
	m.cursorCol, m.cursorRow = 0, 0

	press(m, "enter")

	assert.Nil(t, m.store.State().SelectedID)
	assert.Equal(t, "No place under the cursor", m.statusMessage)
}

func TestModel_RowTapRecentersMap(t *testing.T) {
	m := loaded(t)

	press(m, "tab", "K")
	require.Equal(t, panel.Mid, m.panelView.expansion)
	require.IsType(t, panel.List{}, m.panelView.mode)
	press(m, "enter")

	selected := m.store.State().SelectedID
	require.NotNil(t, selected)
	assert.Equal(t, domain.PlaceID("p1"), *selected)
	assert.Equal(t, place1.Coordinate, m.mapView.region.Center)
	assert.Equal(t, domain.PlaceID("p1"), m.mapView.highlighted)
	assert.Equal(t, "Centered on Entrecôte Café de Paris", m.statusMessage)

	g := m.grid()
	assert.Equal(t, g.Width/2, m.cursorCol)
	assert.Equal(t, g.Height/2, m.cursorRow)
}

func TestModel_PanelNavigation(t *testing.T) {
	m := loaded(t)
	press(m, "tab")

	// enter on the summary raises the panel
	press(m, "enter")
	assert.Equal(t, panel.Mid, m.panelView.expansion)

	press(m, "j")
	assert.Equal(t, 1, m.panelView.cursor)
	press(m, "j")
	assert.Equal(t, 1, m.panelView.cursor, "clamped at the last row")
	press(m, "enter")

	assert.Equal(t, domain.PlaceID("p2"), *m.store.State().SelectedID)
}

func TestModel_RaiseAndLower(t *testing.T) {
	m := loaded(t)

	press(m, "K", "K", "K")
	assert.Equal(t, panel.Full, m.panelView.expansion)

	press(m, "J")
	assert.Equal(t, panel.Mid, m.panelView.expansion)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftDown})
	assert.Equal(t, panel.Collapsed, m.panelView.expansion)
	assert.IsType(t, panel.Summary{}, m.panelView.mode)

	press(m, "shift+up")
	assert.Equal(t, panel.Mid, m.panelView.expansion)
	assert.Nil(t, m.store.State().SelectedID, "raising never selects")
}

func TestModel_ClearSelection(t *testing.T) {
	m := loaded(t)
	m.coord.PinTapped("p1")

	press(m, "esc")

	assert.Nil(t, m.store.State().SelectedID)
	assert.IsType(t, panel.List{}, m.panelView.mode)
}

func TestModel_RatingFilter(t *testing.T) {
	m := loaded(t)

	press(m, "r")
	require.True(t, m.filtering)
	press(m, "4.5", "enter")

	assert.False(t, m.filtering)
	f := m.store.State().RatingFilter
	require.NotNil(t, f)
	assert.Equal(t, 4.5, *f)
	assert.Equal(t, 2, m.store.State().Count(), "filter is recorded, results untouched")

	// Empty input clears it
	press(m, "r")
	assert.Equal(t, "4.5", m.filterInput.Value())
	m.filterInput.SetValue("")
	press(m, "enter")
	assert.Nil(t, m.store.State().RatingFilter)
}

func TestModel_RatingFilterRejectsBadInput(t *testing.T) {
	m := loaded(t)

	press(m, "r", "9", "enter")

	assert.Nil(t, m.store.State().RatingFilter)
	assert.True(t, m.statusIsError)
}

func TestModel_RatingFilterRejectsNaN(t *testing.T) {
	m := loaded(t)

	press(m, "r", "NaN", "enter")

	assert.Nil(t, m.store.State().RatingFilter)
	assert.True(t, m.statusIsError)
	assert.Contains(t, m.statusMessage, "NaN")
}

func TestModel_RatingFilterEscCancels(t *testing.T) {
	m := loaded(t)

	press(m, "r", "3", "esc")

	assert.False(t, m.filtering)
	assert.Nil(t, m.store.State().RatingFilter)
}

func TestModel_QuitKeyIgnoredWhileFiltering(t *testing.T) {
	m := loaded(t)

	press(m, "r", "q")

	assert.True(t, m.filtering)
	assert.Equal(t, "q", m.filterInput.Value())
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t)

	cmd := press(m, "q")

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_DetailsFallBackToPopupWithoutProgram(t *testing.T) {
	m := loaded(t)

	press(m, "i")
	assert.Equal(t, "No place selected", m.statusMessage)

	m.coord.PinTapped("p1")
	run(t, m, press(m, "i"))

	assert.Contains(t, m.popup, "Entrecôte Café de Paris")
	assert.Contains(t, m.View(), "Entrecôte Café de Paris")

	press(m, "esc")
	assert.Empty(t, m.popup)
	require.NotNil(t, m.store.State().SelectedID, "closing the popup keeps the selection")
}

func TestModel_HelpFallsBackToPopup(t *testing.T) {
	m := loaded(t)

	run(t, m, press(m, "?"))

	assert.Contains(t, m.popup, "placegrip Help")
	assert.Contains(t, m.popup, "Raise panel")
}

func TestModel_ZoomAndPan(t *testing.T) {
	m := loaded(t)
	fitted := m.mapView.region

	press(m, "+")
	assert.InDelta(t, fitted.Span.LatitudeDelta/2, m.mapView.region.Span.LatitudeDelta, 1e-12)

	press(m, "-")
	assert.InDelta(t, fitted.Span.LatitudeDelta, m.mapView.region.Span.LatitudeDelta, 1e-12)

	m.cursorRow = 0
	press(m, "up")
	assert.Equal(t, 0, m.cursorRow)
	assert.InDelta(t, fitted.Center.Latitude+fitted.Span.LatitudeDelta*panStep, m.mapView.region.Center.Latitude, 1e-12)
}

func TestModel_ReloadKeepsUserCamera(t *testing.T) {
	m := loaded(t)
	press(m, "+")
	zoomed := m.mapView.region

	run(t, m, press(m, "R"))

	assert.Equal(t, zoomed, m.mapView.region)
	assert.Equal(t, "Loaded 2 results from stub", m.statusMessage)
}

func TestModel_RefitKey(t *testing.T) {
	m := loaded(t)
	fitted := m.mapView.region
	press(m, "+", "l")

	press(m, "c")

	assert.Equal(t, fitted, m.mapView.region)
}

func TestModel_View(t *testing.T) {
	m := loaded(t)

	out := m.View()

	assert.Contains(t, out, "placegrip")
	assert.Contains(t, out, "Restaurants in Dubai")
	assert.Contains(t, out, "Over 2 places")
}

func TestModel_ViewBeforeSize(t *testing.T) {
	store := search.NewStore(search.State{})
	m := NewModel(context.Background(), Options{Store: store})
	defer m.Close()

	assert.Equal(t, "Loading...", m.View())
	assert.Nil(t, m.Init(), "no source, nothing to load")
}

func TestModel_InitialExpansionFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.InitialExpansion = "full"
	store := search.NewStore(search.State{Places: []domain.Place{place1}})

	m := NewModel(context.Background(), Options{Config: cfg, Store: store})
	defer m.Close()

	assert.Equal(t, panel.Full, m.panelView.expansion)
	assert.IsType(t, panel.List{}, m.panelView.mode)
}

func TestModel_PreviewListVisibleAt80x24(t *testing.T) {
	bus := eventbus.New()
	store := search.NewStore(search.State{Query: "Restaurants", LocationLabel: "Dubai"})
	m := NewModel(context.Background(), Options{
		Config:  config.DefaultConfig(),
		Bus:     bus,
		Store:   store,
		Results: results.NewService(store, bus),
		Source:  results.SampleSource{},
	})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	run(t, m, m.Init())
	places := store.State().Places
	require.Len(t, places, 5)

	m.coord.PinTapped(places[1].ID)
	require.IsType(t, panel.Preview{}, m.panelView.mode)

	assert.Contains(t, m.View(), places[0].Name, "the row above the selection is on screen")

	press(m, "tab", "up", "enter")
	assert.Equal(t, places[0].ID, *store.State().SelectedID)
}
