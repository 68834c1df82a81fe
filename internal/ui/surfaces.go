package ui

import (
	"placegrip/internal/domain"
	"placegrip/internal/geometry"
	"placegrip/internal/panel"
	"placegrip/internal/ui/coordinator"
)

// mapSurface is the terminal map. It keeps what the coordinator pushed and
// a pin index for hit-testing the cursor.
type mapSurface struct {
	annotations []coordinator.Annotation
	pins        *geometry.PinIndex
	region      domain.Region
	hasRegion   bool
	highlighted domain.PlaceID
	animated    bool
}

func (s *mapSurface) SetAnnotations(annotations []coordinator.Annotation) {
	s.annotations = annotations

	ids := make([]domain.PlaceID, len(annotations))
	coords := make([]domain.Coordinate, len(annotations))
	keep := false
	for i, a := range annotations {
		ids[i] = a.ID
		coords[i] = a.Coordinate
		if a.ID == s.highlighted && a.Selected {
			keep = true
		}
	}
	s.pins = geometry.NewPinIndex(ids, coords)
	if !keep {
		s.highlighted = ""
	}
}

func (s *mapSurface) Region() (domain.Region, bool) {
	return s.region, s.hasRegion
}

func (s *mapSurface) SetRegion(region domain.Region, animated bool) {
	s.region = region
	s.hasRegion = true
	s.animated = animated
}

func (s *mapSurface) SetCenter(center domain.Coordinate) {
	s.region.Center = center
	s.hasRegion = true
}

func (s *mapSurface) SelectAnnotation(id domain.PlaceID) {
	s.highlighted = id
}

// panelSurface is the bottom panel. The cursor is the row the keyboard is on.
type panelSurface struct {
	mode      panel.Mode
	expansion panel.ExpansionLevel
	cursor    int
}

func (s *panelSurface) SetMode(mode panel.Mode) {
	s.mode = mode
	if p, ok := mode.(panel.Preview); ok {
		for i, place := range p.Places {
			if place.ID == p.Selected.ID {
				s.cursor = i
				break
			}
		}
	}
	s.clampCursor()
}

func (s *panelSurface) SetExpansion(level panel.ExpansionLevel) {
	s.expansion = level
}

func (s *panelSurface) items() []domain.Place {
	if s.mode == nil {
		return nil
	}
	return panel.Items(s.mode)
}

func (s *panelSurface) move(delta int) {
	s.cursor += delta
	s.clampCursor()
}

func (s *panelSurface) clampCursor() {
	n := len(s.items())
	s.cursor = max(min(s.cursor, n-1), 0)
}

// current returns the place under the cursor
func (s *panelSurface) current() (domain.Place, bool) {
	items := s.items()
	if s.cursor < 0 || s.cursor >= len(items) {
		return domain.Place{}, false
	}
	return items[s.cursor], true
}
