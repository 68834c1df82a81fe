package geometry

import (
	"math"

	"github.com/asim/quadtree"

	"placegrip/internal/domain"
)

type pin struct {
	id    domain.PlaceID
	coord domain.Coordinate
	order int
}

// PinIndex answers "which pin is closest to this point" for map hit-testing.
// It is rebuilt whenever the annotation set changes.
type PinIndex struct {
	tree *quadtree.QuadTree
	size int
}

// NewPinIndex indexes the given coordinates by place id.
// Invalid coordinates are skipped.
func NewPinIndex(ids []domain.PlaceID, coords []domain.Coordinate) *PinIndex {
	// Whole world: x is latitude, y is longitude
	center := quadtree.NewPoint(0, 0, nil)
	half := quadtree.NewPoint(90, 180, nil)
	idx := &PinIndex{tree: quadtree.New(quadtree.NewAABB(center, half), 0, nil)}

	for i := range ids {
		if i >= len(coords) || !coords[i].Valid() {
			continue
		}
		p := &pin{id: ids[i], coord: coords[i], order: i}
		if idx.tree.Insert(quadtree.NewPoint(p.coord.Latitude, p.coord.Longitude, p)) {
			idx.size++
		}
	}
	return idx
}

// Len returns the number of indexed pins
func (idx *PinIndex) Len() int {
	return idx.size
}

// Nearest returns the pin closest to c whose distance on each axis is within
// the given radii. Ties go to the pin that was indexed first.
func (idx *PinIndex) Nearest(c domain.Coordinate, latRadius, lonRadius float64) (domain.PlaceID, bool) {
	if idx == nil || idx.size == 0 {
		return "", false
	}

	center := quadtree.NewPoint(c.Latitude, c.Longitude, nil)
	half := quadtree.NewPoint(latRadius, lonRadius, nil)
	points := idx.tree.Search(quadtree.NewAABB(center, half))

	var best *pin
	bestDist := math.Inf(1)
	for _, pt := range points {
		p, ok := pt.Data().(*pin)
		if !ok {
			continue
		}
		// bounding box search is inclusive of neighbours; filter to the radii
		dLat := p.coord.Latitude - c.Latitude
		dLon := p.coord.Longitude - c.Longitude
		if math.Abs(dLat) > latRadius || math.Abs(dLon) > lonRadius {
			continue
		}
		dist := dLat*dLat + dLon*dLon
		if dist < bestDist || (dist == bestDist && p.order < best.order) {
			best, bestDist = p, dist
		}
	}
	if best == nil {
		return "", false
	}
	return best.id, true
}
