package zones

import "errors"

// ErrLocationOutOfBounds means a coordinate is not inside any campus zone.
var ErrLocationOutOfBounds = errors.New("location is not inside any valid zone")

// Locator resolves a coordinate to a campus zone id by testing it against
// each zone boundary in dataset order. Lookups are pure and lock-free; any
// number of goroutines may call Locate concurrently.
type Locator struct {
	zones []Zone
	boxes []boundingBox
}

// NewLocator builds a locator over an already loaded zone map.
func NewLocator(m *Map) *Locator {
	zs := m.Zones()
	boxes := make([]boundingBox, len(zs))
	for i, z := range zs {
		boxes[i] = ringBBox(z.Boundary)
	}
	return &Locator{zones: zs, boxes: boxes}
}

// Locate returns the id of the first zone, in dataset order, whose boundary
// contains the point. Points exactly on an edge or vertex are
// implementation-defined under the even-odd rule and may land on either side.
// Returns ErrLocationOutOfBounds when no zone contains the point.
func (l *Locator) Locate(lon, lat float64) (int, error) {
	for i, z := range l.zones {
		if !l.boxes[i].contains(lon, lat) {
			continue
		}
		if pointInRing(lon, lat, z.Boundary) {
			return z.ID, nil
		}
	}
	return 0, ErrLocationOutOfBounds
}

// pointInRing is the even-odd crossing-number test: cast a ray from the
// point toward +lon and count boundary crossings; an odd count is inside.
// The epsilon keeps the division stable when an edge is nearly horizontal.
func pointInRing(lon, lat float64, ring []Vertex) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon, ring[i].Lat
		xj, yj := ring[j].Lon, ring[j].Lat
		crosses := ((yi > lat) != (yj > lat)) &&
			(lon < (xj-xi)*(lat-yi)/(yj-yi+1e-12)+xi)
		if crosses {
			inside = !inside
		}
	}
	return inside
}
