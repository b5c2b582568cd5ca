package zones

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Vertex is a single boundary point in WGS84 (longitude, latitude).
type Vertex struct {
	Lon float64 `yaml:"lon"`
	Lat float64 `yaml:"lat"`
}

// Zone is one campus area: a stable id, the name shown to users, and a
// simple polygon boundary. The ring is implicitly closed (last vertex
// connects back to the first).
type Zone struct {
	ID       int      `yaml:"id"`
	Name     string   `yaml:"name"`
	Boundary []Vertex `yaml:"boundary"`
}

// Map holds the campus zones in dataset order. Built once at startup via
// Load and never mutated afterwards, so it is safe to share across
// goroutines without locking.
type Map struct {
	zones []Zone
}

type dataset struct {
	Zones []Zone `yaml:"zones"`
}

// Load reads and validates the zone boundary dataset. The file order is
// preserved: it is the resolution order used by the locator.
func Load(path string) (*Map, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read zone dataset: %w", err)
	}

	var ds dataset
	if err := yaml.Unmarshal(file, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse zone dataset: %w", err)
	}
	if len(ds.Zones) == 0 {
		return nil, fmt.Errorf("zone dataset %s contains no zones", path)
	}

	seen := make(map[int]bool, len(ds.Zones))
	for i := range ds.Zones {
		z := &ds.Zones[i]
		if z.ID <= 0 {
			return nil, fmt.Errorf("zone %q: id must be a positive integer, got %d", z.Name, z.ID)
		}
		if seen[z.ID] {
			return nil, fmt.Errorf("duplicate zone id %d", z.ID)
		}
		seen[z.ID] = true
		if z.Name == "" {
			return nil, fmt.Errorf("zone %d has no name", z.ID)
		}
		z.Boundary = trimClosingVertex(z.Boundary)
		if err := validateRing(z.Boundary); err != nil {
			return nil, fmt.Errorf("zone %d (%s): %w", z.ID, z.Name, err)
		}
	}

	m := &Map{zones: ds.Zones}
	if err := m.checkOverlaps(); err != nil {
		return nil, err
	}
	return m, nil
}

// Zones returns the zones in dataset order. Callers must not modify the
// returned slice.
func (m *Map) Zones() []Zone {
	return m.zones
}

// Labels returns the id -> display name table carried by the dataset.
// Geometry and labels share one source file, so they cannot drift apart.
func (m *Map) Labels() map[int]string {
	labels := make(map[int]string, len(m.zones))
	for _, z := range m.zones {
		labels[z.ID] = z.Name
	}
	return labels
}

// trimClosingVertex drops an explicit closing vertex so datasets may write
// rings either open or closed.
func trimClosingVertex(ring []Vertex) []Vertex {
	if len(ring) >= 2 && ring[0] == ring[len(ring)-1] {
		return ring[:len(ring)-1]
	}
	return ring
}

func validateRing(ring []Vertex) error {
	if len(ring) < 3 {
		return fmt.Errorf("boundary needs at least 3 distinct vertices, got %d", len(ring))
	}
	distinct := make(map[Vertex]bool, len(ring))
	for _, v := range ring {
		if distinct[v] {
			return fmt.Errorf("boundary repeats vertex (%v, %v)", v.Lon, v.Lat)
		}
		distinct[v] = true
	}
	return nil
}

// checkOverlaps rejects datasets where two zone boundaries cover common
// ground. Resolution is first-match in dataset order, so overlap would make
// the assigned zone depend on file ordering. Two rings overlap when either
// holds a vertex of the other inside it, or their edges properly cross
// (covering shapes like two rectangles overlapping in a plus, where neither
// ring holds a vertex of the other). Zones that only share an edge or a
// corner are fine: probe points are nudged off the boundary before testing,
// and collinear or endpoint-touching edges do not count as crossings.
func (m *Map) checkOverlaps() error {
	boxes := make([]boundingBox, len(m.zones))
	for i, z := range m.zones {
		boxes[i] = ringBBox(z.Boundary)
	}

	for i := range m.zones {
		for j := i + 1; j < len(m.zones); j++ {
			if !boxes[i].intersects(boxes[j]) {
				continue
			}
			a, b := &m.zones[i], &m.zones[j]
			if ringsCross(a.Boundary, b.Boundary) ||
				ringEntersRing(a.Boundary, b.Boundary) ||
				ringEntersRing(b.Boundary, a.Boundary) {
				return fmt.Errorf("zones %d (%s) and %d (%s) have overlapping boundaries",
					a.ID, a.Name, b.ID, b.Name)
			}
		}
	}
	return nil
}

// ringsCross reports whether any edge of ring a properly crosses any edge of
// ring b. A proper crossing means both segments pass strictly through each
// other, so two rings with crossing edges always share interior ground.
func ringsCross(a, b []Vertex) bool {
	for i := range a {
		a1, a2 := a[i], a[(i+1)%len(a)]
		for j := range b {
			if segmentsCross(a1, a2, b[j], b[(j+1)%len(b)]) {
				return true
			}
		}
	}
	return false
}

// segmentsCross tests for a strict crossing: each segment's endpoints lie on
// opposite sides of the other's supporting line. Touching at an endpoint or
// running collinear is not a crossing, so adjacent zones sharing an edge or
// a corner pass.
func segmentsCross(p1, p2, q1, q2 Vertex) bool {
	d1 := sideOf(q1, q2, p1)
	d2 := sideOf(q1, q2, p2)
	d3 := sideOf(p1, p2, q1)
	d4 := sideOf(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// sideOf is the signed cross product placing p relative to the directed line
// a -> b: positive left, negative right, zero collinear.
func sideOf(a, b, p Vertex) float64 {
	return (b.Lon-a.Lon)*(p.Lat-a.Lat) - (b.Lat-a.Lat)*(p.Lon-a.Lon)
}

// ringEntersRing reports whether any interior probe point of ring a falls
// inside ring b. Probes are the vertices of a pulled slightly toward a's
// vertex mean, keeping edge-adjacent zones from reporting as overlapping.
func ringEntersRing(a, b []Vertex) bool {
	const pull = 1e-7

	var cx, cy float64
	for _, v := range a {
		cx += v.Lon
		cy += v.Lat
	}
	cx /= float64(len(a))
	cy /= float64(len(a))

	for _, v := range a {
		probeLon := v.Lon + (cx-v.Lon)*pull
		probeLat := v.Lat + (cy-v.Lat)*pull
		if pointInRing(probeLon, probeLat, b) {
			return true
		}
	}
	return false
}

type boundingBox struct {
	minLon, minLat, maxLon, maxLat float64
}

func ringBBox(ring []Vertex) boundingBox {
	b := boundingBox{
		minLon: ring[0].Lon, maxLon: ring[0].Lon,
		minLat: ring[0].Lat, maxLat: ring[0].Lat,
	}
	for _, v := range ring[1:] {
		if v.Lon < b.minLon {
			b.minLon = v.Lon
		}
		if v.Lon > b.maxLon {
			b.maxLon = v.Lon
		}
		if v.Lat < b.minLat {
			b.minLat = v.Lat
		}
		if v.Lat > b.maxLat {
			b.maxLat = v.Lat
		}
	}
	return b
}

func (b boundingBox) intersects(o boundingBox) bool {
	return b.minLon <= o.maxLon && o.minLon <= b.maxLon &&
		b.minLat <= o.maxLat && o.minLat <= b.maxLat
}

func (b boundingBox) contains(lon, lat float64) bool {
	return lon >= b.minLon && lon <= b.maxLon && lat >= b.minLat && lat <= b.maxLat
}
