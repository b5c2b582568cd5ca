package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/CacviUn/CU-Backend/internal/registry"
	"github.com/CacviUn/CU-Backend/internal/zones"
	"github.com/google/uuid"
)

// SchemaVersion tags every persisted report with the record layout it was
// written under.
const SchemaVersion = "1"

// Enricher turns a raw submission into a persisted report: the category
// label becomes its stable code and the coordinate resolves to a campus
// zone. Both steps validate; either failure rejects the whole submission
// before anything touches storage.
type Enricher struct {
	categories registry.CategoryRegistry
	locator    *zones.Locator
}

func NewEnricher(categories registry.CategoryRegistry, locator *zones.Locator) *Enricher {
	return &Enricher{categories: categories, locator: locator}
}

// Enrich validates and composes the persisted record. The returned report
// carries the submitted coordinate verbatim; the zone id is always the
// locator's answer for that coordinate at this moment, never client input.
func (e *Enricher) Enrich(sub Submission) (Report, error) {
	code, err := e.categories.EncodeCategory(sub.Type)
	if err != nil {
		return Report{}, err
	}

	lon, lat, err := parseCoordinate(sub.Location)
	if err != nil {
		// Unparsable coordinates cannot resolve to any zone.
		return Report{}, fmt.Errorf("%w: %v", zones.ErrLocationOutOfBounds, err)
	}

	zoneID, err := e.locator.Locate(lon, lat)
	if err != nil {
		return Report{}, err
	}

	created := sub.SendTime
	if created.IsZero() {
		created = time.Now().UTC()
	}

	return Report{
		ID:           uuid.NewString(),
		UserEmail:    sub.Email,
		Age:          sub.Age,
		Description:  sub.Description,
		Date:         sub.Date,
		Category:     code,
		Zone:         zoneID,
		Latitude:     sub.Location.Latitude,
		Longitude:    sub.Location.Longitude,
		CreationTime: created,
		Version:      SchemaVersion,
	}, nil
}

func parseCoordinate(loc Location) (lon, lat float64, err error) {
	lat, err = strconv.ParseFloat(loc.Latitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude %q", loc.Latitude)
	}
	lon, err = strconv.ParseFloat(loc.Longitude, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude %q", loc.Longitude)
	}
	return lon, lat, nil
}
