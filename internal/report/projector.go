package report

import "github.com/CacviUn/CU-Backend/internal/registry"

// Projector decodes persisted reports into their display form. Every read
// flow (personal history, admin history, dashboard) goes through the same
// decode; flow-specific filtering happens in the callers.
type Projector struct {
	categories registry.CategoryRegistry
	zoneLabels registry.ZoneLabels
}

func NewProjector(categories registry.CategoryRegistry, zoneLabels registry.ZoneLabels) *Projector {
	return &Projector{categories: categories, zoneLabels: zoneLabels}
}

// Project decodes each report independently. Decoding cannot fail: codes
// outside the registries pass through as their string form, so one bad row
// never breaks a whole history.
func (p *Projector) Project(reports []Report) []DisplayReport {
	out := make([]DisplayReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, p.ProjectOne(r))
	}
	return out
}

// ProjectOne decodes a single persisted report.
func (p *Projector) ProjectOne(r Report) DisplayReport {
	return DisplayReport{
		ID:           r.ID,
		UserEmail:    r.UserEmail,
		Age:          r.Age,
		Description:  r.Description,
		Date:         r.Date,
		Category:     p.categories.DecodeCategory(r.Category),
		Zone:         p.zoneLabels.DecodeZone(r.Zone),
		Location:     Location{Latitude: r.Latitude, Longitude: r.Longitude},
		CreationTime: r.CreationTime,
		Version:      r.Version,
	}
}
