package dashboard

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/CacviUn/CU-Backend/internal/metrics"
	"github.com/CacviUn/CU-Backend/internal/registry"
	"github.com/CacviUn/CU-Backend/internal/report"
)

// RecentLimit caps the dashboard feed at the newest records.
const RecentLimit = 20

// Handler serves the map dashboard read flows. It shares the report store
// and projector; only the filtering rules differ from the history flows.
type Handler struct {
	store      report.Store
	projector  *report.Projector
	categories registry.CategoryRegistry
}

func NewHandler(store report.Store, projector *report.Projector, categories registry.CategoryRegistry) *Handler {
	return &Handler{store: store, projector: projector, categories: categories}
}

// LocationsHandler returns the coordinates of every report for map
// rendering. Records with a missing or empty coordinate are dropped here;
// a marker without a position cannot be drawn.
func (h *Handler) LocationsHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.FindAll(r.Context())
	if err != nil {
		log.Printf("[dashboard] locations lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching locations")
		return
	}

	locations := make([]report.Location, 0, len(reports))
	for _, rep := range reports {
		if rep.Latitude == "" || rep.Longitude == "" {
			continue
		}
		locations = append(locations, report.Location{
			Latitude:  rep.Latitude,
			Longitude: rep.Longitude,
		})
	}

	metrics.ReportsServedTotal.WithLabelValues("dashboard_locations").Add(float64(len(locations)))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    locations,
	})
}

type recentEntry struct {
	Date          string          `json:"date"`
	CategoryLabel string          `json:"category_label"`
	CreationTime  time.Time       `json:"creation_time"`
	Location      report.Location `json:"location"`
}

// RecentHandler returns the newest reports projected down to date, category
// label and coordinate. An optional ?categories=1,2 query narrows the feed
// to those category codes. Records missing any projected field are dropped
// before they reach the map.
func (h *Handler) RecentHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := parseCategoryFilter(r.URL.Query().Get("categories"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category filter")
		return
	}

	rows, err := h.store.FindRecentProjected(r.Context(), RecentLimit, categories)
	if err != nil {
		log.Printf("[dashboard] recent lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching recent violence reports")
		return
	}

	entries := make([]recentEntry, 0, len(rows))
	for _, row := range rows {
		if row.Date == "" || row.Category == 0 || row.Latitude == "" || row.Longitude == "" {
			continue
		}
		entries = append(entries, recentEntry{
			Date:          row.Date,
			CategoryLabel: h.categories.DecodeCategory(row.Category),
			CreationTime:  row.CreationTime,
			Location: report.Location{
				Latitude:  row.Latitude,
				Longitude: row.Longitude,
			},
		})
	}

	metrics.ReportsServedTotal.WithLabelValues("dashboard_recent").Add(float64(len(entries)))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    entries,
	})
}

// DataHandler is the admin view of the dashboard: every report, fully
// decoded, coordinate completeness notwithstanding.
func (h *Handler) DataHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.FindAll(r.Context())
	if err != nil {
		log.Printf("[dashboard] data lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching report history from DB")
		return
	}

	metrics.ReportsServedTotal.WithLabelValues("dashboard_data").Add(float64(len(reports)))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"reportHistory": h.projector.Project(reports),
	})
}

func parseCategoryFilter(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	codes := make([]int, 0, len(parts))
	for _, p := range parts {
		code, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, nil
}
