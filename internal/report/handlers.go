package report

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/CacviUn/CU-Backend/internal/metrics"
	"github.com/CacviUn/CU-Backend/internal/registry"
	"github.com/CacviUn/CU-Backend/internal/zones"
	"github.com/go-chi/chi/v5"
)

// Handler serves the report endpoints. The store, enricher and projector
// are injected so tests can run against an in-memory store.
type Handler struct {
	store     Store
	enricher  *Enricher
	projector *Projector
}

func NewHandler(store Store, enricher *Enricher, projector *Projector) *Handler {
	return &Handler{store: store, enricher: enricher, projector: projector}
}

// SaveReportHandler validates and persists one submission. Validation is
// fail-fast: a bad category label or an out-of-bounds coordinate rejects
// the submission before the store is touched.
func (h *Handler) SaveReportHandler(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	persisted, err := h.enricher.Enrich(sub)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrUnknownCategory):
			metrics.SubmissionsRejectedTotal.WithLabelValues("unknown_category").Inc()
			writeError(w, http.StatusBadRequest, "Invalid violence type: "+sub.Type)
		case errors.Is(err, zones.ErrLocationOutOfBounds):
			metrics.SubmissionsRejectedTotal.WithLabelValues("out_of_bounds").Inc()
			writeError(w, http.StatusBadRequest, "Location is not inside any valid zone")
		default:
			writeError(w, http.StatusBadRequest, "Invalid report")
		}
		return
	}

	if err := h.store.Insert(r.Context(), &persisted); err != nil {
		log.Printf("[report] insert failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Error creation report on DB")
		return
	}

	metrics.SubmissionsAcceptedTotal.Inc()
	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Report created assigned to " + sub.Email,
		"id":      persisted.ID,
	})
}

// HistoryHandler returns one submitter's reports with codes decoded to
// labels. No coordinate filtering here: history shows every record.
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	reports, err := h.store.FindByEmail(r.Context(), email)
	if err != nil {
		log.Printf("[report] history lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching report history from DB")
		return
	}

	metrics.ReportsServedTotal.WithLabelValues("history").Add(float64(len(reports)))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"reportHistory": h.projector.Project(reports),
	})
}

// AdminHistoryHandler returns every report in the system, decoded.
func (h *Handler) AdminHistoryHandler(w http.ResponseWriter, r *http.Request) {
	reports, err := h.store.FindAll(r.Context())
	if err != nil {
		log.Printf("[report] admin history lookup failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Error fetching report history from DB")
		return
	}

	metrics.ReportsServedTotal.WithLabelValues("admin_history").Add(float64(len(reports)))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"reportHistory": h.projector.Project(reports),
	})
}

// UpdateHandler applies a partial update to one report. The category, when
// present, arrives as a label and is re-encoded under the same strict rule
// as submissions. The zone is immutable here: it only ever comes from the
// locator at creation time.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input struct {
		Category    *string `json:"category"`
		Description *string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := map[string]any{}
	if input.Category != nil {
		code, err := h.enricher.categories.EncodeCategory(*input.Category)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid violence type: "+*input.Category)
			return
		}
		fields["category"] = code
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if len(fields) == 0 {
		writeError(w, http.StatusBadRequest, "No updates provided")
		return
	}

	affected, err := h.store.UpdateByID(r.Context(), id, fields)
	if err != nil {
		log.Printf("[report] update %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error updating report")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}

	updated, err := h.store.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Report updated",
		"report":  h.projector.ProjectOne(*updated),
	})
}

// DeleteHandler removes one report by id.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	affected, err := h.store.DeleteByID(r.Context(), id)
	if err != nil {
		log.Printf("[report] delete %s failed: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Error deleting report")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "Report not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Report deleted",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[report] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
