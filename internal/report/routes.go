package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/save-report", h.SaveReportHandler)
	r.Get("/history/{email}", h.HistoryHandler)
	r.Get("/admin-history", h.AdminHistoryHandler)
	r.Put("/update/{id}", h.UpdateHandler)
	r.Delete("/delete/{id}", h.DeleteHandler)

	return r
}
