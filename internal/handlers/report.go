package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/evergreen-power/apiserver/internal/services"
)

// ReportHandler serves the aggregated dashboard views. Sales sessions see
// numbers scoped to their own leads; the performance table is admin only.
type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ReportRouter registers report routes on the given router.
func ReportRouter(r chi.Router, reportService *services.ReportService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewReportHandler(reportService)

	r.Use(authMiddleware)
	r.Get("/overview", handler.Overview)
	r.Get("/status", handler.ByStatus)
	r.Get("/sources", handler.BySource)
	r.Get("/cities", handler.ByCity)
	r.With(RequireAdmin).Get("/performance", handler.Performance)
}

func (h *ReportHandler) Overview(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, h.reportService.Overview(sess))
}

func (h *ReportHandler) ByStatus(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, CountsResponse{Counts: h.reportService.CountByStatus(sess)})
}

func (h *ReportHandler) BySource(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, CountsResponse{Counts: h.reportService.CountBySource(sess)})
}

func (h *ReportHandler) ByCity(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, CountsResponse{Counts: h.reportService.CountByCity(sess)})
}

func (h *ReportHandler) Performance(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, PerformanceResponse{Reps: h.reportService.Performance(sess)})
}

type CountsResponse struct {
	Counts map[string]int `json:"counts"`
}

type PerformanceResponse struct {
	Reps []services.RepPerformance `json:"reps"`
}
