package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/evergreen-power/apiserver/internal/services"
	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/internal/validation"
	"github.com/evergreen-power/apiserver/types"
)

// LeadHandler provides HTTP handlers for leads.
type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// LeadRouter registers lead routes on the given router. Every route requires
// an authenticated session; bulk assignment additionally requires admin.
func LeadRouter(r chi.Router, leadService *services.LeadService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewLeadHandler(leadService)

	r.Use(authMiddleware)
	r.Get("/", handler.ListLeads)
	r.Post("/", handler.CreateLead)
	r.Get("/next-code", handler.NextCustomerCode)
	r.With(RequireAdmin).Post("/assign", handler.AssignLeads)
	r.Route("/{leadID}", func(r chi.Router) {
		r.Get("/", handler.GetLead)
		r.Patch("/", handler.UpdateLead)
		r.Delete("/", handler.DeleteLead)
	})
}

func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	filter := parseLeadFilter(r)
	items := h.leadService.List(sess, filter)
	writeJSON(w, http.StatusOK, LeadListResponse{Items: items, Total: len(items)})
}

func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseLeadID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.leadService.Get(sess, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch lead")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) CreateLead(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := req.Status
	if status == "" {
		status = types.LeadStatusOpen
	}

	lead, err := h.leadService.Create(r.Context(), sess, store.LeadInput{
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		Sector:         req.Sector,
		City:           req.City,
		MonthlyBill:    req.MonthlyBill,
		RequiredSystem: req.RequiredSystem,
		SystemType:     req.SystemType,
		Status:         status,
		Source:         req.Source,
		AssignedTo:     req.AssignedTo,
		Remarks:        req.Remarks,
	})
	if err != nil {
		if errors.Is(err, services.ErrUnknownAssignee) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create lead")
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseLeadID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req UpdateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.leadService.Update(r.Context(), sess, id, store.LeadUpdate{
		Name:           req.Name,
		Phone:          req.Phone,
		Sector:         req.Sector,
		City:           req.City,
		MonthlyBill:    req.MonthlyBill,
		RequiredSystem: req.RequiredSystem,
		SystemType:     req.SystemType,
		Status:         req.Status,
		Source:         req.Source,
		AssignedTo:     req.AssignedTo,
		Remarks:        req.Remarks,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "lead not found")
		case errors.Is(err, services.ErrForbidden):
			writeError(w, http.StatusForbidden, err.Error())
		case errors.Is(err, services.ErrUnknownAssignee):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to update lead")
		}
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *LeadHandler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	sess, err := sessionFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := parseLeadID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.leadService.Delete(r.Context(), sess, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete lead")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// NextCustomerCode previews the code the next created lead would receive, for
// display on the intake form.
func (h *LeadHandler) NextCustomerCode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, NextCodeResponse{CustomerCode: h.leadService.NextCustomerCode()})
}

func (h *LeadHandler) AssignLeads(w http.ResponseWriter, r *http.Request) {
	var req AssignLeadsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.leadService.Assign(r.Context(), req.LeadIDs, req.AssignedTo)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "lead not found")
		case errors.Is(err, services.ErrUnknownAssignee):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to assign leads")
		}
		return
	}

	writeJSON(w, http.StatusOK, AssignLeadsResponse{Updated: updated})
}

type CreateLeadRequest struct {
	Name           string  `json:"name" validate:"required"`
	Phone          string  `json:"phone" validate:"required"`
	Sector         string  `json:"sector"`
	City           string  `json:"city" validate:"omitempty,oneof=Islamabad RawalPindi Taxila Wahcantt Lahore Karachi"`
	MonthlyBill    float64 `json:"monthly_bill" validate:"gte=0"`
	RequiredSystem string  `json:"required_system"`
	SystemType     string  `json:"system_type" validate:"omitempty,oneof='On Grid' 'HyBrid' 'OFF Grid'"`
	Status         string  `json:"status" validate:"omitempty,oneof='Open' 'Fake Lead' 'Lost' 'Not Interested' 'Quote Shared' 'Won'"`
	Source         string  `json:"source" validate:"omitempty,oneof='Organic Search' 'Paid Ads' 'Social Media' 'Referral' 'Walk-In'"`
	AssignedTo     string  `json:"assigned_to"`
	Remarks        string  `json:"remarks"`
}

type UpdateLeadRequest struct {
	Name           *string  `json:"name" validate:"omitempty,min=1"`
	Phone          *string  `json:"phone" validate:"omitempty,min=1"`
	Sector         *string  `json:"sector"`
	City           *string  `json:"city" validate:"omitempty,oneof=Islamabad RawalPindi Taxila Wahcantt Lahore Karachi"`
	MonthlyBill    *float64 `json:"monthly_bill" validate:"omitempty,gte=0"`
	RequiredSystem *string  `json:"required_system"`
	SystemType     *string  `json:"system_type" validate:"omitempty,oneof='On Grid' 'HyBrid' 'OFF Grid'"`
	Status         *string  `json:"status" validate:"omitempty,oneof='Open' 'Fake Lead' 'Lost' 'Not Interested' 'Quote Shared' 'Won'"`
	Source         *string  `json:"source" validate:"omitempty,oneof='Organic Search' 'Paid Ads' 'Social Media' 'Referral' 'Walk-In'"`
	AssignedTo     *string  `json:"assigned_to"`
	Remarks        *string  `json:"remarks"`
}

type AssignLeadsRequest struct {
	LeadIDs    []int  `json:"lead_ids" validate:"required,min=1"`
	AssignedTo string `json:"assigned_to" validate:"required"`
}

type AssignLeadsResponse struct {
	Updated int `json:"updated"`
}

type NextCodeResponse struct {
	CustomerCode string `json:"customer_code"`
}

type LeadListResponse struct {
	Items []types.Lead `json:"items"`
	Total int          `json:"total"`
}

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// parseLeadFilter reads the facet and date-range constraints from the query
// string. Absent parameters and the literal "All" leave a facet unconstrained.
func parseLeadFilter(r *http.Request) types.LeadFilter {
	q := r.URL.Query()
	return types.LeadFilter{
		Status:     strings.TrimSpace(q.Get("status")),
		Source:     strings.TrimSpace(q.Get("source")),
		City:       strings.TrimSpace(q.Get("city")),
		AssignedTo: strings.TrimSpace(q.Get("assigned_to")),
		StartDate:  strings.TrimSpace(q.Get("start_date")),
		EndDate:    strings.TrimSpace(q.Get("end_date")),
	}
}

func parseLeadID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "leadID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid lead id")
	}
	return id, nil
}
