package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-power/apiserver/internal/services"
	"github.com/evergreen-power/apiserver/types"
)

func TestReportOverview(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusWon, AssignedTo: "Syed Adeel"},
		{ID: 2, Status: types.LeadStatusOpen, AssignedTo: "Syed Adeel"},
		{ID: 3, Status: types.LeadStatusOpen, AssignedTo: "Saad Saleem"},
		{ID: 4, Status: types.LeadStatusLost, AssignedTo: "Saad Saleem"},
	})
	token := login(t, router, "admin", "admin@123")

	rec := doRequest(t, router, http.MethodGet, "/reports/overview", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[services.Overview](t, rec)
	assert.Equal(t, services.Overview{TotalLeads: 4, WonLeads: 1, ConversionRate: 25}, got)
}

func TestReportOverviewScopedForSales(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusWon, AssignedTo: "Syed Adeel"},
		{ID: 2, Status: types.LeadStatusOpen, AssignedTo: "Saad Saleem"},
	})
	token := login(t, router, "Syed.Adeel", "adeel123")

	rec := doRequest(t, router, http.MethodGet, "/reports/overview", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[services.Overview](t, rec)
	assert.Equal(t, services.Overview{TotalLeads: 1, WonLeads: 1, ConversionRate: 100}, got)
}

func TestReportPerformanceIsAdminOnly(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router, "Syed.Adeel", "adeel123")

	rec := doRequest(t, router, http.MethodGet, "/reports/performance", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReportCountsByStatus(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusOpen},
		{ID: 2, Status: types.LeadStatusOpen},
		{ID: 3, Status: types.LeadStatusWon},
	})
	token := login(t, router, "admin", "admin@123")

	rec := doRequest(t, router, http.MethodGet, "/reports/status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody[CountsResponse](t, rec)
	assert.Equal(t, map[string]int{types.LeadStatusOpen: 2, types.LeadStatusWon: 1}, got.Counts)
}
