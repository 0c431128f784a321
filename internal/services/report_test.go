package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-power/apiserver/types"
)

func newReportService(t *testing.T, seed []types.Lead) *ReportService {
	t.Helper()
	return NewReportService(newLeadService(t, seed))
}

func TestOverview(t *testing.T) {
	svc := newReportService(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusWon, AssignedTo: "Syed Adeel"},
		{ID: 2, Status: types.LeadStatusOpen, AssignedTo: "Syed Adeel"},
		{ID: 3, Status: types.LeadStatusLost, AssignedTo: "Saad Saleem"},
	})

	got := svc.Overview(adminSession())
	assert.Equal(t, Overview{TotalLeads: 3, WonLeads: 1, ConversionRate: 33.3}, got)
}

func TestOverviewEmptyCollection(t *testing.T) {
	svc := newReportService(t, nil)
	assert.Equal(t, Overview{}, svc.Overview(adminSession()))
}

func TestOverviewScopedForSales(t *testing.T) {
	svc := newReportService(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusWon, AssignedTo: "Syed Adeel"},
		{ID: 2, Status: types.LeadStatusOpen, AssignedTo: "Syed Adeel"},
		{ID: 3, Status: types.LeadStatusWon, AssignedTo: "Saad Saleem"},
	})

	got := svc.Overview(salesSession())
	assert.Equal(t, Overview{TotalLeads: 2, WonLeads: 1, ConversionRate: 50}, got)
}

func TestCountByStatus(t *testing.T) {
	svc := newReportService(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusOpen},
		{ID: 2, Status: types.LeadStatusOpen},
		{ID: 3, Status: types.LeadStatusWon},
	})

	got := svc.CountByStatus(adminSession())
	assert.Equal(t, map[string]int{
		types.LeadStatusOpen: 2,
		types.LeadStatusWon:  1,
	}, got)
}

func TestPerformanceGroupsByRepSorted(t *testing.T) {
	svc := newReportService(t, []types.Lead{
		{ID: 1, Status: types.LeadStatusWon, AssignedTo: "Syed Adeel"},
		{ID: 2, Status: types.LeadStatusOpen, AssignedTo: "Syed Adeel"},
		{ID: 3, Status: types.LeadStatusOpen, AssignedTo: "Saad Saleem"},
		{ID: 4, Status: types.LeadStatusOpen, AssignedTo: types.Unassigned},
	})

	got := svc.Performance(adminSession())
	require.Len(t, got, 3)
	assert.Equal(t, []RepPerformance{
		{Rep: "Saad Saleem", Assigned: 1, Won: 0, ConversionRate: 0},
		{Rep: "Syed Adeel", Assigned: 2, Won: 1, ConversionRate: 50},
		{Rep: types.Unassigned, Assigned: 1, Won: 0, ConversionRate: 0},
	}, got)
}
