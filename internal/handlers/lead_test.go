package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-power/apiserver/types"
)

func TestLeadLifecycle(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router, "admin", "admin@123")

	rec := doRequest(t, router, http.MethodPost, "/leads/", token, CreateLeadRequest{
		Name:        "Imran Khan",
		Phone:       "0300-1234567",
		City:        "Islamabad",
		MonthlyBill: 45000,
		SystemType:  types.SystemTypeOnGrid,
		Source:      types.LeadSourceReferral,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[types.Lead](t, rec)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "Evr001", created.CustomerCode)
	assert.Equal(t, types.LeadStatusOpen, created.Status)
	assert.Equal(t, types.Unassigned, created.AssignedTo)
	assert.Equal(t, time.Now().Format(types.DateFormat), created.DateCreated)

	status := types.LeadStatusWon
	rec = doRequest(t, router, http.MethodPatch, "/leads/1", token, UpdateLeadRequest{Status: &status})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeBody[types.Lead](t, rec)
	assert.Equal(t, types.LeadStatusWon, updated.Status)
	assert.Equal(t, "Evr001", updated.CustomerCode)

	rec = doRequest(t, router, http.MethodGet, "/leads/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[LeadListResponse](t, rec)
	assert.Equal(t, 1, list.Total)

	rec = doRequest(t, router, http.MethodDelete, "/leads/1", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/leads/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadRoutesRequireAuth(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/leads/"},
		{http.MethodPost, "/leads/"},
		{http.MethodGet, "/leads/1"},
		{http.MethodPost, "/leads/assign"},
	} {
		rec := doRequest(t, router, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSalesSeesOnlyOwnLeads(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Name: "Lead A", Phone: "1", AssignedTo: "Syed Adeel", Status: types.LeadStatusOpen},
		{ID: 2, Name: "Lead B", Phone: "2", AssignedTo: "Saad Saleem", Status: types.LeadStatusOpen},
	})
	token := login(t, router, "Syed.Adeel", "adeel123")

	rec := doRequest(t, router, http.MethodGet, "/leads/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[LeadListResponse](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Lead A", list.Items[0].Name)

	rec = doRequest(t, router, http.MethodGet, "/leads/2", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSalesCreateIsAlwaysSelfAssigned(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router, "Syed.Adeel", "adeel123")

	rec := doRequest(t, router, http.MethodPost, "/leads/", token, CreateLeadRequest{
		Name:       "Lead C",
		Phone:      "3",
		AssignedTo: "Saad Saleem",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decodeBody[types.Lead](t, rec)
	assert.Equal(t, "Syed Adeel", created.AssignedTo)
}

func TestSalesCannotReassignLead(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Name: "Lead A", Phone: "1", AssignedTo: "Syed Adeel", Status: types.LeadStatusOpen},
	})
	token := login(t, router, "Syed.Adeel", "adeel123")

	assignee := "Saad Saleem"
	rec := doRequest(t, router, http.MethodPatch, "/leads/1", token, UpdateLeadRequest{AssignedTo: &assignee})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBulkAssignIsAdminOnly(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Name: "Lead A", Phone: "1", AssignedTo: types.Unassigned, Status: types.LeadStatusOpen},
		{ID: 2, Name: "Lead B", Phone: "2", AssignedTo: types.Unassigned, Status: types.LeadStatusOpen},
	})

	salesToken := login(t, router, "Syed.Adeel", "adeel123")
	rec := doRequest(t, router, http.MethodPost, "/leads/assign", salesToken, AssignLeadsRequest{
		LeadIDs:    []int{1, 2},
		AssignedTo: "Syed Adeel",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken := login(t, router, "admin", "admin@123")
	rec = doRequest(t, router, http.MethodPost, "/leads/assign", adminToken, AssignLeadsRequest{
		LeadIDs:    []int{1, 2},
		AssignedTo: "Syed Adeel",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[AssignLeadsResponse](t, rec)
	assert.Equal(t, 2, resp.Updated)
}

func TestAssignRejectsUnknownRep(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Name: "Lead A", Phone: "1", AssignedTo: types.Unassigned, Status: types.LeadStatusOpen},
	})
	token := login(t, router, "admin", "admin@123")

	rec := doRequest(t, router, http.MethodPost, "/leads/assign", token, AssignLeadsRequest{
		LeadIDs:    []int{1},
		AssignedTo: "Nobody Known",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateLeadValidation(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router, "admin", "admin@123")

	tests := []struct {
		name string
		req  CreateLeadRequest
	}{
		{"missing name", CreateLeadRequest{Phone: "1"}},
		{"missing phone", CreateLeadRequest{Name: "Lead"}},
		{"unknown city", CreateLeadRequest{Name: "Lead", Phone: "1", City: "Peshawar"}},
		{"unknown status", CreateLeadRequest{Name: "Lead", Phone: "1", Status: "Pending"}},
		{"negative bill", CreateLeadRequest{Name: "Lead", Phone: "1", MonthlyBill: -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, router, http.MethodPost, "/leads/", token, tc.req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListFilterQueryParams(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Name: "A", Phone: "1", City: "Islamabad", Status: types.LeadStatusOpen, DateCreated: "2026-08-01"},
		{ID: 2, Name: "B", Phone: "2", City: "Lahore", Status: types.LeadStatusWon, DateCreated: "2026-08-15"},
		{ID: 3, Name: "C", Phone: "3", City: "Islamabad", Status: types.LeadStatusWon, DateCreated: "2026-08-20"},
	})
	token := login(t, router, "admin", "admin@123")

	rec := doRequest(t, router, http.MethodGet, "/leads/?status=Won&city=Islamabad", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[LeadListResponse](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, 3, list.Items[0].ID)

	rec = doRequest(t, router, http.MethodGet, "/leads/?status=All&start_date=2026-08-10&end_date=2026-08-15", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list = decodeBody[LeadListResponse](t, rec)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, 2, list.Items[0].ID)
}

func TestNextCodePreviewDoesNotAllocate(t *testing.T) {
	router := newTestRouter(t, []types.Lead{
		{ID: 1, Name: "A", Phone: "1", CustomerCode: "Evr002"},
	})
	token := login(t, router, "admin", "admin@123")

	for i := 0; i < 2; i++ {
		rec := doRequest(t, router, http.MethodGet, "/leads/next-code", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeBody[NextCodeResponse](t, rec)
		assert.Equal(t, "Evr003", resp.CustomerCode)
	}
}

func TestCustomerCodesNeverRepeat(t *testing.T) {
	router := newTestRouter(t, nil)
	token := login(t, router, "admin", "admin@123")

	for i := 1; i <= 3; i++ {
		rec := doRequest(t, router, http.MethodPost, "/leads/", token, CreateLeadRequest{
			Name:  fmt.Sprintf("Lead %d", i),
			Phone: fmt.Sprintf("%d", i),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		created := decodeBody[types.Lead](t, rec)
		assert.Equal(t, fmt.Sprintf("Evr%03d", i), created.CustomerCode)
	}
}
