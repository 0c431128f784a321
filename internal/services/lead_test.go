package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-power/apiserver/internal/docstore"
	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/types"
)

func newLeadService(t *testing.T, seed []types.Lead) *LeadService {
	t.Helper()
	mem := docstore.NewMemoryStore()
	require.NoError(t, mem.SaveLeads(context.Background(), seed))

	leads, err := store.NewLeadRepository(context.Background(), mem)
	require.NoError(t, err)
	users, err := store.NewUserRepository(context.Background(), mem)
	require.NoError(t, err)

	return NewLeadService(leads, users)
}

func adminSession() Session {
	return Session{UserID: 1, Username: "admin", DisplayName: "Admin User", Role: types.RoleAdmin}
}

func salesSession() Session {
	return Session{UserID: 2, Username: "Syed.Adeel", DisplayName: "Syed Adeel", Role: types.RoleSales}
}

func TestSalesListIsScopedToOwnLeads(t *testing.T) {
	svc := newLeadService(t, []types.Lead{
		{ID: 1, AssignedTo: "Syed Adeel", Status: types.LeadStatusOpen},
		{ID: 2, AssignedTo: "Saad Saleem", Status: types.LeadStatusOpen},
		{ID: 3, AssignedTo: "Syed Adeel", Status: types.LeadStatusWon},
	})

	got := svc.List(salesSession(), types.LeadFilter{})
	require.Len(t, got, 2)
	for _, lead := range got {
		assert.Equal(t, "Syed Adeel", lead.AssignedTo)
	}

	// The session identity wins even if the caller asks for someone else.
	got = svc.List(salesSession(), types.LeadFilter{AssignedTo: "Saad Saleem"})
	require.Len(t, got, 2)

	assert.Len(t, svc.List(adminSession(), types.LeadFilter{}), 3)
}

func TestSalesCannotSeeOtherRepsLead(t *testing.T) {
	svc := newLeadService(t, []types.Lead{{ID: 1, AssignedTo: "Saad Saleem"}})

	_, err := svc.Get(salesSession(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	err = svc.Delete(context.Background(), salesSession(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSalesCreateIsSelfAssigned(t *testing.T) {
	svc := newLeadService(t, nil)

	lead, err := svc.Create(context.Background(), salesSession(), store.LeadInput{
		Name:       "Walk In Customer",
		Phone:      "0345-1112223",
		AssignedTo: "Saad Saleem", // ignored for sales sessions
	})
	require.NoError(t, err)
	assert.Equal(t, "Syed Adeel", lead.AssignedTo)
}

func TestAdminCreateDefaultsToUnassigned(t *testing.T) {
	svc := newLeadService(t, nil)

	lead, err := svc.Create(context.Background(), adminSession(), store.LeadInput{
		Name:  "No Owner Yet",
		Phone: "0345-0000000",
	})
	require.NoError(t, err)
	assert.Equal(t, types.Unassigned, lead.AssignedTo)
}

func TestCreateValidatesAssignee(t *testing.T) {
	svc := newLeadService(t, nil)

	_, err := svc.Create(context.Background(), adminSession(), store.LeadInput{
		Name:       "Bad Assignee",
		Phone:      "0345-0000000",
		AssignedTo: "Nobody Special",
	})
	assert.ErrorIs(t, err, ErrUnknownAssignee)
}

func TestSalesCannotReassign(t *testing.T) {
	svc := newLeadService(t, []types.Lead{{ID: 1, AssignedTo: "Syed Adeel"}})

	other := "Saad Saleem"
	_, err := svc.Update(context.Background(), salesSession(), 1, store.LeadUpdate{AssignedTo: &other})
	assert.ErrorIs(t, err, ErrForbidden)

	won := types.LeadStatusWon
	lead, err := svc.Update(context.Background(), salesSession(), 1, store.LeadUpdate{Status: &won})
	require.NoError(t, err)
	assert.Equal(t, types.LeadStatusWon, lead.Status)
}

func TestBulkAssignValidatesAssignee(t *testing.T) {
	svc := newLeadService(t, []types.Lead{
		{ID: 1, AssignedTo: types.Unassigned},
		{ID: 2, AssignedTo: types.Unassigned},
	})

	_, err := svc.Assign(context.Background(), []int{1, 2}, "Nobody Special")
	assert.ErrorIs(t, err, ErrUnknownAssignee)

	updated, err := svc.Assign(context.Background(), []int{1, 2}, "Saad Saleem")
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	_, err = svc.Assign(context.Background(), []int{1}, types.Unassigned)
	assert.NoError(t, err, "unassigning is always legal")
}
