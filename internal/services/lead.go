package services

import (
	"context"
	"errors"

	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/types"
)

var (
	// ErrUnknownAssignee is returned when assigned_to names no active sales rep.
	ErrUnknownAssignee = errors.New("assignee is not an active sales rep")
	// ErrForbidden is returned when a role attempts an operation it does not own.
	ErrForbidden = errors.New("operation not permitted for this role")
)

// LeadService applies role scoping and referential checks on top of the
// repository. Sales sessions only ever see and touch their own leads; admin
// sessions see everything.
type LeadService struct {
	leads *store.LeadRepository
	users *store.UserRepository
}

func NewLeadService(leads *store.LeadRepository, users *store.UserRepository) *LeadService {
	return &LeadService{leads: leads, users: users}
}

func (s *LeadService) List(sess Session, filter types.LeadFilter) []types.Lead {
	if sess.Role == types.RoleSales {
		filter.AssignedTo = sess.DisplayName
	}
	return s.leads.List(filter)
}

func (s *LeadService) Get(sess Session, id int) (types.Lead, error) {
	lead, err := s.leads.Get(id)
	if err != nil {
		return types.Lead{}, err
	}
	if sess.Role == types.RoleSales && lead.AssignedTo != sess.DisplayName {
		// Scoping hides other reps' leads entirely.
		return types.Lead{}, store.ErrNotFound
	}
	return lead, nil
}

func (s *LeadService) Create(ctx context.Context, sess Session, in store.LeadInput) (types.Lead, error) {
	if sess.Role == types.RoleSales {
		in.AssignedTo = sess.DisplayName
	} else {
		if in.AssignedTo == "" {
			in.AssignedTo = types.Unassigned
		}
		if err := s.validateAssignee(in.AssignedTo); err != nil {
			return types.Lead{}, err
		}
	}
	return s.leads.Create(ctx, in)
}

func (s *LeadService) Update(ctx context.Context, sess Session, id int, upd store.LeadUpdate) (types.Lead, error) {
	if _, err := s.Get(sess, id); err != nil {
		return types.Lead{}, err
	}
	if upd.AssignedTo != nil {
		if sess.Role == types.RoleSales {
			return types.Lead{}, ErrForbidden
		}
		if err := s.validateAssignee(*upd.AssignedTo); err != nil {
			return types.Lead{}, err
		}
	}
	return s.leads.Update(ctx, id, upd)
}

func (s *LeadService) Delete(ctx context.Context, sess Session, id int) error {
	if _, err := s.Get(sess, id); err != nil {
		return err
	}
	return s.leads.Delete(ctx, id)
}

// Assign reassigns a batch of leads in one persisted write. Admin only; the
// router enforces the role, the service enforces the assignee.
func (s *LeadService) Assign(ctx context.Context, ids []int, assignee string) (int, error) {
	if err := s.validateAssignee(assignee); err != nil {
		return 0, err
	}
	return s.leads.Assign(ctx, ids, assignee)
}

// NextCustomerCode previews the next code without allocating it.
func (s *LeadService) NextCustomerCode() string {
	return s.leads.NextCustomerCode()
}

func (s *LeadService) validateAssignee(name string) error {
	if name == types.Unassigned {
		return nil
	}
	for _, rep := range s.users.SalesDisplayNames() {
		if rep == name {
			return nil
		}
	}
	return ErrUnknownAssignee
}
