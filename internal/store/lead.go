package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/evergreen-power/apiserver/internal/docstore"
	"github.com/evergreen-power/apiserver/types"
)

const customerCodePrefix = "Evr"

// LeadRepository owns the leads collection for the lifetime of the process.
// The working set is loaded once at construction; every mutation persists the
// entire collection before reporting success. Other processes writing to the
// same store overwrite wholesale, so across processes the last writer wins.
type LeadRepository struct {
	docs docstore.Store

	mu     sync.Mutex
	leads  []types.Lead
	nextID int
}

// NewLeadRepository loads the working set and computes the next lead id as
// max(existing)+1. The id counter is tracked in memory from then on and is
// never reused, even after deletes.
func NewLeadRepository(ctx context.Context, docs docstore.Store) (*LeadRepository, error) {
	leads, err := docs.LoadLeads(ctx)
	if err != nil {
		return nil, err
	}

	// Older records can lack a customer code or an assignee. Defaulting happens
	// once here, not in every consumer.
	for i := range leads {
		if leads[i].CustomerCode == "" {
			leads[i].CustomerCode = "N/A"
		}
		if leads[i].AssignedTo == "" {
			leads[i].AssignedTo = types.Unassigned
		}
	}

	next := 1
	for _, lead := range leads {
		if lead.ID >= next {
			next = lead.ID + 1
		}
	}

	return &LeadRepository{docs: docs, leads: leads, nextID: next}, nil
}

// LeadInput carries the caller-supplied fields for a new lead. Identity
// fields (id, customer code, creation date) are assigned by the repository.
type LeadInput struct {
	Name           string
	Phone          string
	Sector         string
	City           string
	MonthlyBill    float64
	RequiredSystem string
	SystemType     string
	Status         string
	Source         string
	AssignedTo     string
	Remarks        string
}

// LeadUpdate is a partial update; nil fields are preserved. Identity fields
// are immutable and have no counterpart here.
type LeadUpdate struct {
	Name           *string
	Phone          *string
	Sector         *string
	City           *string
	MonthlyBill    *float64
	RequiredSystem *string
	SystemType     *string
	Status         *string
	Source         *string
	AssignedTo     *string
	Remarks        *string
}

func (r *LeadRepository) Create(ctx context.Context, in LeadInput) (types.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead := types.Lead{
		ID:             r.nextID,
		Name:           in.Name,
		Phone:          in.Phone,
		Sector:         in.Sector,
		City:           in.City,
		MonthlyBill:    in.MonthlyBill,
		RequiredSystem: in.RequiredSystem,
		SystemType:     in.SystemType,
		Status:         in.Status,
		Source:         in.Source,
		AssignedTo:     in.AssignedTo,
		CustomerCode:   r.nextCustomerCode(),
		Remarks:        in.Remarks,
		DateCreated:    time.Now().Format(types.DateFormat),
	}

	next := append(append([]types.Lead{}, r.leads...), lead)
	if err := r.docs.SaveLeads(ctx, next); err != nil {
		return types.Lead{}, err
	}
	r.leads = next
	r.nextID++
	return lead, nil
}

func (r *LeadRepository) Get(id int) (types.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, lead := range r.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return types.Lead{}, ErrNotFound
}

func (r *LeadRepository) Update(ctx context.Context, id int, upd LeadUpdate) (types.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return types.Lead{}, ErrNotFound
	}

	merged := r.leads[idx]
	applyString(&merged.Name, upd.Name)
	applyString(&merged.Phone, upd.Phone)
	applyString(&merged.Sector, upd.Sector)
	applyString(&merged.City, upd.City)
	if upd.MonthlyBill != nil {
		merged.MonthlyBill = *upd.MonthlyBill
	}
	applyString(&merged.RequiredSystem, upd.RequiredSystem)
	applyString(&merged.SystemType, upd.SystemType)
	applyString(&merged.Status, upd.Status)
	applyString(&merged.Source, upd.Source)
	applyString(&merged.AssignedTo, upd.AssignedTo)
	applyString(&merged.Remarks, upd.Remarks)

	next := append([]types.Lead{}, r.leads...)
	next[idx] = merged
	if err := r.docs.SaveLeads(ctx, next); err != nil {
		return types.Lead{}, err
	}
	r.leads = next
	return merged, nil
}

func (r *LeadRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}

	next := append(append([]types.Lead{}, r.leads[:idx]...), r.leads[idx+1:]...)
	if err := r.docs.SaveLeads(ctx, next); err != nil {
		return err
	}
	r.leads = next
	return nil
}

// Assign sets the assignee on every listed lead and persists once. If any id
// is absent the whole operation is refused with ErrNotFound.
func (r *LeadRepository) Assign(ctx context.Context, ids []int, assignee string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := append([]types.Lead{}, r.leads...)
	for _, id := range ids {
		idx := r.indexOf(id)
		if idx < 0 {
			return 0, ErrNotFound
		}
		next[idx].AssignedTo = assignee
	}

	if err := r.docs.SaveLeads(ctx, next); err != nil {
		return 0, err
	}
	r.leads = next
	return len(ids), nil
}

// List returns the leads matching every constrained facet of the filter, in
// working-set order.
func (r *LeadRepository) List(filter types.LeadFilter) []types.Lead {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]types.Lead, 0, len(r.leads))
	for _, lead := range r.leads {
		if !matchFacet(filter.Status, lead.Status) ||
			!matchFacet(filter.Source, lead.Source) ||
			!matchFacet(filter.City, lead.City) ||
			!matchFacet(filter.AssignedTo, lead.AssignedTo) {
			continue
		}
		// Inclusive on both ends; lexical compare is safe because the date
		// format is fixed-width and zero-padded.
		if filter.StartDate != "" && lead.DateCreated < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && lead.DateCreated > filter.EndDate {
			continue
		}
		out = append(out, lead)
	}
	return out
}

// NextCustomerCode previews the code the next created lead would receive.
func (r *LeadRepository) NextCustomerCode() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextCustomerCode()
}

// nextCustomerCode scans every Evr-prefixed code, parses the numeric suffix
// (skipping entries that fail to parse), and formats max+1 with three-digit
// zero padding. Values past 999 widen instead of wrapping. Unlike the lead-id
// counter this is recomputed from the full collection on every call.
func (r *LeadRepository) nextCustomerCode() string {
	max := 0
	for _, lead := range r.leads {
		if !strings.HasPrefix(lead.CustomerCode, customerCodePrefix) {
			continue
		}
		n, err := strconv.Atoi(lead.CustomerCode[len(customerCodePrefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", customerCodePrefix, max+1)
}

func (r *LeadRepository) indexOf(id int) int {
	for i, lead := range r.leads {
		if lead.ID == id {
			return i
		}
	}
	return -1
}

// matchFacet treats "" and "All" as no constraint, never as literal values.
func matchFacet(want, have string) bool {
	return want == "" || want == types.FacetAll || want == have
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
