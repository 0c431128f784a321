package types

// Lead statuses track an opportunity through the sales pipeline.
const (
	LeadStatusOpen          = "Open"
	LeadStatusFakeLead      = "Fake Lead"
	LeadStatusLost          = "Lost"
	LeadStatusNotInterested = "Not Interested"
	LeadStatusQuoteShared   = "Quote Shared"
	LeadStatusWon           = "Won"
)

const (
	LeadSourceOrganicSearch = "Organic Search"
	LeadSourcePaidAds       = "Paid Ads"
	LeadSourceSocialMedia   = "Social Media"
	LeadSourceReferral      = "Referral"
	LeadSourceWalkIn        = "Walk-In"
)

const (
	SystemTypeOnGrid  = "On Grid"
	SystemTypeHybrid  = "HyBrid"
	SystemTypeOffGrid = "OFF Grid"
)

// Unassigned is the sentinel assignee for leads without an owner.
const Unassigned = "Unassigned"

// FacetAll is accepted by list filters as "no constraint on this facet".
const FacetAll = "All"

// DateFormat is the fixed-width stamp used for date_created. Lexical
// comparison on this format matches chronological order.
const DateFormat = "2006-01-02"

// Cities is the fixed list of cities the sales team serves.
var Cities = []string{"Islamabad", "RawalPindi", "Taxila", "Wahcantt", "Lahore", "Karachi"}

// Lead is one sales opportunity. The JSON keys are the persisted layout;
// numeric fields stay JSON numbers, everything else is a string.
type Lead struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Sector         string  `json:"sector"`
	City           string  `json:"city"`
	MonthlyBill    float64 `json:"monthly_bill"`
	RequiredSystem string  `json:"required_system"`
	SystemType     string  `json:"system_type"`
	Status         string  `json:"status"`
	Source         string  `json:"source"`
	AssignedTo     string  `json:"assigned_to"`
	CustomerCode   string  `json:"customer_code"`
	Remarks        string  `json:"remarks"`
	DateCreated    string  `json:"date_created"`
}

// LeadFilter is an exact-match conjunction over the listed facets plus an
// inclusive date range on date_created. Empty values and FacetAll mean the
// facet is unconstrained.
type LeadFilter struct {
	Status     string
	Source     string
	City       string
	AssignedTo string
	StartDate  string
	EndDate    string
}
