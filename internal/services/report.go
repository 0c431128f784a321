package services

import (
	"math"
	"sort"

	"github.com/evergreen-power/apiserver/types"
)

// ReportService aggregates lead data for the dashboard. It only reads; every
// view goes through the lead service so role scoping applies uniformly.
type ReportService struct {
	leads *LeadService
}

func NewReportService(leads *LeadService) *ReportService {
	return &ReportService{leads: leads}
}

// Overview is the top-level KPI block.
type Overview struct {
	TotalLeads     int     `json:"total_leads"`
	WonLeads       int     `json:"won_leads"`
	ConversionRate float64 `json:"conversion_rate"`
}

// RepPerformance is one sales rep's row in the performance table.
type RepPerformance struct {
	Rep            string  `json:"rep"`
	Assigned       int     `json:"assigned"`
	Won            int     `json:"won"`
	ConversionRate float64 `json:"conversion_rate"`
}

func (s *ReportService) Overview(sess Session) Overview {
	leads := s.leads.List(sess, types.LeadFilter{})
	won := 0
	for _, lead := range leads {
		if lead.Status == types.LeadStatusWon {
			won++
		}
	}
	return Overview{
		TotalLeads:     len(leads),
		WonLeads:       won,
		ConversionRate: rate(won, len(leads)),
	}
}

func (s *ReportService) CountByStatus(sess Session) map[string]int {
	return s.countBy(sess, func(l types.Lead) string { return l.Status })
}

func (s *ReportService) CountBySource(sess Session) map[string]int {
	return s.countBy(sess, func(l types.Lead) string { return l.Source })
}

func (s *ReportService) CountByCity(sess Session) map[string]int {
	return s.countBy(sess, func(l types.Lead) string { return l.City })
}

// Performance groups all leads by assignee. Admin surface; the Unassigned
// bucket is included so unowned leads stay visible.
func (s *ReportService) Performance(sess Session) []RepPerformance {
	assigned := map[string]int{}
	won := map[string]int{}
	for _, lead := range s.leads.List(sess, types.LeadFilter{}) {
		assigned[lead.AssignedTo]++
		if lead.Status == types.LeadStatusWon {
			won[lead.AssignedTo]++
		}
	}

	reps := make([]string, 0, len(assigned))
	for rep := range assigned {
		reps = append(reps, rep)
	}
	sort.Strings(reps)

	out := make([]RepPerformance, 0, len(reps))
	for _, rep := range reps {
		out = append(out, RepPerformance{
			Rep:            rep,
			Assigned:       assigned[rep],
			Won:            won[rep],
			ConversionRate: rate(won[rep], assigned[rep]),
		})
	}
	return out
}

func (s *ReportService) countBy(sess Session, key func(types.Lead) string) map[string]int {
	counts := map[string]int{}
	for _, lead := range s.leads.List(sess, types.LeadFilter{}) {
		counts[key(lead)]++
	}
	return counts
}

// rate is a percentage rounded to one decimal place.
func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
