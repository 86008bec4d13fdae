package projector

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
)

// Stat is one headline figure of a tab.
type Stat struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Summary returns the headline figures of vm, or nil when vm is not Ready.
func Summary(vm view.ViewModel) []Stat {
	if !vm.Ready() {
		return nil
	}

	switch m := vm.Metrics.(type) {
	case domain.LifecycleMetrics:
		var donors float64
		if rec, ok := vm.Record.(domain.LifecycleRecord); ok {
			donors = float64(rec.TotalDonors)
		}
		return []Stat{
			{"Retention rate", m.RetentionRate, "%"},
			{"Average lifetime value", m.AverageLifetimeValue, "$"},
			{"Pipeline donors", donors, ""},
		}
	case domain.IntelligenceMetrics:
		stats := []Stat{{"Expected revenue at risk", m.ExpectedRevenueAtRisk, "$"}}
		if rec, ok := vm.Record.(domain.IntelligenceRecord); ok {
			stats = append(stats, Stat{"Average health score", rec.HealthAverage, ""})
		}
		return stats
	case domain.CampaignMetrics:
		return []Stat{
			{"Total raised", m.TotalRaised, "$"},
			{"Total cost", m.TotalCost, "$"},
			{"Overall ROI", m.OverallROI, "%"},
		}
	case domain.RevenueMetrics:
		return []Stat{
			{"Year to date", m.YearToDate.ThisPeriod, "$"},
			{"Year-to-date change", m.YearToDate.ChangePct, "%"},
			{"Diversification index", m.DiversificationIndex, ""},
			{"Largest source share", m.LargestSourceShare, "%"},
			{"Average recurring gift", m.AverageRecurringGift, "$"},
		}
	case domain.CohortMetrics:
		first := 0.0
		if len(m.AverageRetention) > 1 {
			first = m.AverageRetention[1]
		}
		return []Stat{
			{"Cohorts", float64(len(m.RetentionGrid)), ""},
			{"Average second-period retention", first, "%"},
		}
	case domain.CashflowMetrics:
		return []Stat{
			{"Total cashflow", m.GrandTotal, "$"},
			{"Months", float64(len(m.MonthTotals)), ""},
		}
	}
	return nil
}

// PeakMonth returns the cashflow peak month of vm, if any.
func PeakMonth(vm view.ViewModel) string {
	if m, ok := vm.Metrics.(domain.CashflowMetrics); ok {
		return m.PeakMonth
	}
	return ""
}
