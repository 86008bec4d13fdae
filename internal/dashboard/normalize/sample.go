package normalize

import "nathanbeddoewebdev/donorlens/internal/dashboard/domain"

// Sample data sets used when a tab with synthetic fallback cannot reach its
// live source. They are constants: every call returns an identical, freshly
// allocated copy so callers may not alias each other.

// SampleCohorts returns six quarterly acquisition cohorts. Each cohort's
// retained counts are non-increasing and never exceed its acquired count.
func SampleCohorts() []domain.Cohort {
	return []domain.Cohort{
		{Label: "2023-Q1", Acquired: 420, Retained: []int{268, 214, 189, 172, 160}},
		{Label: "2023-Q2", Acquired: 385, Retained: []int{239, 193, 170, 154}},
		{Label: "2023-Q3", Acquired: 450, Retained: []int{297, 241, 212}},
		{Label: "2023-Q4", Acquired: 610, Retained: []int{372, 299}},
		{Label: "2024-Q1", Acquired: 398, Retained: []int{263}},
		{Label: "2024-Q2", Acquired: 415, Retained: []int{}},
	}
}

var (
	sampleMonths     = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	sampleCategories = []string{"Individual", "Major gifts", "Foundations", "Events", "Corporate"}
	sampleValues     = [][]float64{
		{18200, 15400, 16800, 17100, 16200, 15900, 14800, 15100, 17600, 19400, 26800, 41200},
		{25000, 0, 40000, 15000, 0, 30000, 0, 10000, 35000, 20000, 45000, 90000},
		{0, 50000, 0, 0, 75000, 0, 0, 40000, 0, 60000, 0, 25000},
		{0, 0, 8500, 0, 32000, 0, 0, 0, 12500, 0, 0, 48000},
		{5000, 5000, 7500, 5000, 5000, 12000, 5000, 5000, 7500, 5000, 9000, 22000},
	}
)

// SampleCashflowGrid returns a twelve-month grid over five revenue
// categories with an end-of-year peak.
func SampleCashflowGrid() domain.CashflowGrid {
	months := append([]string(nil), sampleMonths...)
	categories := append([]string(nil), sampleCategories...)
	values := make([][]float64, len(sampleValues))
	for i, row := range sampleValues {
		values[i] = append([]float64(nil), row...)
	}
	return domain.CashflowGrid{Months: months, Categories: categories, Values: values}
}
