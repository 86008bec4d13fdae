package domain

// CashflowGrid is revenue by category (rows) and month (columns).
// Values is always len(Categories) x len(Months).
type CashflowGrid struct {
	Months     []string    `json:"months"`
	Categories []string    `json:"categories"`
	Values     [][]float64 `json:"values"`
}

// ForecastPoint compares projected and actual revenue for one period.
type ForecastPoint struct {
	Period    string  `json:"period"`
	Projected float64 `json:"projected"`
	Actual    float64 `json:"actual"`
}

// CashflowRecord backs the cashflow tab.
type CashflowRecord struct {
	Grid     CashflowGrid    `json:"grid"`
	Forecast []ForecastPoint `json:"forecast"`
	Placeholder
}

func (CashflowRecord) Tab() string { return TabCashflow }

// CashflowMetrics are derived from a CashflowRecord.
type CashflowMetrics struct {
	MonthTotals    []float64 `json:"month_totals"`
	CategoryTotals []float64 `json:"category_totals"`
	GrandTotal     float64   `json:"grand_total"`
	PeakMonth      string    `json:"peak_month"`
	Variance       []Delta   `json:"variance"`
}

func (CashflowMetrics) Tab() string { return TabCashflow }
