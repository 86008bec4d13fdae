package domain

// RevenueStream is revenue attributed to one source type.
type RevenueStream struct {
	Source string  `json:"source"`
	Amount float64 `json:"amount"`
}

// MonthlyRevenue pairs a month with the same month one year earlier.
type MonthlyRevenue struct {
	Period   string  `json:"period"`
	LastYear float64 `json:"last_year"`
	ThisYear float64 `json:"this_year"`
}

// RevenueRecord backs the revenue diversification tab.
type RevenueRecord struct {
	Streams          []RevenueStream  `json:"streams"`
	Monthly          []MonthlyRevenue `json:"monthly"`
	RecurringDonors  int              `json:"recurring_donors"`
	RecurringRevenue float64          `json:"recurring_revenue"`
}

func (RevenueRecord) Tab() string       { return TabRevenue }
func (RevenueRecord) IsSynthetic() bool { return false }

// RevenueMetrics are derived from a RevenueRecord.
type RevenueMetrics struct {
	SourceShares          []Share `json:"source_shares"`
	DiversificationIndex  float64 `json:"diversification_index"`
	LargestSourceShare    float64 `json:"largest_source_share"`
	MonthlyDeltas         []Delta `json:"monthly_deltas"`
	YearToDate            Delta   `json:"year_to_date"`
	AverageRecurringGift  float64 `json:"average_recurring_gift"`
	RecurringRevenueShare float64 `json:"recurring_revenue_share"`
}

func (RevenueMetrics) Tab() string { return TabRevenue }
