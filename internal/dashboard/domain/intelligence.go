package domain

// RFMSegment is one upstream RFM segment. Scores are opaque.
type RFMSegment struct {
	Name         string  `json:"name"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
}

// ChurnBands are donor counts per churn-risk band.
type ChurnBands struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// AtRiskDonor is a donor flagged by the upstream churn model.
type AtRiskDonor struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Probability    float64 `json:"probability"`
	LastGiftAmount float64 `json:"last_gift_amount"`
}

// HealthBand counts donors per health-score band.
type HealthBand struct {
	Band  string `json:"band"`
	Count int    `json:"count"`
}

// PeriodPair is one metric observed in the previous and current period.
type PeriodPair struct {
	Name       string  `json:"name"`
	LastPeriod float64 `json:"last_period"`
	ThisPeriod float64 `json:"this_period"`
}

// IntelligenceRecord backs the donor intelligence tab.
type IntelligenceRecord struct {
	RFMSegments   []RFMSegment  `json:"rfm_segments"`
	Churn         ChurnBands    `json:"churn"`
	AtRisk        []AtRiskDonor `json:"at_risk"`
	HealthAverage float64       `json:"health_average"`
	HealthBands   []HealthBand  `json:"health_bands"`
	YearOverYear  []PeriodPair  `json:"year_over_year"`
}

func (IntelligenceRecord) Tab() string       { return TabIntelligence }
func (IntelligenceRecord) IsSynthetic() bool { return false }

// IntelligenceMetrics are derived from an IntelligenceRecord.
type IntelligenceMetrics struct {
	SegmentShares         []Share `json:"segment_shares"`
	RiskShares            []Share `json:"risk_shares"`
	HealthShares          []Share `json:"health_shares"`
	ExpectedRevenueAtRisk float64 `json:"expected_revenue_at_risk"`
	Deltas                []Delta `json:"deltas"`
}

func (IntelligenceMetrics) Tab() string { return TabIntelligence }
