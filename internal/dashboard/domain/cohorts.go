package domain

// Cohort is a group of donors acquired in the same period. Retained[k] is
// how many were still giving k+1 periods later.
type Cohort struct {
	Label    string `json:"label"`
	Acquired int    `json:"acquired"`
	Retained []int  `json:"retained"`
}

// AcquisitionChannel is where a set of new donors came from.
type AcquisitionChannel struct {
	Name    string  `json:"name"`
	Donors  int     `json:"donors"`
	Revenue float64 `json:"revenue"`
}

// CohortRecord backs the acquisition cohort tab.
type CohortRecord struct {
	Cohorts  []Cohort             `json:"cohorts"`
	Channels []AcquisitionChannel `json:"channels"`
	Placeholder
}

func (CohortRecord) Tab() string { return TabCohorts }

// CohortMetrics are derived from a CohortRecord.
type CohortMetrics struct {
	// RetentionGrid[i][k] is the percent of cohort i retained after k+1 periods.
	RetentionGrid    [][]float64 `json:"retention_grid"`
	AverageRetention []float64   `json:"average_retention"`
	CohortDeltas     []Delta     `json:"cohort_deltas"`
	ChannelShares    []Share     `json:"channel_shares"`
	RevenuePerDonor  []Share     `json:"revenue_per_donor"`
}

func (CohortMetrics) Tab() string { return TabCohorts }
