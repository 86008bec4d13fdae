package domain

// StageCounts are current donor counts per lifecycle stage.
type StageCounts struct {
	Active      int `json:"active"`
	NewDonor    int `json:"new_donor"`
	Lapsed      int `json:"lapsed"`
	AtRisk      int `json:"at_risk"`
	Reactivated int `json:"reactivated"`
}

// Movement counts donors observed moving between two segments.
type Movement struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// LifecycleRecord backs the donor lifecycle tab.
type LifecycleRecord struct {
	Stages             StageCounts `json:"stages"`
	TotalPipelineValue float64     `json:"total_pipeline_value"`
	TotalDonors        int         `json:"total_donors"`
	Segments           []string    `json:"segments"`
	Movements          []Movement  `json:"movements"`
	GivingDonors       int         `json:"giving_donors"`
	GivingRevenue      float64     `json:"giving_revenue"`
}

func (LifecycleRecord) Tab() string       { return TabLifecycle }
func (LifecycleRecord) IsSynthetic() bool { return false }

// LifecycleMetrics are derived from a LifecycleRecord.
type LifecycleMetrics struct {
	RetentionRate        float64           `json:"retention_rate"`
	AverageLifetimeValue float64           `json:"average_lifetime_value"`
	StageShares          []Share           `json:"stage_shares"`
	GivingLevels         []HistogramBucket `json:"giving_levels"`
	Migration            Matrix            `json:"migration"`
}

func (LifecycleMetrics) Tab() string { return TabLifecycle }
