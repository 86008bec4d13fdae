package domain

// Campaign is one fundraising campaign.
type Campaign struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Raised float64 `json:"raised"`
	Cost   float64 `json:"cost"`
	Goal   float64 `json:"goal"`
	Donors int     `json:"donors"`
}

// Channel is revenue and spend for one solicitation channel.
type Channel struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
}

// CampaignRecord backs the campaign performance tab.
type CampaignRecord struct {
	Campaigns []Campaign `json:"campaigns"`
	Channels  []Channel  `json:"channels"`
}

func (CampaignRecord) Tab() string       { return TabCampaigns }
func (CampaignRecord) IsSynthetic() bool { return false }

// CampaignPerformance is per-campaign derived output.
type CampaignPerformance struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ROI           float64 `json:"roi"`
	GoalProgress  float64 `json:"goal_progress"`
	CostPerDollar float64 `json:"cost_per_dollar"`
	AverageGift   float64 `json:"average_gift"`
}

// ChannelPerformance is per-channel derived output.
type ChannelPerformance struct {
	Name string  `json:"name"`
	ROI  float64 `json:"roi"`
}

// CampaignMetrics are derived from a CampaignRecord.
type CampaignMetrics struct {
	Performance   []CampaignPerformance `json:"performance"`
	Channels      []ChannelPerformance  `json:"channels"`
	RevenueShares []Share               `json:"revenue_shares"`
	TotalRaised   float64               `json:"total_raised"`
	TotalCost     float64               `json:"total_cost"`
	OverallROI    float64               `json:"overall_roi"`
}

func (CampaignMetrics) Tab() string { return TabCampaigns }
