package bundles

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/dashboard/normalize"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Defaults returns the built-in tab definitions in display order. Paths
// containing {org} embed the organization id; the rest receive it as the
// org_id query parameter.
func Defaults() []Definition {
	return []Definition{
		{
			Name:  domain.TabLifecycle,
			Title: "Donor Lifecycle",
			Endpoints: []Endpoint{
				{normalize.QueryStages, "/analytics/donors/lifecycle"},
				{normalize.QueryPipeline, "/analytics/donors/pipeline"},
				{normalize.QueryMigration, "/organizations/{org}/analytics/segment-migration"},
				{normalize.QueryGiving, "/analytics/donors/giving-summary"},
			},
			Normalize: func(r fetch.Results) domain.Record { return normalize.Lifecycle(r) },
		},
		{
			Name:  domain.TabIntelligence,
			Title: "Donor Intelligence",
			Endpoints: []Endpoint{
				{normalize.QueryRFM, "/organizations/{org}/intelligence/rfm"},
				{normalize.QueryChurn, "/organizations/{org}/intelligence/churn-risk"},
				{normalize.QueryHealth, "/organizations/{org}/intelligence/health-scores"},
				{normalize.QueryYoY, "/analytics/giving/year-over-year"},
			},
			Normalize: func(r fetch.Results) domain.Record { return normalize.Intelligence(r) },
		},
		{
			Name:  domain.TabCampaigns,
			Title: "Campaign Performance",
			Endpoints: []Endpoint{
				{normalize.QueryCampaigns, "/analytics/campaigns"},
				{normalize.QueryCampaignChannels, "/analytics/campaigns/channels"},
			},
			Normalize: func(r fetch.Results) domain.Record { return normalize.Campaigns(r) },
		},
		{
			Name:  domain.TabRevenue,
			Title: "Revenue Diversification",
			Endpoints: []Endpoint{
				{normalize.QueryStreams, "/analytics/revenue/streams"},
				{normalize.QueryMonthly, "/analytics/revenue/monthly"},
				{normalize.QueryRecurring, "/analytics/revenue/recurring"},
			},
			Normalize: func(r fetch.Results) domain.Record { return normalize.Revenue(r) },
		},
		{
			Name:  domain.TabCohorts,
			Title: "Acquisition Cohorts",
			Endpoints: []Endpoint{
				{normalize.QueryCohorts, "/organizations/{org}/cohorts/acquisition"},
				{normalize.QueryAcquisitionChannels, "/organizations/{org}/cohorts/acquisition-channels"},
			},
			Normalize: func(r fetch.Results) domain.Record { return normalize.Cohorts(r) },
		},
		{
			Name:  domain.TabCashflow,
			Title: "Cashflow",
			Endpoints: []Endpoint{
				{normalize.QueryGrid, "/organizations/{org}/cashflow/grid"},
				{normalize.QueryForecast, "/organizations/{org}/cashflow/forecast"},
			},
			Normalize: func(r fetch.Results) domain.Record { return normalize.Cashflow(r) },
		},
	}
}
