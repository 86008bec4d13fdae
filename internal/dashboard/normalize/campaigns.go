package normalize

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Campaign query names.
const (
	QueryCampaigns        = "campaigns"
	QueryCampaignChannels = "channels"
)

type campaignsSchema struct {
	Campaigns List[struct {
		ID     Text   `json:"id"`
		Name   Text   `json:"name"`
		Raised Number `json:"raised"`
		Cost   Number `json:"cost"`
		Goal   Number `json:"goal"`
		Donors Count  `json:"donors"`
	}] `json:"campaigns"`
}

type channelsSchema struct {
	Channels List[struct {
		Name    Text   `json:"name"`
		Revenue Number `json:"revenue"`
		Cost    Number `json:"cost"`
	}] `json:"channels"`
}

// Campaigns builds the campaign performance record.
func Campaigns(results fetch.Results) domain.CampaignRecord {
	rec := domain.CampaignRecord{
		Campaigns: []domain.Campaign{},
		Channels:  []domain.Channel{},
	}

	var campaigns campaignsSchema
	if decode(results.Get(QueryCampaigns), &campaigns) {
		for _, c := range campaigns.Campaigns {
			rec.Campaigns = append(rec.Campaigns, domain.Campaign{
				ID:     c.ID.String(),
				Name:   c.Name.String(),
				Raised: c.Raised.Float(),
				Cost:   c.Cost.Float(),
				Goal:   c.Goal.Float(),
				Donors: c.Donors.Int(),
			})
		}
	}

	var channels channelsSchema
	if decode(results.Get(QueryCampaignChannels), &channels) {
		for _, c := range channels.Channels {
			rec.Channels = append(rec.Channels, domain.Channel{
				Name:    c.Name.String(),
				Revenue: c.Revenue.Float(),
				Cost:    c.Cost.Float(),
			})
		}
	}

	return rec
}
