package normalize

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Revenue query names.
const (
	QueryStreams   = "streams"
	QueryMonthly   = "monthly"
	QueryRecurring = "recurring"
)

type streamsSchema struct {
	Streams List[struct {
		Source Text   `json:"source"`
		Amount Number `json:"amount"`
	}] `json:"streams"`
}

type monthlySchema struct {
	Months List[struct {
		Period   Text   `json:"period"`
		LastYear Number `json:"last_year"`
		ThisYear Number `json:"this_year"`
	}] `json:"months"`
}

type recurringSchema struct {
	Donors  Count  `json:"donors"`
	Revenue Number `json:"revenue"`
}

// Revenue builds the revenue diversification record.
func Revenue(results fetch.Results) domain.RevenueRecord {
	rec := domain.RevenueRecord{
		Streams: []domain.RevenueStream{},
		Monthly: []domain.MonthlyRevenue{},
	}

	var streams streamsSchema
	if decode(results.Get(QueryStreams), &streams) {
		for _, s := range streams.Streams {
			rec.Streams = append(rec.Streams, domain.RevenueStream{
				Source: s.Source.String(),
				Amount: s.Amount.Float(),
			})
		}
	}

	var monthly monthlySchema
	if decode(results.Get(QueryMonthly), &monthly) {
		for _, m := range monthly.Months {
			rec.Monthly = append(rec.Monthly, domain.MonthlyRevenue{
				Period:   m.Period.String(),
				LastYear: m.LastYear.Float(),
				ThisYear: m.ThisYear.Float(),
			})
		}
	}

	var recurring recurringSchema
	if decode(results.Get(QueryRecurring), &recurring) {
		rec.RecurringDonors = recurring.Donors.Int()
		rec.RecurringRevenue = recurring.Revenue.Float()
	}

	return rec
}
