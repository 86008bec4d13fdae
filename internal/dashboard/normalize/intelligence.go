package normalize

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Intelligence query names.
const (
	QueryRFM    = "rfm"
	QueryChurn  = "churn"
	QueryHealth = "health"
	QueryYoY    = "yoy"
)

type rfmSchema struct {
	Segments List[struct {
		Name         Text   `json:"name"`
		Count        Count  `json:"count"`
		AverageScore Number `json:"average_score"`
	}] `json:"segments"`
}

type churnSchema struct {
	High   Count `json:"high"`
	Medium Count `json:"medium"`
	Low    Count `json:"low"`
	Donors List[struct {
		ID             Text   `json:"id"`
		Name           Text   `json:"name"`
		Probability    Number `json:"probability"`
		LastGiftAmount Number `json:"last_gift_amount"`
	}] `json:"donors"`
}

type healthSchema struct {
	AverageScore Number `json:"average_score"`
	Bands        List[struct {
		Band  Text  `json:"band"`
		Count Count `json:"count"`
	}] `json:"bands"`
}

type yoySchema struct {
	Metrics List[struct {
		Name       Text   `json:"name"`
		LastPeriod Number `json:"last_period"`
		ThisPeriod Number `json:"this_period"`
	}] `json:"metrics"`
}

// Intelligence builds the donor intelligence record. Scores and
// probabilities are upstream values carried through unchanged.
func Intelligence(results fetch.Results) domain.IntelligenceRecord {
	rec := domain.IntelligenceRecord{
		RFMSegments:  []domain.RFMSegment{},
		AtRisk:       []domain.AtRiskDonor{},
		HealthBands:  []domain.HealthBand{},
		YearOverYear: []domain.PeriodPair{},
	}

	var rfm rfmSchema
	if decode(results.Get(QueryRFM), &rfm) {
		for _, s := range rfm.Segments {
			rec.RFMSegments = append(rec.RFMSegments, domain.RFMSegment{
				Name:         s.Name.String(),
				Count:        s.Count.Int(),
				AverageScore: s.AverageScore.Float(),
			})
		}
	}

	var churn churnSchema
	if decode(results.Get(QueryChurn), &churn) {
		rec.Churn = domain.ChurnBands{
			High:   churn.High.Int(),
			Medium: churn.Medium.Int(),
			Low:    churn.Low.Int(),
		}
		for _, d := range churn.Donors {
			rec.AtRisk = append(rec.AtRisk, domain.AtRiskDonor{
				ID:             d.ID.String(),
				Name:           d.Name.String(),
				Probability:    d.Probability.Float(),
				LastGiftAmount: d.LastGiftAmount.Float(),
			})
		}
	}

	var health healthSchema
	if decode(results.Get(QueryHealth), &health) {
		rec.HealthAverage = health.AverageScore.Float()
		for _, b := range health.Bands {
			rec.HealthBands = append(rec.HealthBands, domain.HealthBand{
				Band:  b.Band.String(),
				Count: b.Count.Int(),
			})
		}
	}

	var yoy yoySchema
	if decode(results.Get(QueryYoY), &yoy) {
		for _, m := range yoy.Metrics {
			rec.YearOverYear = append(rec.YearOverYear, domain.PeriodPair{
				Name:       m.Name.String(),
				LastPeriod: m.LastPeriod.Float(),
				ThisPeriod: m.ThisPeriod.Float(),
			})
		}
	}

	return rec
}
