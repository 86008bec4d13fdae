package normalize

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Cohort query names.
const (
	QueryCohorts             = "cohorts"
	QueryAcquisitionChannels = "channels"
)

type cohortsSchema struct {
	Cohorts List[struct {
		Label    Text        `json:"label"`
		Acquired Count       `json:"acquired"`
		Retained List[Count] `json:"retained"`
	}] `json:"cohorts"`
}

type acquisitionSchema struct {
	Channels List[struct {
		Name    Text   `json:"name"`
		Donors  Count  `json:"donors"`
		Revenue Number `json:"revenue"`
	}] `json:"channels"`
}

// Cohorts builds the acquisition cohort record. When the cohorts query
// fails, or its payload has no cohorts array, the cohort section is replaced
// by SampleCohorts and the record is flagged synthetic. Acquisition channels
// fall back to an empty list.
func Cohorts(results fetch.Results) domain.CohortRecord {
	rec := domain.CohortRecord{
		Cohorts:  []domain.Cohort{},
		Channels: []domain.AcquisitionChannel{},
		Placeholder: domain.Placeholder{
			SyntheticSources: []string{},
		},
	}

	res := results.Get(QueryCohorts)
	var cohorts cohortsSchema
	if hasArray(res, "cohorts") && decode(res, &cohorts) {
		for _, c := range cohorts.Cohorts {
			rec.Cohorts = append(rec.Cohorts, domain.Cohort{
				Label:    c.Label.String(),
				Acquired: c.Acquired.Int(),
				Retained: ints(c.Retained),
			})
		}
	} else {
		rec.Cohorts = SampleCohorts()
		rec.Mark(QueryCohorts)
	}

	var channels acquisitionSchema
	if decode(results.Get(QueryAcquisitionChannels), &channels) {
		for _, c := range channels.Channels {
			rec.Channels = append(rec.Channels, domain.AcquisitionChannel{
				Name:    c.Name.String(),
				Donors:  c.Donors.Int(),
				Revenue: c.Revenue.Float(),
			})
		}
	}

	return rec
}
