package normalize

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Lifecycle query names.
const (
	QueryStages    = "stages"
	QueryPipeline  = "pipeline"
	QueryMigration = "migration"
	QueryGiving    = "giving"
)

type stagesSchema struct {
	Active      Count `json:"active"`
	NewDonor    Count `json:"new_donor"`
	Lapsed      Count `json:"lapsed"`
	AtRisk      Count `json:"at_risk"`
	Reactivated Count `json:"reactivated"`
}

type pipelineSchema struct {
	TotalValue  Number `json:"total_value"`
	TotalDonors Count  `json:"total_donors"`
}

type movementSchema struct {
	From  Text  `json:"from"`
	To    Text  `json:"to"`
	Count Count `json:"count"`
}

type migrationSchema struct {
	Segments  List[Text]           `json:"segments"`
	Movements List[movementSchema] `json:"movements"`
}

type givingSchema struct {
	TotalDonors  Count  `json:"total_donors"`
	TotalRevenue Number `json:"total_revenue"`
}

// Lifecycle builds the lifecycle record. Every query defaults to zero
// values on failure.
func Lifecycle(results fetch.Results) domain.LifecycleRecord {
	rec := domain.LifecycleRecord{
		Segments:  []string{},
		Movements: []domain.Movement{},
	}

	var stages stagesSchema
	if decode(results.Get(QueryStages), &stages) {
		rec.Stages = domain.StageCounts{
			Active:      stages.Active.Int(),
			NewDonor:    stages.NewDonor.Int(),
			Lapsed:      stages.Lapsed.Int(),
			AtRisk:      stages.AtRisk.Int(),
			Reactivated: stages.Reactivated.Int(),
		}
	}

	var pipeline pipelineSchema
	if decode(results.Get(QueryPipeline), &pipeline) {
		rec.TotalPipelineValue = pipeline.TotalValue.Float()
		rec.TotalDonors = pipeline.TotalDonors.Int()
	}

	var migration migrationSchema
	if decode(results.Get(QueryMigration), &migration) {
		for _, m := range migration.Movements {
			if m.From == "" || m.To == "" {
				continue
			}
			rec.Movements = append(rec.Movements, domain.Movement{
				From:  m.From.String(),
				To:    m.To.String(),
				Count: m.Count.Int(),
			})
		}
		rec.Segments = segmentOrder(texts(migration.Segments), rec.Movements)
	}

	var giving givingSchema
	if decode(results.Get(QueryGiving), &giving) {
		rec.GivingDonors = giving.TotalDonors.Int()
		rec.GivingRevenue = giving.TotalRevenue.Float()
	}

	return rec
}

// segmentOrder returns the declared segment order, or the order in which
// segments first appear in movements when none is declared. Duplicates are
// dropped.
func segmentOrder(declared []string, movements []domain.Movement) []string {
	seen := make(map[string]struct{})
	out := []string{}
	add := func(s string) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	if len(declared) > 0 {
		for _, s := range declared {
			add(s)
		}
		return out
	}
	for _, m := range movements {
		add(m.From)
		add(m.To)
	}
	return out
}
