package normalize

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
	"nathanbeddoewebdev/donorlens/internal/source"

	"github.com/google/go-cmp/cmp"
)

func ok(body string) source.Result {
	return source.Success(json.RawMessage(body))
}

var (
	errNetwork = &source.NetworkError{Query: "q", Err: errors.New("offline")}
	errStatus  = &source.StatusError{Query: "q", Code: http.StatusInternalServerError}
)

func failAll(names ...string) fetch.Results {
	r := fetch.Results{}
	for _, n := range names {
		r[n] = source.Failure(errNetwork)
	}
	return r
}

func TestLenientFields(t *testing.T) {
	var v struct {
		A Number       `json:"a"`
		B Number       `json:"b"`
		C Number       `json:"c"`
		D Count        `json:"d"`
		E Count        `json:"e"`
		F Text         `json:"f"`
		G List[Number] `json:"g"`
		H List[Count]  `json:"h"`
		I Number       `json:"i"`
	}
	payload := `{
		"a": "1,250.50",
		"b": "n/a",
		"c": {"nested": true},
		"d": 12.9,
		"e": -4,
		"f": 1234,
		"g": "not a list",
		"h": [1, "2", {"x": 1}, null, 4],
		"i": null
	}`

	if err := json.Unmarshal([]byte(payload), &v); err != nil {
		t.Fatalf("lenient decode must not fail: %v", err)
	}

	if v.A != 1250.5 {
		t.Errorf("A = %v, want 1250.5", v.A)
	}
	if v.B != 0 || v.C != 0 || v.I != 0 {
		t.Errorf("non-numeric values should be 0, got %v %v %v", v.B, v.C, v.I)
	}
	if v.D != 12 {
		t.Errorf("D = %v, want 12", v.D)
	}
	if v.E != 0 {
		t.Errorf("negative count should be 0, got %v", v.E)
	}
	if v.F != "1234" {
		t.Errorf("F = %q, want %q", v.F, "1234")
	}
	if len(v.G) != 0 {
		t.Errorf("G should be empty, got %v", v.G)
	}
	if diff := cmp.Diff(List[Count]{1, 2, 0, 0, 4}, v.H); diff != "" {
		t.Errorf("H mismatch (-want +got):\n%s", diff)
	}
}

func TestLifecycle_Success(t *testing.T) {
	results := fetch.Results{
		QueryStages:   ok(`{"active": 800, "new_donor": 150, "lapsed": 50, "at_risk": 40, "reactivated": 12}`),
		QueryPipeline: ok(`{"total_value": 2500000, "total_donors": 1000}`),
		QueryMigration: ok(`{
			"segments": ["new", "active", "lapsed"],
			"movements": [
				{"from": "new", "to": "active", "count": 30},
				{"from": "active", "to": "lapsed", "count": "7"},
				{"from": "", "to": "active", "count": 3}
			]
		}`),
		QueryGiving: ok(`{"total_donors": 1000, "total_revenue": "1500000"}`),
	}

	got := Lifecycle(results)

	want := domain.LifecycleRecord{
		Stages:             domain.StageCounts{Active: 800, NewDonor: 150, Lapsed: 50, AtRisk: 40, Reactivated: 12},
		TotalPipelineValue: 2500000,
		TotalDonors:        1000,
		Segments:           []string{"new", "active", "lapsed"},
		Movements: []domain.Movement{
			{From: "new", To: "active", Count: 30},
			{From: "active", To: "lapsed", Count: 7},
		},
		GivingDonors:  1000,
		GivingRevenue: 1500000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestLifecycle_AllFailuresYieldZeroRecord(t *testing.T) {
	got := Lifecycle(failAll(QueryStages, QueryPipeline, QueryMigration, QueryGiving))

	want := domain.LifecycleRecord{Segments: []string{}, Movements: []domain.Movement{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
	if got.Segments == nil || got.Movements == nil {
		t.Error("slices must be non-nil")
	}
}

func TestLifecycle_MissingResultsDefault(t *testing.T) {
	got := Lifecycle(fetch.Results{})
	if got.Segments == nil || got.Movements == nil {
		t.Fatal("slices must be non-nil")
	}
	if got.Stages != (domain.StageCounts{}) {
		t.Errorf("expected zero stages, got %+v", got.Stages)
	}
}

func TestLifecycle_SegmentsFromMovementsWhenUndeclared(t *testing.T) {
	got := Lifecycle(fetch.Results{
		QueryMigration: ok(`{"movements": [
			{"from": "active", "to": "lapsed", "count": 5},
			{"from": "lapsed", "to": "reactivated", "count": 2},
			{"from": "new", "to": "active", "count": 9}
		]}`),
	})

	if diff := cmp.Diff([]string{"active", "lapsed", "reactivated", "new"}, got.Segments); diff != "" {
		t.Errorf("segments mismatch (-want +got):\n%s", diff)
	}
}

func TestLifecycle_NoCrossContamination(t *testing.T) {
	// The stages payload carries pipeline-looking keys; they must not leak
	// into fields owned by the failed pipeline query.
	got := Lifecycle(fetch.Results{
		QueryStages:   ok(`{"active": 10, "total_value": 999, "total_donors": 5}`),
		QueryPipeline: source.Failure(errStatus),
	})

	if got.TotalPipelineValue != 0 || got.TotalDonors != 0 {
		t.Errorf("pipeline fields leaked from stages payload: %+v", got)
	}
	if got.Stages.Active != 10 {
		t.Errorf("Active = %d, want 10", got.Stages.Active)
	}
}

func TestLifecycle_NonObjectPayloadDefaults(t *testing.T) {
	got := Lifecycle(fetch.Results{
		QueryStages:   ok(`[1, 2, 3]`),
		QueryPipeline: ok(`"oops"`),
	})
	if got.Stages != (domain.StageCounts{}) || got.TotalPipelineValue != 0 {
		t.Errorf("expected defaults, got %+v", got)
	}
}

func TestIntelligence_PartialPayload(t *testing.T) {
	got := Intelligence(fetch.Results{
		QueryRFM: ok(`{"segments": [
			{"name": "Champions", "count": 120, "average_score": 4.6},
			"garbage",
			{"name": "Hibernating", "count": "80"}
		]}`),
		QueryChurn: ok(`{"high": 12, "medium": "x", "low": 300, "donors": [
			{"id": 17, "name": "A. Donor", "probability": 0.8, "last_gift_amount": 500}
		]}`),
		QueryHealth: source.Failure(errStatus),
		QueryYoY:    ok(`{"metrics": {"not": "a list"}}`),
	})

	want := domain.IntelligenceRecord{
		RFMSegments: []domain.RFMSegment{
			{Name: "Champions", Count: 120, AverageScore: 4.6},
			{Name: "Hibernating", Count: 80},
		},
		Churn: domain.ChurnBands{High: 12, Low: 300},
		AtRisk: []domain.AtRiskDonor{
			{ID: "17", Name: "A. Donor", Probability: 0.8, LastGiftAmount: 500},
		},
		HealthBands:  []domain.HealthBand{},
		YearOverYear: []domain.PeriodPair{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestCampaigns_AllFailures(t *testing.T) {
	got := Campaigns(failAll(QueryCampaigns, QueryCampaignChannels))
	want := domain.CampaignRecord{Campaigns: []domain.Campaign{}, Channels: []domain.Channel{}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestRevenue_Success(t *testing.T) {
	got := Revenue(fetch.Results{
		QueryStreams:   ok(`{"streams": [{"source": "Individuals", "amount": 600}, {"source": "Grants", "amount": 400}]}`),
		QueryMonthly:   ok(`{"months": [{"period": "2024-01", "last_year": 100, "this_year": 120}]}`),
		QueryRecurring: ok(`{"donors": 40, "revenue": 2000}`),
	})

	want := domain.RevenueRecord{
		Streams: []domain.RevenueStream{
			{Source: "Individuals", Amount: 600},
			{Source: "Grants", Amount: 400},
		},
		Monthly:          []domain.MonthlyRevenue{{Period: "2024-01", LastYear: 100, ThisYear: 120}},
		RecurringDonors:  40,
		RecurringRevenue: 2000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestCohorts_LiveData(t *testing.T) {
	got := Cohorts(fetch.Results{
		QueryCohorts:             ok(`{"cohorts": [{"label": "2024-Q1", "acquired": 100, "retained": [60, 45]}]}`),
		QueryAcquisitionChannels: ok(`{"channels": [{"name": "Email", "donors": 40, "revenue": 4000}]}`),
	})

	if got.Synthetic {
		t.Fatal("live data must not be flagged synthetic")
	}
	if diff := cmp.Diff([]string{}, got.SyntheticSources); diff != "" {
		t.Errorf("SyntheticSources mismatch (-want +got):\n%s", diff)
	}
	want := []domain.Cohort{{Label: "2024-Q1", Acquired: 100, Retained: []int{60, 45}}}
	if diff := cmp.Diff(want, got.Cohorts); diff != "" {
		t.Errorf("cohorts mismatch (-want +got):\n%s", diff)
	}
}

func TestCohorts_EmptyLiveListIsReal(t *testing.T) {
	got := Cohorts(fetch.Results{QueryCohorts: ok(`{"cohorts": []}`)})
	if got.Synthetic {
		t.Error("an explicit empty cohort list is live data")
	}
	if len(got.Cohorts) != 0 {
		t.Errorf("expected no cohorts, got %d", len(got.Cohorts))
	}
}

func TestCohorts_SyntheticFallback(t *testing.T) {
	tests := []struct {
		name    string
		results fetch.Results
	}{
		{"network failure", failAll(QueryCohorts, QueryAcquisitionChannels)},
		{"missing key", fetch.Results{QueryCohorts: ok(`{"data": []}`)}},
		{"wrong type", fetch.Results{QueryCohorts: ok(`{"cohorts": "pending"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cohorts(tt.results)
			if !got.Synthetic {
				t.Fatal("expected synthetic record")
			}
			if diff := cmp.Diff([]string{QueryCohorts}, got.SyntheticSources); diff != "" {
				t.Errorf("SyntheticSources mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(SampleCohorts(), got.Cohorts); diff != "" {
				t.Errorf("cohorts mismatch (-want +got):\n%s", diff)
			}
			if got.Channels == nil || len(got.Channels) != 0 {
				t.Errorf("channels should default to empty, got %v", got.Channels)
			}
		})
	}
}

func TestSampleCohorts_InternallyConsistent(t *testing.T) {
	for _, c := range SampleCohorts() {
		prev := c.Acquired
		for k, n := range c.Retained {
			if n > prev {
				t.Errorf("%s: retained[%d]=%d exceeds previous %d", c.Label, k, n, prev)
			}
			prev = n
		}
	}
}

func TestCashflow_ShapesGrid(t *testing.T) {
	got := Cashflow(fetch.Results{
		QueryGrid: ok(`{
			"months": ["Jan", "Feb", "Mar"],
			"categories": ["Events", "Grants"],
			"values": [[1, 2, 3, 4], [5], [9, 9, 9]]
		}`),
		QueryForecast: ok(`{"points": [{"period": "Jan", "projected": 10, "actual": 12}]}`),
	})

	if got.Synthetic {
		t.Fatal("live grid must not be synthetic")
	}
	want := domain.CashflowGrid{
		Months:     []string{"Jan", "Feb", "Mar"},
		Categories: []string{"Events", "Grants"},
		Values:     [][]float64{{1, 2, 3}, {5, 0, 0}},
	}
	if diff := cmp.Diff(want, got.Grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]domain.ForecastPoint{{Period: "Jan", Projected: 10, Actual: 12}}, got.Forecast); diff != "" {
		t.Errorf("forecast mismatch (-want +got):\n%s", diff)
	}
}

func TestCashflow_BlankLabelsKeepColumns(t *testing.T) {
	got := Cashflow(fetch.Results{
		QueryGrid: ok(`{
			"months": ["Jan", "", "Mar"],
			"categories": [" ", "Grants"],
			"values": [[1, 2, 3], [4, 5, 6]]
		}`),
	})

	want := domain.CashflowGrid{
		Months:     []string{"Jan", "Month 2", "Mar"},
		Categories: []string{"Category 1", "Grants"},
		Values:     [][]float64{{1, 2, 3}, {4, 5, 6}},
	}
	if diff := cmp.Diff(want, got.Grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestCashflow_SyntheticGrid(t *testing.T) {
	got := Cashflow(fetch.Results{
		QueryGrid:     source.Failure(errStatus),
		QueryForecast: ok(`{"points": [{"period": "Jan", "projected": 10, "actual": 12}]}`),
	})

	if !got.Synthetic {
		t.Fatal("expected synthetic grid")
	}
	if diff := cmp.Diff(SampleCashflowGrid(), got.Grid); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if len(got.Forecast) != 1 {
		t.Errorf("forecast must stay live, got %v", got.Forecast)
	}
	for i, row := range got.Grid.Values {
		if len(row) != len(got.Grid.Months) {
			t.Errorf("row %d has %d cells, want %d", i, len(row), len(got.Grid.Months))
		}
	}
}

func TestSampleCashflowGrid_ReturnsCopies(t *testing.T) {
	a := SampleCashflowGrid()
	a.Values[0][0] = -1
	a.Months[0] = "changed"

	b := SampleCashflowGrid()
	if b.Values[0][0] == -1 || b.Months[0] == "changed" {
		t.Error("sample grid shares memory between calls")
	}
}
