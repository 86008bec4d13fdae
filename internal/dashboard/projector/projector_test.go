package projector

import (
	"encoding/json"
	"testing"

	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
	"nathanbeddoewebdev/donorlens/internal/fetch"
	"nathanbeddoewebdev/donorlens/internal/source"

	"github.com/google/go-cmp/cmp"
)

func build(t *testing.T, tab string, payloads map[string]string) view.ViewModel {
	t.Helper()
	def, err := bundles.Get(tab)
	if err != nil {
		t.Fatalf("bundles.Get: %v", err)
	}
	results := fetch.Results{}
	for name, body := range payloads {
		results[name] = source.Success(json.RawMessage(body))
	}
	return view.Build(def, results, 1)
}

func ids(charts []Chart) []string {
	out := make([]string, len(charts))
	for i, c := range charts {
		out[i] = c.ID
	}
	return out
}

func TestProject_NotReady(t *testing.T) {
	for _, vm := range []view.ViewModel{
		view.Loading(domain.TabLifecycle, 1),
		view.Failed(domain.TabLifecycle, 1, "Organization ID not found"),
	} {
		got := Project(vm)
		if got == nil || len(got) != 0 {
			t.Errorf("%s: expected no charts, got %#v", vm.Status, got)
		}
	}
}

func TestProject_ChartsPerTab(t *testing.T) {
	want := map[string][]string{
		domain.TabLifecycle:    {"retention", "stages", "giving-levels", "migration"},
		domain.TabIntelligence: {"rfm-segments", "churn-risk", "health", "health-average", "year-over-year"},
		domain.TabCampaigns:    {"campaign-roi", "campaign-goals", "campaign-revenue", "channel-roi"},
		domain.TabRevenue:      {"revenue-sources", "diversification", "monthly-revenue"},
		domain.TabCohorts:      {"cohort-retention", "average-retention", "acquisition-channels"},
		domain.TabCashflow:     {"cashflow-grid", "monthly-cashflow", "forecast"},
	}

	for tab, wantIDs := range want {
		t.Run(tab, func(t *testing.T) {
			got := Project(build(t, tab, nil))
			if diff := cmp.Diff(wantIDs, ids(got)); diff != "" {
				t.Errorf("chart ids mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProject_PlaceholderFlags(t *testing.T) {
	charts := Project(build(t, domain.TabCohorts, map[string]string{
		"channels": `{"channels": [{"name": "Email", "donors": 10, "revenue": 500}]}`,
	}))

	want := map[string]bool{
		"cohort-retention":     true,
		"average-retention":    true,
		"acquisition-channels": false,
	}
	for _, c := range charts {
		if c.Placeholder != want[c.ID] {
			t.Errorf("%s: Placeholder = %v, want %v", c.ID, c.Placeholder, want[c.ID])
		}
	}
}

func TestProject_LiveCashflowIsNotPlaceholder(t *testing.T) {
	charts := Project(build(t, domain.TabCashflow, map[string]string{
		"grid": `{"months": ["Jan"], "categories": ["Events"], "values": [[100]]}`,
	}))
	for _, c := range charts {
		if c.Placeholder {
			t.Errorf("%s: live data flagged as placeholder", c.ID)
		}
	}
	if got := charts[1].Series[0]; got.Name != "Events" || got.Values[0] != 100 {
		t.Errorf("stacked series = %+v", got)
	}
}

func TestProject_DoesNotAliasViewModel(t *testing.T) {
	vm := build(t, domain.TabCashflow, nil)
	before, err := json.Marshal(vm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	for _, c := range Project(vm) {
		for i := range c.Labels {
			c.Labels[i] = "mutated"
		}
		for _, s := range c.Series {
			for i := range s.Values {
				s.Values[i] = -1
			}
		}
		if c.Grid != nil {
			for i := range c.Grid.Rows {
				c.Grid.Rows[i] = "mutated"
			}
			for _, row := range c.Grid.Cells {
				for j := range row {
					row[j] = -1
				}
			}
		}
	}

	after, err := json.Marshal(vm)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Error("mutating projected charts changed the view model")
	}
}

func TestProject_LifecycleValues(t *testing.T) {
	charts := Project(build(t, domain.TabLifecycle, map[string]string{
		"stages": `{"active": 80, "new_donor": 20, "lapsed": 0}`,
		"migration": `{"segments": ["new", "active"],
			"movements": [{"from": "new", "to": "active", "count": 5}]}`,
	}))

	if got := charts[0].Series[0].Values[0]; got != 100 {
		t.Errorf("retention gauge = %v, want 100", got)
	}
	grid := charts[3].Grid
	if diff := cmp.Diff([][]float64{{0, 5}, {0, 0}}, grid.Cells); diff != "" {
		t.Errorf("migration cells mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	if got := Summary(view.Loading(domain.TabRevenue, 1)); got != nil {
		t.Errorf("loading model summary = %v, want nil", got)
	}

	vm := build(t, domain.TabCampaigns, map[string]string{
		"campaigns": `{"campaigns": [{"name": "Spring", "raised": 300, "cost": 100, "goal": 600}]}`,
	})
	want := []Stat{
		{"Total raised", 300, "$"},
		{"Total cost", 100, "$"},
		{"Overall ROI", 200, "%"},
	}
	if diff := cmp.Diff(want, Summary(vm)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_EveryTab(t *testing.T) {
	for _, tab := range []string{
		domain.TabLifecycle, domain.TabIntelligence, domain.TabCampaigns,
		domain.TabRevenue, domain.TabCohorts, domain.TabCashflow,
	} {
		if len(Summary(build(t, tab, nil))) == 0 {
			t.Errorf("%s: empty summary", tab)
		}
	}
}
