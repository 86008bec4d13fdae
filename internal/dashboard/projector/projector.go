// Package projector turns view models into chart-ready series.
//
// Projection is read-only: every slice in a Chart is freshly allocated, so
// a renderer may reorder or scale chart data without touching the view
// model it came from.
package projector

import (
	"slices"
	"strconv"

	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/dashboard/normalize"
	"nathanbeddoewebdev/donorlens/internal/dashboard/view"
)

// Kind is the chart type a renderer should draw.
type Kind string

const (
	KindLine    Kind = "line"
	KindBar     Kind = "bar"
	KindStacked Kind = "stacked"
	KindHeatmap Kind = "heatmap"
	KindGauge   Kind = "gauge"
)

// Series is one named sequence of values aligned with Chart.Labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// Grid is heatmap data. Rows may be shorter than Columns.
type Grid struct {
	Rows    []string    `json:"rows"`
	Columns []string    `json:"columns"`
	Cells   [][]float64 `json:"cells"`
}

// Chart is one renderable chart.
type Chart struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Kind   Kind     `json:"kind"`
	Labels []string `json:"labels,omitempty"`
	Series []Series `json:"series,omitempty"`
	Grid   *Grid    `json:"grid,omitempty"`
	Unit   string   `json:"unit,omitempty"`

	// Placeholder marks charts drawn from synthetic sample data.
	Placeholder bool `json:"placeholder"`
}

// Project returns the charts of vm. Models that are not Ready have no
// charts.
func Project(vm view.ViewModel) []Chart {
	if !vm.Ready() || vm.Record == nil || vm.Metrics == nil {
		return []Chart{}
	}

	switch rec := vm.Record.(type) {
	case domain.LifecycleRecord:
		if m, ok := vm.Metrics.(domain.LifecycleMetrics); ok {
			return lifecycle(m)
		}
	case domain.IntelligenceRecord:
		if m, ok := vm.Metrics.(domain.IntelligenceMetrics); ok {
			return intelligence(rec, m)
		}
	case domain.CampaignRecord:
		if m, ok := vm.Metrics.(domain.CampaignMetrics); ok {
			return campaigns(m)
		}
	case domain.RevenueRecord:
		if m, ok := vm.Metrics.(domain.RevenueMetrics); ok {
			return revenue(rec, m)
		}
	case domain.CohortRecord:
		if m, ok := vm.Metrics.(domain.CohortMetrics); ok {
			return cohorts(rec, m)
		}
	case domain.CashflowRecord:
		if m, ok := vm.Metrics.(domain.CashflowMetrics); ok {
			return cashflow(rec, m)
		}
	}
	return []Chart{}
}

func lifecycle(m domain.LifecycleMetrics) []Chart {
	names, values := shares(m.StageShares)

	levels := make([]string, len(m.GivingLevels))
	donors := make([]float64, len(m.GivingLevels))
	revenue := make([]float64, len(m.GivingLevels))
	for i, b := range m.GivingLevels {
		levels[i] = b.Label
		donors[i] = b.Donors
		revenue[i] = b.Revenue
	}

	cells := make([][]float64, len(m.Migration.Cells))
	for i, row := range m.Migration.Cells {
		cells[i] = make([]float64, len(row))
		for j, v := range row {
			cells[i][j] = float64(v)
		}
	}

	return []Chart{
		gauge("retention", "Retention rate", m.RetentionRate, "%"),
		{
			ID:     "stages",
			Title:  "Donors by lifecycle stage",
			Kind:   KindBar,
			Labels: names,
			Series: []Series{{Name: "Donors", Values: values}},
		},
		{
			ID:     "giving-levels",
			Title:  "Giving levels",
			Kind:   KindBar,
			Labels: levels,
			Series: []Series{
				{Name: "Donors", Values: donors},
				{Name: "Revenue", Values: revenue},
			},
		},
		{
			ID:    "migration",
			Title: "Segment migration",
			Kind:  KindHeatmap,
			Grid: &Grid{
				Rows:    slices.Clone(m.Migration.Labels),
				Columns: slices.Clone(m.Migration.Labels),
				Cells:   cells,
			},
		},
	}
}

func intelligence(rec domain.IntelligenceRecord, m domain.IntelligenceMetrics) []Chart {
	segNames, segValues := shares(m.SegmentShares)
	riskNames, riskValues := shares(m.RiskShares)
	bandNames, bandValues := shares(m.HealthShares)

	periods := make([]string, len(m.Deltas))
	last := make([]float64, len(m.Deltas))
	this := make([]float64, len(m.Deltas))
	for i, d := range m.Deltas {
		periods[i] = d.Name
		last[i] = d.LastPeriod
		this[i] = d.ThisPeriod
	}

	return []Chart{
		bar("rfm-segments", "RFM segments", segNames, "Donors", segValues, ""),
		bar("churn-risk", "Churn risk", riskNames, "Donors", riskValues, ""),
		bar("health", "Donor health", bandNames, "Donors", bandValues, ""),
		gauge("health-average", "Average health score", rec.HealthAverage, ""),
		{
			ID:     "year-over-year",
			Title:  "Year over year",
			Kind:   KindBar,
			Labels: periods,
			Series: []Series{
				{Name: "Last period", Values: last},
				{Name: "This period", Values: this},
			},
		},
	}
}

func campaigns(m domain.CampaignMetrics) []Chart {
	names := make([]string, len(m.Performance))
	roi := make([]float64, len(m.Performance))
	progress := make([]float64, len(m.Performance))
	for i, p := range m.Performance {
		names[i] = p.Name
		roi[i] = p.ROI
		progress[i] = p.GoalProgress
	}

	channels := make([]string, len(m.Channels))
	channelROI := make([]float64, len(m.Channels))
	for i, c := range m.Channels {
		channels[i] = c.Name
		channelROI[i] = c.ROI
	}

	raisedNames, raised := shares(m.RevenueShares)
	return []Chart{
		bar("campaign-roi", "Campaign ROI", names, "ROI", roi, "%"),
		bar("campaign-goals", "Goal progress", slices.Clone(names), "Progress", progress, "%"),
		bar("campaign-revenue", "Revenue by campaign", raisedNames, "Raised", raised, "$"),
		bar("channel-roi", "Channel ROI", channels, "ROI", channelROI, "%"),
	}
}

func revenue(rec domain.RevenueRecord, m domain.RevenueMetrics) []Chart {
	sources, amounts := shares(m.SourceShares)

	periods := make([]string, len(rec.Monthly))
	last := make([]float64, len(rec.Monthly))
	this := make([]float64, len(rec.Monthly))
	for i, mo := range rec.Monthly {
		periods[i] = mo.Period
		last[i] = mo.LastYear
		this[i] = mo.ThisYear
	}

	return []Chart{
		bar("revenue-sources", "Revenue by source", sources, "Revenue", amounts, "$"),
		gauge("diversification", "Diversification index", m.DiversificationIndex, ""),
		{
			ID:     "monthly-revenue",
			Title:  "Monthly revenue",
			Kind:   KindLine,
			Labels: periods,
			Series: []Series{
				{Name: "Last year", Values: last},
				{Name: "This year", Values: this},
			},
			Unit: "$",
		},
	}
}

func cohorts(rec domain.CohortRecord, m domain.CohortMetrics) []Chart {
	synthetic := fromSample(rec.Placeholder, normalize.QueryCohorts)

	labels := make([]string, len(rec.Cohorts))
	width := 0
	for i, c := range rec.Cohorts {
		labels[i] = c.Label
		width = max(width, len(c.Retained))
	}
	periods := periodLabels(width)

	cells := make([][]float64, len(m.RetentionGrid))
	for i, row := range m.RetentionGrid {
		cells[i] = slices.Clone(row)
	}

	channels, donors := shares(m.ChannelShares)

	return []Chart{
		{
			ID:          "cohort-retention",
			Title:       "Cohort retention",
			Kind:        KindHeatmap,
			Grid:        &Grid{Rows: labels, Columns: periods, Cells: cells},
			Unit:        "%",
			Placeholder: synthetic,
		},
		{
			ID:          "average-retention",
			Title:       "Average retention by period",
			Kind:        KindLine,
			Labels:      slices.Clone(periods),
			Series:      []Series{{Name: "Retention", Values: slices.Clone(m.AverageRetention)}},
			Unit:        "%",
			Placeholder: synthetic,
		},
		{
			ID:          "acquisition-channels",
			Title:       "Acquisition channels",
			Kind:        KindBar,
			Labels:      channels,
			Series:      []Series{{Name: "Donors", Values: donors}},
			Placeholder: fromSample(rec.Placeholder, normalize.QueryAcquisitionChannels),
		},
	}
}

func cashflow(rec domain.CashflowRecord, m domain.CashflowMetrics) []Chart {
	synthetic := fromSample(rec.Placeholder, normalize.QueryGrid)

	cells := make([][]float64, len(rec.Grid.Values))
	stacked := make([]Series, len(rec.Grid.Values))
	for i, row := range rec.Grid.Values {
		cells[i] = slices.Clone(row)
		name := ""
		if i < len(rec.Grid.Categories) {
			name = rec.Grid.Categories[i]
		}
		stacked[i] = Series{Name: name, Values: slices.Clone(row)}
	}

	periods := make([]string, len(rec.Forecast))
	projected := make([]float64, len(rec.Forecast))
	actual := make([]float64, len(rec.Forecast))
	for i, p := range rec.Forecast {
		periods[i] = p.Period
		projected[i] = p.Projected
		actual[i] = p.Actual
	}

	return []Chart{
		{
			ID:    "cashflow-grid",
			Title: "Cashflow by category",
			Kind:  KindHeatmap,
			Grid: &Grid{
				Rows:    slices.Clone(rec.Grid.Categories),
				Columns: slices.Clone(rec.Grid.Months),
				Cells:   cells,
			},
			Unit:        "$",
			Placeholder: synthetic,
		},
		{
			ID:          "monthly-cashflow",
			Title:       "Monthly cashflow",
			Kind:        KindStacked,
			Labels:      slices.Clone(rec.Grid.Months),
			Series:      stacked,
			Unit:        "$",
			Placeholder: synthetic,
		},
		{
			ID:     "forecast",
			Title:  "Forecast vs actual",
			Kind:   KindLine,
			Labels: periods,
			Series: []Series{
				{Name: "Projected", Values: projected},
				{Name: "Actual", Values: actual},
			},
			Unit: "$",
		},
	}
}

func bar(id, title string, labels []string, series string, values []float64, unit string) Chart {
	return Chart{
		ID:     id,
		Title:  title,
		Kind:   KindBar,
		Labels: labels,
		Series: []Series{{Name: series, Values: values}},
		Unit:   unit,
	}
}

func gauge(id, title string, value float64, unit string) Chart {
	return Chart{
		ID:     id,
		Title:  title,
		Kind:   KindGauge,
		Series: []Series{{Name: title, Values: []float64{value}}},
		Unit:   unit,
	}
}

// shares splits shares into fresh label and value slices.
func shares(in []domain.Share) ([]string, []float64) {
	names := make([]string, len(in))
	values := make([]float64, len(in))
	for i, s := range in {
		names[i] = s.Name
		values[i] = s.Value
	}
	return names, values
}

func periodLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "P" + strconv.Itoa(i+1)
	}
	return out
}

func fromSample(p domain.Placeholder, query string) bool {
	return p.Synthetic && slices.Contains(p.SyntheticSources, query)
}
