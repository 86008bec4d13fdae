package components

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/donorlens/internal/dashboard/projector"

	"github.com/charmbracelet/x/ansi"
)

func TestValue(t *testing.T) {
	tests := []struct {
		v    float64
		unit string
		want string
	}{
		{1500, "$", "$1.5K"},
		{-20, "$", "-$20"},
		{12.34, "%", "12.3%"},
		{42, "", "42"},
	}
	for _, tt := range tests {
		if got := Value(tt.v, tt.unit); got != tt.want {
			t.Errorf("Value(%v, %q) = %q, want %q", tt.v, tt.unit, got, tt.want)
		}
	}
}

func TestChart_FitsWidth(t *testing.T) {
	charts := []projector.Chart{
		{
			ID: "bar", Title: "Revenue by source", Kind: projector.KindBar,
			Labels: []string{"Individual giving from very long named source", "Events"},
			Series: []projector.Series{{Name: "Revenue", Values: []float64{1000, 250}}},
			Unit:   "$",
		},
		{
			ID: "line", Title: "Monthly", Kind: projector.KindLine,
			Labels: []string{"Jan", "Feb", "Mar"},
			Series: []projector.Series{
				{Name: "Last year", Values: []float64{1, 2, 3}},
				{Name: "This year", Values: []float64{2, 3, 5}},
			},
		},
		{
			ID: "heat", Title: "Cohorts", Kind: projector.KindHeatmap,
			Grid: &projector.Grid{
				Rows:    []string{"2024-01", "2024-02"},
				Columns: []string{"P1", "P2", "P3"},
				Cells:   [][]float64{{100, 60, 40}, {100, 55}},
			},
			Unit: "%",
		},
		{ID: "gauge", Title: "Retention", Kind: projector.KindGauge,
			Series: []projector.Series{{Name: "Retention", Values: []float64{75}}}, Unit: "%"},
	}

	const width = 60
	for _, c := range charts {
		out := Chart(c, width)
		if !strings.Contains(ansi.Strip(out), c.Title) {
			t.Errorf("%s: title missing:\n%s", c.ID, out)
		}
		for _, line := range strings.Split(out, "\n") {
			if w := ansi.StringWidth(line); w > width {
				t.Errorf("%s: line width %d exceeds %d: %q", c.ID, w, width, ansi.Strip(line))
			}
		}
	}
}

func TestChart_PlaceholderBadge(t *testing.T) {
	c := projector.Chart{Title: "Cohort retention", Kind: projector.KindHeatmap, Placeholder: true}
	if out := ansi.Strip(Chart(c, 80)); !strings.Contains(out, "sample data") {
		t.Errorf("missing sample data badge:\n%s", out)
	}
}

func TestChart_EmptySeries(t *testing.T) {
	for _, kind := range []projector.Kind{projector.KindLine, projector.KindBar, projector.KindHeatmap} {
		out := ansi.Strip(Chart(projector.Chart{Title: "x", Kind: kind}, 40))
		if !strings.Contains(out, "no data") {
			t.Errorf("%s: expected no data note, got %q", kind, out)
		}
	}
}

func TestTabBar(t *testing.T) {
	out := ansi.Strip(TabBar(80, []string{"Lifecycle", "Cashflow"}, 1))
	if !strings.Contains(out, "1 Lifecycle") || !strings.Contains(out, "2 Cashflow") {
		t.Errorf("unexpected tab bar %q", out)
	}
}
