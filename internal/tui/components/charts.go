package components

import (
	"fmt"
	"math"
	"strings"

	"nathanbeddoewebdev/donorlens/internal/dashboard/projector"
	"nathanbeddoewebdev/donorlens/internal/format"
	"nathanbeddoewebdev/donorlens/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
)

// chartHeight is the plot height of line charts.
const chartHeight = 6

// labelWidth is the column reserved for bar and heatmap row labels.
const labelWidth = 18

var lineColors = []asciigraph.AnsiColor{
	asciigraph.DodgerBlue,
	asciigraph.LightCoral,
	asciigraph.MediumSeaGreen,
	asciigraph.Gold,
}

// Chart renders c to fit width. Unknown kinds render as a note.
func Chart(c projector.Chart, width int) string {
	title := styles.Label.Render(c.Title)
	if c.Placeholder {
		title += " " + styles.Badge("sample data", styles.Yellow)
	}

	var body string
	switch c.Kind {
	case projector.KindLine:
		body = lineChart(c, width)
	case projector.KindBar, projector.KindStacked:
		body = barChart(c, width)
	case projector.KindGauge:
		body = gauge(c, width)
	case projector.KindHeatmap:
		body = heatmap(c, width)
	default:
		body = styles.MutedText.Render(fmt.Sprintf("unsupported chart kind %q", c.Kind))
	}

	return fit(lipgloss.JoinVertical(lipgloss.Left, title, body), width)
}

func lineChart(c projector.Chart, width int) string {
	data := make([][]float64, 0, len(c.Series))
	legends := make([]string, 0, len(c.Series))
	colors := make([]asciigraph.AnsiColor, 0, len(c.Series))
	for i, s := range c.Series {
		if len(s.Values) == 0 {
			continue
		}
		data = append(data, s.Values)
		legends = append(legends, s.Name)
		colors = append(colors, lineColors[i%len(lineColors)])
	}
	if len(data) == 0 {
		return styles.MutedText.Render("no data")
	}

	// Reserve space for the y-axis labels.
	plotWidth := max(width-12, 10)

	plot := asciigraph.PlotMany(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(legends...),
		asciigraph.LabelColor(asciigraph.Default),
	)

	if len(c.Labels) == 0 {
		return plot
	}
	axis := styles.MutedText.Render(c.Labels[0] + " … " + c.Labels[len(c.Labels)-1])
	return lipgloss.JoinVertical(lipgloss.Left, plot, axis)
}

func barChart(c projector.Chart, width int) string {
	if len(c.Labels) == 0 {
		return styles.MutedText.Render("no data")
	}

	peak := 0.0
	for _, s := range c.Series {
		for _, v := range s.Values {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	barWidth := max(width-labelWidth-14, 5)

	var b strings.Builder
	for i, label := range c.Labels {
		for j, s := range c.Series {
			name := ""
			if j == 0 {
				name = label
			}
			v := 0.0
			if i < len(s.Values) {
				v = s.Values[i]
			}
			n := 0
			if peak > 0 {
				n = int(math.Round(math.Abs(v) / peak * float64(barWidth)))
			}
			bar := lipgloss.NewStyle().Foreground(styles.SeriesColor(j)).Render(strings.Repeat("█", n))
			fmt.Fprintf(&b, "%s %s %s\n",
				pad(name, labelWidth), bar, styles.Value.Render(Value(v, c.Unit)))
		}
	}
	if len(c.Series) > 1 {
		b.WriteString(legend(c.Series))
	}
	return strings.TrimRight(b.String(), "\n")
}

func gauge(c projector.Chart, width int) string {
	v := 0.0
	if len(c.Series) > 0 && len(c.Series[0].Values) > 0 {
		v = c.Series[0].Values[0]
	}
	text := styles.Title.Foreground(styles.Blue).Render(Value(v, c.Unit))
	if c.Unit != "%" {
		return text
	}

	barWidth := max(min(width-12, 40), 5)
	filled := int(math.Round(min(max(v, 0), 100) / 100 * float64(barWidth)))
	bar := lipgloss.NewStyle().Foreground(styles.Blue).Render(strings.Repeat("█", filled)) +
		styles.MutedText.Render(strings.Repeat("░", barWidth-filled))
	return text + "  " + bar
}

func heatmap(c projector.Chart, width int) string {
	g := c.Grid
	if g == nil || len(g.Cells) == 0 {
		return styles.MutedText.Render("no data")
	}

	peak := 0.0
	for _, row := range g.Cells {
		for _, v := range row {
			peak = math.Max(peak, v)
		}
	}

	cellWidth := 8
	cols := max((width-labelWidth-1)/cellWidth, 1)
	cols = min(cols, len(g.Columns))

	var b strings.Builder
	b.WriteString(pad("", labelWidth))
	for _, col := range g.Columns[:cols] {
		b.WriteString(styles.TableHeader.Width(cellWidth).Render(ansi.Truncate(col, cellWidth-2, "…")))
	}
	b.WriteString("\n")

	for i, row := range g.Cells {
		name := ""
		if i < len(g.Rows) {
			name = g.Rows[i]
		}
		b.WriteString(pad(name, labelWidth))
		for j := 0; j < cols; j++ {
			if j >= len(row) {
				b.WriteString(strings.Repeat(" ", cellWidth))
				continue
			}
			frac := 0.0
			if peak > 0 {
				frac = row[j] / peak
			}
			b.WriteString(styles.Heat(frac).Width(cellWidth).Render(Value(row[j], c.Unit)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Value formats v for unit: "$" is compact currency, "%" a percentage.
func Value(v float64, unit string) string {
	switch unit {
	case "$":
		if v < 0 {
			return "-$" + format.Compact(-v)
		}
		return "$" + format.Compact(v)
	case "%":
		return format.Percent(v)
	default:
		return format.Compact(v)
	}
}

func legend(series []projector.Series) string {
	parts := make([]string, len(series))
	for i, s := range series {
		parts[i] = lipgloss.NewStyle().Foreground(styles.SeriesColor(i)).Render("■") + " " + styles.MutedText.Render(s.Name)
	}
	return strings.Repeat(" ", labelWidth+1) + strings.Join(parts, "  ")
}

func pad(s string, width int) string {
	s = ansi.Truncate(s, width, "…")
	return styles.MutedText.Render(s + strings.Repeat(" ", max(width-ansi.StringWidth(s), 0)))
}

// fit truncates every line of s to width.
func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return strings.Join(lines, "\n")
}
