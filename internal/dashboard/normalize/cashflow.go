package normalize

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Cashflow query names.
const (
	QueryGrid     = "grid"
	QueryForecast = "forecast"
)

type gridSchema struct {
	Months     List[Text]         `json:"months"`
	Categories List[Text]         `json:"categories"`
	Values     List[List[Number]] `json:"values"`
}

type forecastSchema struct {
	Points List[struct {
		Period    Text   `json:"period"`
		Projected Number `json:"projected"`
		Actual    Number `json:"actual"`
	}] `json:"points"`
}

// Cashflow builds the cashflow record. A failed grid query, or a grid
// payload without a values array, is replaced by SampleCashflowGrid and
// flagged synthetic. The forecast falls back to an empty list.
func Cashflow(results fetch.Results) domain.CashflowRecord {
	rec := domain.CashflowRecord{
		Forecast: []domain.ForecastPoint{},
		Placeholder: domain.Placeholder{
			SyntheticSources: []string{},
		},
	}

	res := results.Get(QueryGrid)
	var grid gridSchema
	if hasArray(res, "values") && decode(res, &grid) {
		rows := make([][]float64, len(grid.Values))
		for i, row := range grid.Values {
			rows[i] = floats(row)
		}
		rec.Grid = shapeGrid(axisLabels(grid.Months, "Month"), axisLabels(grid.Categories, "Category"), rows)
	} else {
		rec.Grid = SampleCashflowGrid()
		rec.Mark(QueryGrid)
	}

	var forecast forecastSchema
	if decode(results.Get(QueryForecast), &forecast) {
		for _, p := range forecast.Points {
			rec.Forecast = append(rec.Forecast, domain.ForecastPoint{
				Period:    p.Period.String(),
				Projected: p.Projected.Float(),
				Actual:    p.Actual.Float(),
			})
		}
	}

	return rec
}

// shapeGrid pads or truncates values to len(categories) x len(months).
func shapeGrid(months, categories []string, values [][]float64) domain.CashflowGrid {
	cells := make([][]float64, len(categories))
	for i := range categories {
		row := make([]float64, len(months))
		if i < len(values) {
			copy(row, values[i])
		}
		cells[i] = row
	}
	return domain.CashflowGrid{
		Months:     months,
		Categories: categories,
		Values:     cells,
	}
}
