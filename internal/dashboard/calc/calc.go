// Package calc computes derived dashboard metrics from normalized records.
//
// Every function is pure: it performs no I/O, never mutates its input and
// always allocates fresh output slices. Division by zero never panics or
// yields NaN; each function documents the value it falls back to, which is
// 0 unless stated otherwise.
package calc

import (
	"math"

	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
)

// round rounds x half away from zero to the given number of decimals.
func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

func round1(x float64) float64 { return round(x, 1) }

// Ratio returns num/den, or 0 when den is not positive or the result is
// not finite.
func Ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	r := num / den
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Percent returns num/den*100 rounded to one decimal, or 0 when den is not
// positive.
func Percent(num, den float64) float64 {
	return round1(Ratio(num, den) * 100)
}

// RetentionRate returns the share of current donors that are active or new,
// (active+newDonor) / (active+newDonor+lapsed) * 100 rounded to one
// decimal. An empty population has a retention rate of 0.
func RetentionRate(active, newDonor, lapsed int) float64 {
	retained := float64(active + newDonor)
	return Percent(retained, retained+float64(lapsed))
}

// AverageLifetimeValue returns totalValue/donors rounded to cents, or 0
// when there are no donors.
func AverageLifetimeValue(totalValue float64, donors int) float64 {
	return round(Ratio(totalValue, float64(donors)), 2)
}

// Delta compares last and this. ChangePct is relative to last and rounded
// to one decimal; it is 0 when last is not positive, while Change still
// carries the raw difference.
func Delta(name string, last, this float64) domain.Delta {
	change := this - last
	return domain.Delta{
		Name:       name,
		LastPeriod: last,
		ThisPeriod: this,
		Change:     change,
		ChangePct:  Percent(change, last),
	}
}

// Deltas applies Delta to each pair.
func Deltas(pairs []domain.PeriodPair) []domain.Delta {
	out := make([]domain.Delta, len(pairs))
	for i, p := range pairs {
		out[i] = Delta(p.Name, p.LastPeriod, p.ThisPeriod)
	}
	return out
}

// Shares expresses each value as a percent of the total. Names and values
// are paired by index; extra entries on either side are ignored. Negative
// values count as zero. Every percent is 0 when the total is 0.
func Shares(names []string, values []float64) []domain.Share {
	n := min(len(names), len(values))
	total := 0.0
	for i := 0; i < n; i++ {
		total += math.Max(values[i], 0)
	}
	out := make([]domain.Share, n)
	for i := 0; i < n; i++ {
		out[i] = domain.Share{
			Name:    names[i],
			Value:   values[i],
			Percent: Percent(math.Max(values[i], 0), total),
		}
	}
	return out
}

// ROI returns (revenue-cost)/cost*100 rounded to one decimal, or 0 when
// there is no cost.
func ROI(revenue, cost float64) float64 {
	return Percent(revenue-cost, cost)
}

// DiversificationIndex returns 1 minus the Herfindahl-Hirschman index of
// the amounts, rounded to three decimals: 0 for a single source, rising
// towards 1 as revenue spreads evenly over many sources. Non-positive
// amounts are ignored; no revenue yields 0.
func DiversificationIndex(amounts []float64) float64 {
	total := 0.0
	for _, a := range amounts {
		if a > 0 {
			total += a
		}
	}
	if total <= 0 {
		return 0
	}
	hhi := 0.0
	for _, a := range amounts {
		if a > 0 {
			s := a / total
			hhi += s * s
		}
	}
	return round(1-hhi, 3)
}

// ExpectedLoss sums probability * last gift over at-risk donors.
// Probabilities outside [0, 1] are clamped.
func ExpectedLoss(donors []domain.AtRiskDonor) float64 {
	total := 0.0
	for _, d := range donors {
		p := math.Min(math.Max(d.Probability, 0), 1)
		total += p * d.LastGiftAmount
	}
	return round(total, 2)
}

// RowTotals sums each row.
func RowTotals(grid [][]float64) []float64 {
	out := make([]float64, len(grid))
	for i, row := range grid {
		for _, v := range row {
			out[i] += v
		}
	}
	return out
}

// ColumnTotals sums each column over rows of possibly different lengths.
func ColumnTotals(grid [][]float64) []float64 {
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	out := make([]float64, width)
	for _, row := range grid {
		for j, v := range row {
			out[j] += v
		}
	}
	return out
}

// AverageByColumn averages each column over the rows long enough to have
// it, rounded to one decimal.
func AverageByColumn(grid [][]float64) []float64 {
	width := 0
	for _, row := range grid {
		width = max(width, len(row))
	}
	sums := make([]float64, width)
	counts := make([]int, width)
	for _, row := range grid {
		for j, v := range row {
			sums[j] += v
			counts[j]++
		}
	}
	out := make([]float64, width)
	for j := range out {
		out[j] = round1(Ratio(sums[j], float64(counts[j])))
	}
	return out
}

// CohortRetentionGrid returns, for each cohort, the percent of acquired
// donors retained after each period. Cohorts with no acquired donors
// retain 0 percent.
func CohortRetentionGrid(cohorts []domain.Cohort) [][]float64 {
	out := make([][]float64, len(cohorts))
	for i, c := range cohorts {
		row := make([]float64, len(c.Retained))
		for k, n := range c.Retained {
			row[k] = Percent(float64(n), float64(c.Acquired))
		}
		out[i] = row
	}
	return out
}
