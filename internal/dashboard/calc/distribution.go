package calc

import (
	"math"

	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
)

// Bucket is one named slice of a weighted distribution. Weights are
// fractions of the total and are expected to sum to 1 per column.
type Bucket struct {
	Label         string
	DonorWeight   float64
	RevenueWeight float64
}

// DefaultGivingLevels is the giving-level table used by the lifecycle tab.
// The bucket boundaries and weights are fixed business constants, not
// derived from donor data.
var DefaultGivingLevels = []Bucket{
	{Label: "Under $100", DonorWeight: 0.45, RevenueWeight: 0.05},
	{Label: "$100-$499", DonorWeight: 0.30, RevenueWeight: 0.15},
	{Label: "$500-$999", DonorWeight: 0.12, RevenueWeight: 0.15},
	{Label: "$1K-$4,999", DonorWeight: 0.09, RevenueWeight: 0.25},
	{Label: "$5K+", DonorWeight: 0.04, RevenueWeight: 0.40},
}

// Histogram distributes totalDonors and totalRevenue over buckets in
// bucket order. Donor counts are rounded to whole donors and revenue to
// cents. Negative totals are treated as zero.
func Histogram(totalDonors int, totalRevenue float64, buckets []Bucket) []domain.HistogramBucket {
	donors := math.Max(float64(totalDonors), 0)
	revenue := math.Max(totalRevenue, 0)

	out := make([]domain.HistogramBucket, len(buckets))
	for i, b := range buckets {
		out[i] = domain.HistogramBucket{
			Label:   b.Label,
			Donors:  math.Round(donors * b.DonorWeight),
			Revenue: round(revenue*b.RevenueWeight, 2),
		}
	}
	return out
}

// MigrationMatrix builds a square matrix over segments where cell (i, j)
// sums the donors that moved from segments[i] to segments[j]. A donor who
// stays in a segment appears on the diagonal only if the source reported
// that movement. Movements naming a segment outside the list are counted in
// Unmatched rather than dropped silently.
func MigrationMatrix(segments []string, movements []domain.Movement) domain.Matrix {
	index := make(map[string]int, len(segments))
	labels := make([]string, 0, len(segments))
	for _, s := range segments {
		if _, ok := index[s]; ok {
			continue
		}
		index[s] = len(labels)
		labels = append(labels, s)
	}

	cells := make([][]int, len(labels))
	for i := range cells {
		cells[i] = make([]int, len(labels))
	}

	m := domain.Matrix{Labels: labels, Cells: cells}
	for _, mv := range movements {
		i, okFrom := index[mv.From]
		j, okTo := index[mv.To]
		if !okFrom || !okTo {
			m.Unmatched += mv.Count
			continue
		}
		cells[i][j] += mv.Count
	}
	return m
}
