package calc

import (
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
)

// Stage labels in display order.
var stageLabels = []string{"Active", "New", "Lapsed", "At risk", "Reactivated"}

// Compute derives the metrics for rec's tab. It returns nil for an unknown
// record type.
func Compute(rec domain.Record) domain.Metrics {
	switch r := rec.(type) {
	case domain.LifecycleRecord:
		return Lifecycle(r)
	case domain.IntelligenceRecord:
		return Intelligence(r)
	case domain.CampaignRecord:
		return Campaigns(r)
	case domain.RevenueRecord:
		return Revenue(r)
	case domain.CohortRecord:
		return Cohorts(r)
	case domain.CashflowRecord:
		return Cashflow(r)
	default:
		return nil
	}
}

// Lifecycle derives retention, lifetime value, stage shares, giving levels
// and the segment migration matrix.
func Lifecycle(rec domain.LifecycleRecord) domain.LifecycleMetrics {
	s := rec.Stages
	return domain.LifecycleMetrics{
		RetentionRate:        RetentionRate(s.Active, s.NewDonor, s.Lapsed),
		AverageLifetimeValue: AverageLifetimeValue(rec.TotalPipelineValue, rec.TotalDonors),
		StageShares: Shares(stageLabels, []float64{
			float64(s.Active),
			float64(s.NewDonor),
			float64(s.Lapsed),
			float64(s.AtRisk),
			float64(s.Reactivated),
		}),
		GivingLevels: Histogram(rec.GivingDonors, rec.GivingRevenue, DefaultGivingLevels),
		Migration:    MigrationMatrix(rec.Segments, rec.Movements),
	}
}

// Intelligence derives segment, risk and health shares, the expected
// revenue at risk and year-over-year deltas.
func Intelligence(rec domain.IntelligenceRecord) domain.IntelligenceMetrics {
	segNames := make([]string, len(rec.RFMSegments))
	segCounts := make([]float64, len(rec.RFMSegments))
	for i, s := range rec.RFMSegments {
		segNames[i] = s.Name
		segCounts[i] = float64(s.Count)
	}

	bandNames := make([]string, len(rec.HealthBands))
	bandCounts := make([]float64, len(rec.HealthBands))
	for i, b := range rec.HealthBands {
		bandNames[i] = b.Band
		bandCounts[i] = float64(b.Count)
	}

	return domain.IntelligenceMetrics{
		SegmentShares: Shares(segNames, segCounts),
		RiskShares: Shares(
			[]string{"High", "Medium", "Low"},
			[]float64{float64(rec.Churn.High), float64(rec.Churn.Medium), float64(rec.Churn.Low)},
		),
		HealthShares:          Shares(bandNames, bandCounts),
		ExpectedRevenueAtRisk: ExpectedLoss(rec.AtRisk),
		Deltas:                Deltas(rec.YearOverYear),
	}
}

// Campaigns derives per-campaign and per-channel performance and totals.
func Campaigns(rec domain.CampaignRecord) domain.CampaignMetrics {
	m := domain.CampaignMetrics{
		Performance: make([]domain.CampaignPerformance, len(rec.Campaigns)),
		Channels:    make([]domain.ChannelPerformance, len(rec.Channels)),
	}

	names := make([]string, len(rec.Campaigns))
	raised := make([]float64, len(rec.Campaigns))
	for i, c := range rec.Campaigns {
		m.Performance[i] = domain.CampaignPerformance{
			ID:            c.ID,
			Name:          c.Name,
			ROI:           ROI(c.Raised, c.Cost),
			GoalProgress:  Percent(c.Raised, c.Goal),
			CostPerDollar: round(Ratio(c.Cost, c.Raised), 2),
			AverageGift:   round(Ratio(c.Raised, float64(c.Donors)), 2),
		}
		names[i] = c.Name
		raised[i] = c.Raised
		m.TotalRaised += c.Raised
		m.TotalCost += c.Cost
	}

	for i, ch := range rec.Channels {
		m.Channels[i] = domain.ChannelPerformance{
			Name: ch.Name,
			ROI:  ROI(ch.Revenue, ch.Cost),
		}
	}

	m.RevenueShares = Shares(names, raised)
	m.OverallROI = ROI(m.TotalRaised, m.TotalCost)
	return m
}

// Revenue derives source shares, diversification, monthly and
// year-to-date deltas and recurring giving ratios.
func Revenue(rec domain.RevenueRecord) domain.RevenueMetrics {
	names := make([]string, len(rec.Streams))
	amounts := make([]float64, len(rec.Streams))
	total := 0.0
	for i, s := range rec.Streams {
		names[i] = s.Source
		amounts[i] = s.Amount
		if s.Amount > 0 {
			total += s.Amount
		}
	}

	m := domain.RevenueMetrics{
		SourceShares:          Shares(names, amounts),
		DiversificationIndex:  DiversificationIndex(amounts),
		MonthlyDeltas:         make([]domain.Delta, len(rec.Monthly)),
		AverageRecurringGift:  round(Ratio(rec.RecurringRevenue, float64(rec.RecurringDonors)), 2),
		RecurringRevenueShare: Percent(rec.RecurringRevenue, total),
	}
	for _, s := range m.SourceShares {
		m.LargestSourceShare = max(m.LargestSourceShare, s.Percent)
	}

	var lastYear, thisYear float64
	for i, mo := range rec.Monthly {
		m.MonthlyDeltas[i] = Delta(mo.Period, mo.LastYear, mo.ThisYear)
		lastYear += mo.LastYear
		thisYear += mo.ThisYear
	}
	m.YearToDate = Delta("Year to date", lastYear, thisYear)
	return m
}

// Cohorts derives the retention grid, average retention per period,
// cohort-over-cohort acquisition deltas and channel economics.
func Cohorts(rec domain.CohortRecord) domain.CohortMetrics {
	grid := CohortRetentionGrid(rec.Cohorts)

	deltas := make([]domain.Delta, 0, max(len(rec.Cohorts)-1, 0))
	for i := 1; i < len(rec.Cohorts); i++ {
		prev, cur := rec.Cohorts[i-1], rec.Cohorts[i]
		deltas = append(deltas, Delta(cur.Label, float64(prev.Acquired), float64(cur.Acquired)))
	}

	names := make([]string, len(rec.Channels))
	donors := make([]float64, len(rec.Channels))
	perDonor := make([]domain.Share, len(rec.Channels))
	for i, c := range rec.Channels {
		names[i] = c.Name
		donors[i] = float64(c.Donors)
		perDonor[i] = domain.Share{
			Name:  c.Name,
			Value: round(Ratio(c.Revenue, float64(c.Donors)), 2),
		}
	}

	return domain.CohortMetrics{
		RetentionGrid:    grid,
		AverageRetention: AverageByColumn(grid),
		CohortDeltas:     deltas,
		ChannelShares:    Shares(names, donors),
		RevenuePerDonor:  perDonor,
	}
}

// Cashflow derives month and category totals, the peak month and the
// forecast variance per period.
func Cashflow(rec domain.CashflowRecord) domain.CashflowMetrics {
	months := ColumnTotals(rec.Grid.Values)
	// Grids are shaped by the normalizer, but a grid with no categories
	// still has a month axis.
	if len(months) < len(rec.Grid.Months) {
		months = append(months, make([]float64, len(rec.Grid.Months)-len(months))...)
	}

	m := domain.CashflowMetrics{
		MonthTotals:    months,
		CategoryTotals: RowTotals(rec.Grid.Values),
		Variance:       make([]domain.Delta, len(rec.Forecast)),
	}
	for _, v := range m.CategoryTotals {
		m.GrandTotal += v
	}

	peak := -1
	for j, v := range months {
		if j >= len(rec.Grid.Months) {
			break
		}
		if v > 0 && (peak < 0 || v > months[peak]) {
			peak = j
		}
	}
	if peak >= 0 {
		m.PeakMonth = rec.Grid.Months[peak]
	}

	for i, p := range rec.Forecast {
		m.Variance[i] = Delta(p.Period, p.Projected, p.Actual)
	}
	return m
}
