// Package domain defines the normalized records and derived metrics of each
// dashboard tab. Records are fully populated: numeric fields default to zero
// and slices are never nil.
package domain

// Tab names. Each tab is backed by one bundle of queries.
const (
	TabLifecycle    = "lifecycle"
	TabIntelligence = "intelligence"
	TabCampaigns    = "campaigns"
	TabRevenue      = "revenue"
	TabCohorts      = "cohorts"
	TabCashflow     = "cashflow"
)

// Record is the normalized, defaulted view of one bundle's results.
type Record interface {
	Tab() string
	IsSynthetic() bool
}

// Metrics holds the values derived from a Record.
type Metrics interface {
	Tab() string
}

// Share is one named slice of a total.
type Share struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// Delta compares two periods of one series.
type Delta struct {
	Name       string  `json:"name"`
	LastPeriod float64 `json:"last_period"`
	ThisPeriod float64 `json:"this_period"`
	Change     float64 `json:"change"`
	ChangePct  float64 `json:"change_pct"`
}

// HistogramBucket is one bucket of a weighted distribution.
type HistogramBucket struct {
	Label   string  `json:"label"`
	Donors  float64 `json:"donors"`
	Revenue float64 `json:"revenue"`
}

// Matrix is a square count matrix indexed by Labels on both axes.
type Matrix struct {
	Labels []string `json:"labels"`
	Cells  [][]int  `json:"cells"`
	// Unmatched counts movements whose segments are not in Labels.
	Unmatched int `json:"unmatched"`
}

// Placeholder marks which queries of a record were replaced by synthetic
// sample data. Embedded by records of tabs that declare synthetic fallback.
type Placeholder struct {
	Synthetic        bool     `json:"synthetic"`
	SyntheticSources []string `json:"synthetic_sources"`
}

// IsSynthetic reports whether any section holds sample data.
func (p Placeholder) IsSynthetic() bool { return p.Synthetic }

// Mark flags query as replaced by sample data.
func (p *Placeholder) Mark(query string) {
	p.Synthetic = true
	p.SyntheticSources = append(p.SyntheticSources, query)
}
