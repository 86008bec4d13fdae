// Package view assembles the immutable view model of a dashboard tab.
//
// A ViewModel is always replaced as a whole. Build produces a Ready model
// from settled fetch results; Loading and Failed produce the other two
// states. Tracker decides which of several overlapping fetch cycles may
// become visible.
package view

import (
	"slices"
	"time"

	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/dashboard/calc"
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
)

// Status is the lifecycle state of a ViewModel.
type Status string

const (
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusError   Status = "error"
)

// ViewModel is one tab's snapshot. Record and Metrics are set only when
// Status is StatusReady; Message only when it is StatusError.
type ViewModel struct {
	Tab     string         `json:"tab"`
	Title   string         `json:"title"`
	Status  Status         `json:"status"`
	Message string         `json:"message,omitempty"`
	Record  domain.Record  `json:"record"`
	Metrics domain.Metrics `json:"metrics"`

	// Synthetic reports that some section of Record is placeholder data.
	Synthetic bool `json:"synthetic"`

	// FailedQueries lists, sorted, the queries whose values were defaulted.
	FailedQueries []string `json:"failed_queries"`

	Sequence    uint64    `json:"sequence"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Ready reports whether the model carries a record.
func (vm ViewModel) Ready() bool { return vm.Status == StatusReady }

// Partial reports whether a Ready model was built with defaulted queries.
func (vm ViewModel) Partial() bool { return vm.Ready() && len(vm.FailedQueries) > 0 }

// Build normalizes results with def, derives the metrics and returns a
// Ready model. A query of def missing from results counts as failed.
func Build(def bundles.Definition, results fetch.Results, seq uint64) ViewModel {
	rec := def.Normalize(results)

	failed := []string{}
	for _, e := range def.Endpoints {
		if !results.Get(e.Name).OK() {
			failed = append(failed, e.Name)
		}
	}
	slices.Sort(failed)

	return ViewModel{
		Tab:           def.Name,
		Title:         def.Title,
		Status:        StatusReady,
		Record:        rec,
		Metrics:       calc.Compute(rec),
		Synthetic:     rec.IsSynthetic(),
		FailedQueries: failed,
		Sequence:      seq,
		GeneratedAt:   time.Now().UTC(),
	}
}

// Loading returns the placeholder model shown while a cycle is in flight.
func Loading(tab string, seq uint64) ViewModel {
	return ViewModel{
		Tab:           tab,
		Title:         title(tab),
		Status:        StatusLoading,
		FailedQueries: []string{},
		Sequence:      seq,
		GeneratedAt:   time.Now().UTC(),
	}
}

// Failed returns an Error model carrying msg.
func Failed(tab string, seq uint64, msg string) ViewModel {
	return ViewModel{
		Tab:           tab,
		Title:         title(tab),
		Status:        StatusError,
		Message:       msg,
		FailedQueries: []string{},
		Sequence:      seq,
		GeneratedAt:   time.Now().UTC(),
	}
}

func title(tab string) string {
	if def, err := bundles.Get(tab); err == nil {
		return def.Title
	}
	return tab
}
