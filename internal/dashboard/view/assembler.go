package view

import (
	"context"
	"log/slog"
	"time"

	"nathanbeddoewebdev/donorlens/internal/auditlog"
	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
	"nathanbeddoewebdev/donorlens/internal/session"
	"nathanbeddoewebdev/donorlens/internal/util"
)

// Runner executes a bundle. *fetch.Orchestrator satisfies it.
type Runner interface {
	Run(ctx context.Context, b fetch.Bundle, token string) fetch.Results
}

// Assembler runs fetch cycles and turns them into view models.
type Assembler struct {
	runner   Runner
	session  session.Provider
	tracker  *Tracker
	recorder auditlog.Recorder
	logger   *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithRecorder records every completed cycle. Recorder failures are
// logged and never affect the returned model.
func WithRecorder(r auditlog.Recorder) Option {
	return func(a *Assembler) {
		a.recorder = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTracker shares a tracker between assemblers.
func WithTracker(t *Tracker) Option {
	return func(a *Assembler) {
		if t != nil {
			a.tracker = t
		}
	}
}

// NewAssembler returns an Assembler running bundles on runner for the
// organization and credential supplied by sess.
func NewAssembler(runner Runner, sess session.Provider, opts ...Option) *Assembler {
	a := &Assembler{
		runner:  runner,
		session: sess,
		tracker: NewTracker(),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Tracker returns the tracker Load publishes to.
func (a *Assembler) Tracker() *Tracker { return a.tracker }

// Load starts a new cycle for tab, waits for it and returns the model now
// published for the tab. That is the cycle's own model unless a newer
// cycle was started meanwhile. Tab names are matched case-insensitively.
func (a *Assembler) Load(ctx context.Context, tab string) ViewModel {
	tab = util.NormalizeKey(tab)
	seq := a.tracker.Begin(tab)
	vm := a.Assemble(ctx, tab, seq)
	if a.tracker.Commit(vm) {
		return vm
	}
	a.logger.Debug("discarded stale fetch cycle", "tab", tab, "sequence", seq)
	current, _ := a.tracker.Current(tab)
	return current
}

// Assemble runs one fetch cycle for tab stamped with seq. It does not
// consult the tracker, so callers that own sequencing (the TUI) decide
// themselves whether the result is still current.
func (a *Assembler) Assemble(ctx context.Context, tab string, seq uint64) ViewModel {
	tab = util.NormalizeKey(tab)
	start := time.Now()
	org, vm, queries := a.assemble(ctx, tab, seq)
	a.record(vm, org, queries, time.Since(start))
	return vm
}

func (a *Assembler) assemble(ctx context.Context, tab string, seq uint64) (string, ViewModel, int) {
	org, ok := a.session.OrganizationID(ctx)
	if !ok {
		return "", Failed(tab, seq, domain.ErrOrganizationNotFound.Error()), 0
	}

	def, err := bundles.Get(tab)
	if err != nil {
		return org, Failed(tab, seq, err.Error()), 0
	}

	bundle, err := def.Bundle(org)
	if err != nil {
		return org, Failed(def.Name, seq, err.Error()), 0
	}

	token, err := a.session.Token(ctx)
	if err != nil {
		a.logger.Warn("token lookup failed, fetching without credentials", "tab", def.Name, "error", err)
		token = ""
	}

	results := a.runner.Run(ctx, bundle, token)
	vm := Build(def, results, seq)
	a.logger.Debug("fetch cycle assembled",
		"tab", def.Name,
		"sequence", seq,
		"failed", len(vm.FailedQueries),
		"synthetic", vm.Synthetic,
	)
	return org, vm, bundle.Len()
}

func (a *Assembler) record(vm ViewModel, org string, queries int, elapsed time.Duration) {
	if a.recorder == nil {
		return
	}
	entry := &auditlog.CycleEntry{
		Tab:           vm.Tab,
		Organization:  org,
		Sequence:      vm.Sequence,
		Status:        string(vm.Status),
		Queries:       queries,
		FailedQueries: vm.FailedQueries,
		Synthetic:     vm.Synthetic,
		Message:       vm.Message,
		DurationMs:    elapsed.Milliseconds(),
	}
	if err := a.recorder.Record(entry); err != nil {
		a.logger.Warn("failed to record fetch cycle", "tab", vm.Tab, "error", err)
	}
}
