package view

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nathanbeddoewebdev/donorlens/internal/dashboard/bundles"
	"nathanbeddoewebdev/donorlens/internal/dashboard/domain"
	"nathanbeddoewebdev/donorlens/internal/fetch"
	"nathanbeddoewebdev/donorlens/internal/source"
)

func mustDefinition(t *testing.T, tab string) bundles.Definition {
	t.Helper()
	def, err := bundles.Get(tab)
	if err != nil {
		t.Fatalf("bundles.Get(%s): %v", tab, err)
	}
	return def
}

// gatedRunner blocks each Run until its gate is released. Call n (1-based)
// answers every query with the payload registered for n.
type gatedRunner struct {
	calls    atomic.Int32
	mu       sync.Mutex
	gates    map[int32]chan struct{}
	payloads map[int32]string
	started  chan int32
}

func newGatedRunner() *gatedRunner {
	return &gatedRunner{
		gates:    map[int32]chan struct{}{},
		payloads: map[int32]string{},
		started:  make(chan int32, 8),
	}
}

func (g *gatedRunner) gate(n int32, payload string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch := make(chan struct{})
	g.gates[n] = ch
	g.payloads[n] = payload
	return ch
}

func (g *gatedRunner) Run(ctx context.Context, b fetch.Bundle, token string) fetch.Results {
	n := g.calls.Add(1)
	g.mu.Lock()
	gate, payload := g.gates[n], g.payloads[n]
	g.mu.Unlock()

	if g.started != nil {
		g.started <- n
	}
	if gate != nil {
		<-gate
	}

	out := fetch.Results{}
	for _, q := range b.Queries() {
		out[q.Name] = source.Success([]byte(payload))
	}
	return out
}

func TestTracker_DiscardsStaleCycle(t *testing.T) {
	tr := NewTracker()

	first := tr.Begin(domain.TabRevenue)
	second := tr.Begin(domain.TabRevenue)
	if second <= first {
		t.Fatalf("sequence did not increase: %d then %d", first, second)
	}

	if vm, _ := tr.Current(domain.TabRevenue); vm.Status != StatusLoading || vm.Sequence != second {
		t.Errorf("expected loading model for cycle %d, got %+v", second, vm)
	}

	newer := ViewModel{Tab: domain.TabRevenue, Status: StatusReady, Sequence: second}
	if !tr.Commit(newer) {
		t.Fatal("latest cycle must be committed")
	}

	stale := ViewModel{Tab: domain.TabRevenue, Status: StatusReady, Sequence: first, Title: "stale"}
	if tr.Commit(stale) {
		t.Fatal("stale cycle must be discarded")
	}

	got, ok := tr.Current(domain.TabRevenue)
	if !ok || got.Sequence != second || got.Title == "stale" {
		t.Errorf("Current = %+v, want cycle %d", got, second)
	}
}

func TestTracker_TabsAreIndependent(t *testing.T) {
	tr := NewTracker()

	a := tr.Begin(domain.TabLifecycle)
	b := tr.Begin(domain.TabCampaigns)

	if !tr.Commit(ViewModel{Tab: domain.TabLifecycle, Sequence: a}) {
		t.Error("lifecycle cycle should commit despite a newer campaigns cycle")
	}
	if !tr.Commit(ViewModel{Tab: domain.TabCampaigns, Sequence: b}) {
		t.Error("campaigns cycle should commit")
	}
	if tr.Latest(domain.TabCashflow) != 0 {
		t.Error("untouched tab should have no cycle")
	}
	if tr.Commit(ViewModel{Tab: domain.TabCashflow, Sequence: 1}) {
		t.Error("commit for a tab with no started cycle must be discarded")
	}
}

func TestLoad_LateStaleCycleNeverBecomesVisible(t *testing.T) {
	runner := newGatedRunner()
	releaseFirst := runner.gate(1, `{"streams": [{"source": "old", "amount": 1}]}`)
	runner.gate(2, `{"streams": [{"source": "new", "amount": 2}]}`)
	close(runner.gates[2])

	a := NewAssembler(runner, acme)

	firstDone := make(chan ViewModel, 1)
	go func() {
		firstDone <- a.Load(context.Background(), domain.TabRevenue)
	}()
	select {
	case <-runner.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle never started")
	}

	second := a.Load(context.Background(), domain.TabRevenue)
	if second.Status != StatusReady {
		t.Fatalf("second cycle Status = %s", second.Status)
	}

	close(releaseFirst)
	var first ViewModel
	select {
	case first = <-firstDone:
	case <-time.After(2 * time.Second):
		t.Fatal("first cycle never finished")
	}

	if first.Sequence != second.Sequence {
		t.Errorf("late cycle returned its own model (seq %d), want current seq %d", first.Sequence, second.Sequence)
	}
	current, _ := a.Tracker().Current(domain.TabRevenue)
	rec := current.Record.(domain.RevenueRecord)
	if len(rec.Streams) != 1 || rec.Streams[0].Source != "new" {
		t.Errorf("stale data became visible: %+v", rec.Streams)
	}
}

func TestLoad_ConcurrentTabsDoNotInterfere(t *testing.T) {
	runner := newGatedRunner()
	runner.started = nil
	a := NewAssembler(runner, acme)

	var wg sync.WaitGroup
	results := make(chan ViewModel, len(bundles.List()))
	for _, tab := range bundles.List() {
		wg.Add(1)
		go func(tab string) {
			defer wg.Done()
			results <- a.Load(context.Background(), tab)
		}(tab)
	}
	wg.Wait()
	close(results)

	seen := map[string]bool{}
	for vm := range results {
		if vm.Status != StatusReady {
			t.Errorf("%s: Status = %s", vm.Tab, vm.Status)
		}
		seen[vm.Tab] = true
	}
	if len(seen) != len(bundles.List()) {
		t.Errorf("expected one model per tab, got %v", seen)
	}
}

func TestLoad_TabNameIsCaseInsensitive(t *testing.T) {
	runner := newGatedRunner()
	runner.started = nil
	a := NewAssembler(runner, acme)

	vm := a.Load(context.Background(), "  Lifecycle ")

	if vm.Status != StatusReady {
		t.Fatalf("Status = %s, want ready", vm.Status)
	}
	if vm.Tab != domain.TabLifecycle {
		t.Errorf("Tab = %q, want %q", vm.Tab, domain.TabLifecycle)
	}
	if runner.calls.Load() != 1 {
		t.Errorf("runner invoked %d times, want 1", runner.calls.Load())
	}
	if current, ok := a.Tracker().Current(domain.TabLifecycle); !ok || current.Status != StatusReady {
		t.Errorf("tracker holds %+v, want the ready model", current)
	}
}
