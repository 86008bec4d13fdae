package view

import "sync"

// Tracker publishes the view model of the most recently started fetch
// cycle of each tab. Cycles are never cancelled; a cycle that completes
// after a newer one has started is discarded by Commit.
type Tracker struct {
	mu      sync.Mutex
	next    uint64
	latest  map[string]uint64
	current map[string]ViewModel
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		latest:  map[string]uint64{},
		current: map[string]ViewModel{},
	}
}

// Begin stamps a new cycle for tab, publishes its Loading model and returns
// the cycle's sequence number. Sequence numbers increase monotonically
// across all tabs.
func (t *Tracker) Begin(tab string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	seq := t.next
	t.latest[tab] = seq
	t.current[tab] = Loading(tab, seq)
	return seq
}

// Commit publishes vm if it belongs to the latest cycle of its tab and
// reports whether it did.
func (t *Tracker) Commit(vm ViewModel) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if latest, ok := t.latest[vm.Tab]; !ok || vm.Sequence != latest {
		return false
	}
	t.current[vm.Tab] = vm
	return true
}

// Latest returns the sequence of the most recent cycle started for tab, or
// 0 if none was.
func (t *Tracker) Latest(tab string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[tab]
}

// Current returns the published model for tab.
func (t *Tracker) Current(tab string) (ViewModel, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	vm, ok := t.current[tab]
	return vm, ok
}
