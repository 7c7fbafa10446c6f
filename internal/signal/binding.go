package signal

import (
	"sync"

	"gestuno/internal/domain"
)

// Binding is the single-slot action cell for one seat. The predictor side
// overwrites it at whatever cadence it classifies; the orchestrator reads the
// latest value on its own ticks. Writes collapse: only the last push before a
// read is ever observed, and reads never block.
type Binding struct {
	mu      sync.Mutex
	last    domain.Action
	latched bool
}

// Push records the most recent classified action. A new value releases the
// clench latch; repeats of a still-held clench do not.
func (b *Binding) Push(a domain.Action) {
	b.mu.Lock()
	if a != b.last {
		b.last = a
		b.latched = false
	}
	b.mu.Unlock()
}

// Read returns the latest action. A consumed clench reads as none until the
// predictor reports something else, so a held jaw cannot confirm twice.
func (b *Binding) Read() domain.Action {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.latched && b.last == domain.ActionClench {
		return domain.ActionNone
	}
	return b.last
}

// Latch marks the current clench as consumed. Latching any other action is a
// no-op.
func (b *Binding) Latch() {
	b.mu.Lock()
	if b.last == domain.ActionClench {
		b.latched = true
	}
	b.mu.Unlock()
}
