package signal

import (
	"sync"

	"gestuno/internal/domain"
	"gestuno/internal/ports"
)

// Registry tracks the live action cells for every match hosted by this
// process. Cells are keyed by match and seat: concurrent matches reuse seat
// indexes, so a seat-only key would let one table's gestures reach another.
// The match handler attaches a seat when a connection joins and detaches it
// on disconnect; the feed server pushes classifications into whatever binding
// is attached at that moment. Pushes for unattached cells are dropped and
// reads of unattached cells return none, so a detach racing an in-flight read
// is harmless.
type Registry struct {
	mu       sync.RWMutex
	bindings map[bindingKey]*Binding
}

type bindingKey struct {
	match string
	seat  int
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[bindingKey]*Binding)}
}

// Match returns the seat-indexed view of one match's cells.
func (r *Registry) Match(matchID string) ports.ActionSource {
	return &matchActions{registry: r, match: matchID}
}

// Push delivers a classification to the addressed cell, if attached.
func (r *Registry) Push(match string, seat int, a domain.Action) {
	if b := r.binding(match, seat); b != nil {
		b.Push(a)
	}
}

func (r *Registry) attach(match string, seat int) {
	r.mu.Lock()
	r.bindings[bindingKey{match: match, seat: seat}] = &Binding{}
	r.mu.Unlock()
}

func (r *Registry) detach(match string, seat int) {
	r.mu.Lock()
	delete(r.bindings, bindingKey{match: match, seat: seat})
	r.mu.Unlock()
}

func (r *Registry) read(match string, seat int) domain.Action {
	if b := r.binding(match, seat); b != nil {
		return b.Read()
	}
	return domain.ActionNone
}

func (r *Registry) latch(match string, seat int) {
	if b := r.binding(match, seat); b != nil {
		b.Latch()
	}
}

func (r *Registry) binding(match string, seat int) *Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bindings[bindingKey{match: match, seat: seat}]
}

// matchActions is the per-match view handed to a match handler. Attach
// registers a fresh binding for the seat, replacing any stale one; Detach is
// idempotent.
type matchActions struct {
	registry *Registry
	match    string
}

func (m *matchActions) Attach(seat int)                { m.registry.attach(m.match, seat) }
func (m *matchActions) Detach(seat int)                { m.registry.detach(m.match, seat) }
func (m *matchActions) Push(seat int, a domain.Action) { m.registry.Push(m.match, seat, a) }
func (m *matchActions) Read(seat int) domain.Action    { return m.registry.read(m.match, seat) }
func (m *matchActions) Latch(seat int)                 { m.registry.latch(m.match, seat) }
