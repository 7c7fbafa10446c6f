package ports

import "gestuno/internal/domain"

// ActionSource exposes the latest classified action per seat to the match
// loop. Attach and Detach bracket a connection's occupancy of a seat; Detach
// is idempotent and reads after it observe none rather than failing.
type ActionSource interface {
	Attach(seat int)
	Detach(seat int)
	Push(seat int, a domain.Action)
	Read(seat int) domain.Action
	Latch(seat int)
}

// ActionRouter hands each match its own seat namespace. Concurrent matches
// reuse seat indexes, so a shared seat-only view would leak gestures between
// tables.
type ActionRouter interface {
	Match(matchID string) ActionSource
}
