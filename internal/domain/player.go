package domain

// Player holds the per-seat card state for one round participant. Readiness
// and connection bindings live with the orchestrator, not here.
type Player struct {
	Seat           int
	Hand           []Card
	PossibleHand   []Card
	ImpossibleHand []Card
	Cursor         int
}

// MoveCursor shifts the selection cursor one step with wraparound.
func (p *Player) MoveCursor(delta int) {
	n := len(p.PossibleHand)
	if n == 0 {
		return
	}
	p.Cursor = ((p.Cursor+delta)%n + n) % n
}

// Selected returns the possible-hand entry under the cursor.
func (p *Player) Selected() Card {
	return p.PossibleHand[p.Cursor]
}

// RemoveFromHand removes the first card equal to c from the hand and reports
// whether a card was removed. Equality stands in for identity here: every
// non-wild card exists once per deck and wild copies are interchangeable.
// Removal is never driven by the possible-hand cursor index, which does not
// correspond to hand positions.
func (p *Player) RemoveFromHand(c Card) bool {
	for i, held := range p.Hand {
		if held == c {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}
