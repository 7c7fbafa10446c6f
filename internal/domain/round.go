package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby indicates the match is waiting for seats to fill.
	PhaseLobby Phase = "lobby"
	// PhaseReady indicates every seat must confirm before a round starts.
	PhaseReady Phase = "ready"
	// PhasePlaying indicates a round is actively in progress.
	PhasePlaying Phase = "playing"
	// PhaseEnding indicates a winner was announced and the close timer is armed.
	PhaseEnding Phase = "ending"
)

// Round owns the cards for one played round. Every dealt card lives in exactly
// one of the deck, the discard pile, or a single player's hand; the rank-14
// and rank-15 entries are synthesized views and are never dealt.
type Round struct {
	ID      string
	Deck    []Card
	Discard []Card
	Players []*Player
	Current int
}

// TopCard returns the last discarded card. The second result is false when
// nothing has been played yet.
func (r *Round) TopCard() (Card, bool) {
	if len(r.Discard) == 0 {
		return Card{}, false
	}
	return r.Discard[len(r.Discard)-1], true
}

// DrawFromDeck pops the top of the deck. An empty deck is not an error; the
// caller simply receives no card.
func (r *Round) DrawFromDeck() (Card, bool) {
	if len(r.Deck) == 0 {
		return Card{}, false
	}
	c := r.Deck[len(r.Deck)-1]
	r.Deck = r.Deck[:len(r.Deck)-1]
	return c, true
}
