package app

import "gestuno/internal/domain"

// EventKind identifies emitted app events for transport dispatch.
type EventKind string

const (
	EventRoundStarted   EventKind = "round_started"
	EventPossibleHand   EventKind = "possible_hand"
	EventImpossibleHand EventKind = "impossible_hand"
	EventDirection      EventKind = "direction"
	EventCardPlayed     EventKind = "card_played"
	EventCardDrawn      EventKind = "card_drawn"
	EventRoundEnded     EventKind = "round_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // seat indexes; empty means broadcast
}

type RoundStartedPayload struct {
	RoundID   string
	SeatCount int
	HandSize  int
}

// HandPayload carries one seat's possible or impossible hand snapshot.
type HandPayload struct {
	Seat  int
	Cards []domain.Card
}

type DirectionPayload struct {
	Seat      int
	Direction string
}

// CardPlayedPayload announces a resolved selection. Seat is RevealSeat for the
// dealer's opening reveal, and Card is the rank-14 sentinel when the seat drew
// instead of playing.
type CardPlayedPayload struct {
	Seat     int
	Card     domain.Card
	NextSeat int
}

type CardDrawnPayload struct {
	Seat int
	Card domain.Card
}

type RoundEndedPayload struct {
	WinnerSeat int
}
