package nakama

import "gestuno/internal/domain"

// GesturePayload is the relay-client form of a predictor push. Classifiers
// that cannot reach the feed endpoint send these as match data instead.
type GesturePayload struct {
	Action string `json:"action"`
}

// SeatInfo describes one occupied seat in the joined ack roster.
type SeatInfo struct {
	Seat  int  `json:"seat"`
	Ready bool `json:"ready"`
}

// JoinedPayload acknowledges a join to the new connection only.
type JoinedPayload struct {
	SeatCount int        `json:"seat_count"`
	Seat      int        `json:"seat"`
	Roster    []SeatInfo `json:"roster"`
}

type ConnectionStatePayload struct {
	Seat      int  `json:"seat"`
	Connected bool `json:"connected"`
}

type ReadyChangedPayload struct {
	Seat  int  `json:"seat"`
	Ready bool `json:"ready"`
}

type RoundStartedPayload struct {
	RoundID   string `json:"round_id"`
	SeatCount int    `json:"seat_count"`
	HandSize  int    `json:"hand_size"`
}

type HandPayload struct {
	Cards []domain.Card `json:"cards"`
}

type DirectionPayload struct {
	Direction string `json:"direction"`
}

// CardPlayedPayload announces a resolved selection. Seat is -1 for the
// dealer's opening reveal; a rank-14 card means the seat drew instead of
// playing.
type CardPlayedPayload struct {
	Seat     int         `json:"seat"`
	Card     domain.Card `json:"card"`
	NextSeat int         `json:"next_seat"`
}

type CardDrawnPayload struct {
	Card domain.Card `json:"card"`
}

type RoundEndedPayload struct {
	WinnerSeat int `json:"winner_seat"`
}

// Label is the match label advertised for quick-match queries.
type Label struct {
	Open  bool   `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}
