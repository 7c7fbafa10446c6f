package domain

// PenaltyDraws returns how many cards the next seat in turn order must draw
// after a card of the given rank is played.
func PenaltyDraws(rank int) int {
	switch rank {
	case RankDrawTwo:
		return 2
	case RankDrawFour:
		return 4
	default:
		return 0
	}
}

// KeepsTurn reports whether playing the given rank leaves the turn with the
// acting seat. Skip, draw-two, draw-four and the color-choice wild all hold
// the turn; number cards, the draw action and a chosen solid pass it on.
func KeepsTurn(rank int) bool {
	return rank > 9 && rank < RankDrawCard
}

// NextSeat resolves the seat to act after the given seat plays rank.
func NextSeat(rank, seat, seatCount int) int {
	if KeepsTurn(rank) {
		return seat
	}
	return (seat + 1) % seatCount
}
