package domain

// RecomputeHands rebuilds the seat's possible and impossible hands against the
// current top card and recenters the selection cursor.
//
// A top card of rank 12 or 13 is a wild awaiting its color choice: the seat is
// offered exactly four rank-15 solids and nothing else. Otherwise the hand is
// partitioned by the matching rule, and the draw sentinel is offered only when
// nothing in the hand is playable. The possible hand is never empty.
func RecomputeHands(p *Player, top Card) {
	p.PossibleHand = p.PossibleHand[:0]
	p.ImpossibleHand = p.ImpossibleHand[:0]

	switch top.Rank {
	case RankDrawFour, RankChooseColor:
		for _, color := range SolidColors {
			p.PossibleHand = append(p.PossibleHand, Card{Color: color, Rank: RankSolidColor, Special: true})
		}
	default:
		for _, held := range p.Hand {
			if Playable(held, top) {
				p.PossibleHand = append(p.PossibleHand, held)
			} else {
				p.ImpossibleHand = append(p.ImpossibleHand, held)
			}
		}
		if len(p.PossibleHand) == 0 {
			p.PossibleHand = append(p.PossibleHand, DrawCard())
		}
	}

	p.Cursor = len(p.PossibleHand) / 2
}

// Playable reports whether held may be placed on top: matching color, matching
// rank, or a wild.
func Playable(held, top Card) bool {
	return held.Color == top.Color || held.Color == ColorWild || held.Rank == top.Rank
}
