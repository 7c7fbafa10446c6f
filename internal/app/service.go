package app

import (
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"gestuno/internal/domain"
)

// Service contains the round use-cases operating on domain state.
type Service struct {
	rng      *rand.Rand
	handSize int
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. handSize values below 1 fall back to DefaultHandSize.
func NewService(rng *rand.Rand, handSize int) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if handSize <= 0 {
		handSize = DefaultHandSize
	}
	return &Service{rng: rng, handSize: handSize}
}

var (
	ErrTooFewSeats    = errors.New("not enough occupied seats to start")
	ErrNoTopCard      = errors.New("round has no revealed card")
	ErrEmptySelection = errors.New("selection cursor outside possible hand")
)

// PlayResult summarizes a resolved selection for the turn driver.
type PlayResult struct {
	Selected domain.Card
	NextSeat int
	Won      bool
}

// StartRound builds a shuffled deck, deals every seat its starting hand and
// reveals the first discard. Seat 0 acts first.
func (s *Service) StartRound(seatCount int) (*domain.Round, []Event, error) {
	if seatCount < MinSeatsToStart {
		return nil, nil, ErrTooFewSeats
	}

	deck := domain.NewDeck()
	domain.ShuffleDeck(deck, s.rng)

	round := &domain.Round{
		ID:      uuid.NewString(),
		Deck:    deck,
		Players: make([]*domain.Player, seatCount),
	}
	for seat := range round.Players {
		round.Players[seat] = &domain.Player{Seat: seat}
	}

	for _, pl := range round.Players {
		for i := 0; i < s.handSize; i++ {
			card, ok := round.DrawFromDeck()
			if !ok {
				break
			}
			pl.Hand = append(pl.Hand, card)
		}
	}

	events := []Event{{
		Kind:    EventRoundStarted,
		Payload: RoundStartedPayload{RoundID: round.ID, SeatCount: seatCount, HandSize: s.handSize},
	}}

	if first, ok := round.DrawFromDeck(); ok {
		round.Discard = append(round.Discard, first)
		events = append(events, Event{
			Kind:    EventCardPlayed,
			Payload: CardPlayedPayload{Seat: RevealSeat, Card: first, NextSeat: round.Current},
		})
	}

	return round, events, nil
}

// RecomputeHands refreshes a seat's legal view against the top card and emits
// the two hand events addressed to that seat's connection only.
func (s *Service) RecomputeHands(round *domain.Round, seat int) ([]Event, error) {
	top, ok := round.TopCard()
	if !ok {
		return nil, ErrNoTopCard
	}
	pl := round.Players[seat]
	domain.RecomputeHands(pl, top)

	return []Event{
		{
			Kind:       EventPossibleHand,
			Payload:    HandPayload{Seat: seat, Cards: snapshotCards(pl.PossibleHand)},
			Recipients: []int{seat},
		},
		{
			Kind:       EventImpossibleHand,
			Payload:    HandPayload{Seat: seat, Cards: snapshotCards(pl.ImpossibleHand)},
			Recipients: []int{seat},
		},
	}, nil
}

// MoveCursor shifts the acting seat's selection and echoes the direction taken
// back to that seat. Actions other than left and right are ignored.
func (s *Service) MoveCursor(round *domain.Round, seat int, action domain.Action) []Event {
	pl := round.Players[seat]
	switch action {
	case domain.ActionLeft:
		pl.MoveCursor(-1)
	case domain.ActionRight:
		pl.MoveCursor(1)
	default:
		return nil
	}
	return []Event{{
		Kind:       EventDirection,
		Payload:    DirectionPayload{Seat: seat, Direction: string(action)},
		Recipients: []int{seat},
	}}
}

// ResolvePlay commits the entry under the acting seat's cursor. Selecting the
// rank-14 sentinel draws from the deck instead of playing; anything else goes
// onto the discard pile and becomes the top card. The played card is carried
// in a broadcast event so every seat can update its view, and the hand removal
// targets the selected card itself, never the cursor position.
func (s *Service) ResolvePlay(round *domain.Round, seat int) (PlayResult, []Event, error) {
	pl := round.Players[seat]
	if pl.Cursor < 0 || pl.Cursor >= len(pl.PossibleHand) {
		return PlayResult{}, nil, ErrEmptySelection
	}

	selected := pl.Selected()
	seatCount := len(round.Players)
	result := PlayResult{
		Selected: selected,
		NextSeat: domain.NextSeat(selected.Rank, seat, seatCount),
	}

	var events []Event
	if selected.Rank == domain.RankDrawCard {
		if card, ok := round.DrawFromDeck(); ok {
			pl.Hand = append(pl.Hand, card)
			events = append(events, Event{
				Kind:       EventCardDrawn,
				Payload:    CardDrawnPayload{Seat: seat, Card: card},
				Recipients: []int{seat},
			})
		}
	} else {
		round.Discard = append(round.Discard, selected)
		// A rank-15 solid is never held, so this is a no-op for it; the wild
		// it resolves already left the hand when it was played.
		pl.RemoveFromHand(selected)

		target := (seat + 1) % seatCount
		for i := 0; i < domain.PenaltyDraws(selected.Rank); i++ {
			card, ok := round.DrawFromDeck()
			if !ok {
				break
			}
			round.Players[target].Hand = append(round.Players[target].Hand, card)
		}
	}

	events = append(events, Event{
		Kind:    EventCardPlayed,
		Payload: CardPlayedPayload{Seat: seat, Card: selected, NextSeat: result.NextSeat},
	})

	// An emptied hand wins once no color choice is pending. A wild that
	// empties the hand still owes its rank-15 resolution first.
	if len(pl.Hand) == 0 && selected.Rank != domain.RankDrawFour && selected.Rank != domain.RankChooseColor {
		result.Won = true
		events = append(events, Event{
			Kind:    EventRoundEnded,
			Payload: RoundEndedPayload{WinnerSeat: seat},
		})
	}

	return result, events, nil
}

func snapshotCards(cards []domain.Card) []domain.Card {
	return append([]domain.Card(nil), cards...)
}
