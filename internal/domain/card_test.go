package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck_Composition(t *testing.T) {
	deck := NewDeck()

	if len(deck) != 56 {
		t.Fatalf("deck size = %d, want 56", len(deck))
	}

	byRank := make(map[int]int)
	byColor := make(map[Color]int)
	for _, c := range deck {
		byRank[c.Rank]++
		byColor[c.Color]++

		wild := c.Rank == RankDrawFour || c.Rank == RankChooseColor
		if c.Special != wild {
			t.Fatalf("card %+v: Special = %t, want %t", c, c.Special, wild)
		}
		if wild && c.Color != ColorWild {
			t.Fatalf("card %+v: wild rank carries color %q", c, c.Color)
		}
	}

	for rank := 0; rank <= RankChooseColor; rank++ {
		if byRank[rank] != 4 {
			t.Errorf("rank %d count = %d, want 4", rank, byRank[rank])
		}
	}
	for _, color := range SolidColors {
		if byColor[color] != 12 {
			t.Errorf("color %s count = %d, want 12", color, byColor[color])
		}
	}
	if byColor[ColorWild] != 8 {
		t.Errorf("wild count = %d, want 8", byColor[ColorWild])
	}
}

func TestNewDeck_NoSentinelRanks(t *testing.T) {
	for _, c := range NewDeck() {
		if c.Rank == RankDrawCard || c.Rank == RankSolidColor {
			t.Fatalf("deck contains synthetic rank %d", c.Rank)
		}
	}
}

func TestShuffleDeck_PreservesCards(t *testing.T) {
	deck := NewDeck()
	ShuffleDeck(deck, rand.New(rand.NewSource(7)))

	if len(deck) != 56 {
		t.Fatalf("deck size after shuffle = %d, want 56", len(deck))
	}

	counts := make(map[Card]int)
	for _, c := range deck {
		counts[c]++
	}
	for _, c := range NewDeck() {
		counts[c]--
	}
	for c, n := range counts {
		if n != 0 {
			t.Fatalf("card %+v count off by %d after shuffle", c, n)
		}
	}
}

func TestDrawCard(t *testing.T) {
	c := DrawCard()
	if c.Rank != RankDrawCard || c.Color != ColorWild || !c.Special {
		t.Fatalf("DrawCard() = %+v", c)
	}
}
