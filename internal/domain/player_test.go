package domain

import "testing"

func TestMoveCursor_Wraparound(t *testing.T) {
	p := &Player{
		PossibleHand: []Card{
			{Color: ColorRed, Rank: 1},
			{Color: ColorRed, Rank: 2},
			{Color: ColorRed, Rank: 3},
		},
	}

	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"RightFromMiddle", 1, 1, 2},
		{"RightWraps", 2, 1, 0},
		{"LeftFromMiddle", 1, -1, 0},
		{"LeftWraps", 0, -1, 2},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			p.Cursor = test.start
			p.MoveCursor(test.delta)
			if p.Cursor != test.want {
				t.Fatalf("cursor = %d, want %d", p.Cursor, test.want)
			}
		})
	}
}

func TestMoveCursor_LeftThenRightReturns(t *testing.T) {
	p := &Player{
		PossibleHand: []Card{
			{Color: ColorRed, Rank: 1},
			{Color: ColorRed, Rank: 2},
			{Color: ColorRed, Rank: 3},
			{Color: ColorRed, Rank: 4},
		},
	}
	for start := 0; start < len(p.PossibleHand); start++ {
		p.Cursor = start
		p.MoveCursor(-1)
		p.MoveCursor(1)
		if p.Cursor != start {
			t.Fatalf("start %d: left then right landed on %d", start, p.Cursor)
		}
	}
}

func TestMoveCursor_EmptyHandIsNoop(t *testing.T) {
	p := &Player{}
	p.MoveCursor(1)
	if p.Cursor != 0 {
		t.Fatalf("cursor = %d, want 0", p.Cursor)
	}
}

func TestRemoveFromHand(t *testing.T) {
	hand := []Card{
		{Color: ColorRed, Rank: 3},
		{Color: ColorBlue, Rank: 3},
		{Color: ColorWild, Rank: RankDrawFour, Special: true},
		{Color: ColorWild, Rank: RankDrawFour, Special: true},
	}

	t.Run("RemovesExactCard", func(t *testing.T) {
		p := &Player{Hand: append([]Card(nil), hand...)}
		if !p.RemoveFromHand(Card{Color: ColorBlue, Rank: 3}) {
			t.Fatal("expected removal")
		}
		if len(p.Hand) != 3 {
			t.Fatalf("hand size = %d, want 3", len(p.Hand))
		}
		for _, c := range p.Hand {
			if c == (Card{Color: ColorBlue, Rank: 3}) {
				t.Fatal("blue 3 still in hand")
			}
		}
	})

	t.Run("RemovesOneWildCopy", func(t *testing.T) {
		p := &Player{Hand: append([]Card(nil), hand...)}
		if !p.RemoveFromHand(Card{Color: ColorWild, Rank: RankDrawFour, Special: true}) {
			t.Fatal("expected removal")
		}
		wilds := 0
		for _, c := range p.Hand {
			if c.Rank == RankDrawFour {
				wilds++
			}
		}
		if wilds != 1 {
			t.Fatalf("wild copies left = %d, want 1", wilds)
		}
	})

	t.Run("MissingCard", func(t *testing.T) {
		p := &Player{Hand: append([]Card(nil), hand...)}
		if p.RemoveFromHand(Card{Color: ColorGreen, Rank: 9}) {
			t.Fatal("removed a card that was not held")
		}
		if len(p.Hand) != len(hand) {
			t.Fatalf("hand size = %d, want %d", len(p.Hand), len(hand))
		}
	})
}
