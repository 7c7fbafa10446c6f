package domain

import "math/rand"

// Color identifies a card face color. Wild cards carry ColorWild until a
// solid-color placeholder resolves the choice.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorWild   Color = "wild"
)

// SolidColors lists the four playable colors in the fixed order offered when a
// wild card is awaiting its color choice.
var SolidColors = [4]Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}

// Ranks 0-9 are number cards. Higher ranks encode behavior.
const (
	RankSkip        = 10
	RankDrawTwo     = 11
	RankDrawFour    = 12 // wild
	RankChooseColor = 13 // wild
	RankDrawCard    = 14 // selectable draw action, never stored in a hand
	RankSolidColor  = 15 // synthetic color choice, never stored in a hand
)

// Card is a single card. Special marks entries playable on any color.
type Card struct {
	Color   Color `json:"color"`
	Rank    int   `json:"rank"`
	Special bool  `json:"special"`
}

// DrawCard returns the rank-14 sentinel offered when a seat must draw.
func DrawCard() Card {
	return Card{Color: ColorWild, Rank: RankDrawCard, Special: true}
}

// NewDeck returns the unshuffled 56-card deck: one card per color for ranks
// 0-11 and four wild copies each of ranks 12 and 13.
func NewDeck() []Card {
	deck := make([]Card, 0, 56)
	for rank := 0; rank < RankDrawFour; rank++ {
		for _, color := range SolidColors {
			deck = append(deck, Card{Color: color, Rank: rank})
		}
	}
	for rank := RankDrawFour; rank <= RankChooseColor; rank++ {
		for range SolidColors {
			deck = append(deck, Card{Color: ColorWild, Rank: rank, Special: true})
		}
	}
	return deck
}

// ShuffleDeck permutes the deck in place with the provided rng.
func ShuffleDeck(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}
