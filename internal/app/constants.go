package app

// DefaultHandSize is the number of cards dealt to each seat at round start.
const DefaultHandSize = 7

// MinSeatsToStart is the minimum occupancy for a round.
const MinSeatsToStart = 2

// RevealSeat marks the dealer's opening reveal in card-played events.
const RevealSeat = -1
