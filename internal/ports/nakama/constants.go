package nakama

// RpcQuickMatch is the Nakama RPC id clients call to find or create a match.
const RpcQuickMatch = "quick_match"

// MatchName is the authoritative match handler name registered with Nakama.
const MatchName = "gestuno_match"

// GameLabel identifies this game in match labels and quick-match queries.
const GameLabel = "gestuno"

// TickRate is the match loop frequency. 20 ticks per second gives 50ms
// resolution for the readiness and selection polls.
const TickRate = 20

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpCodeGesture int64 = 1

	// Server -> Client events
	OpCodeJoined          int64 = 101
	OpCodeConnectionState int64 = 102
	OpCodeReadyListen     int64 = 103
	OpCodeReadyChanged    int64 = 104
	OpCodeRoundStarted    int64 = 105
	OpCodePossibleHand    int64 = 106
	OpCodeImpossibleHand  int64 = 107
	OpCodeDirection       int64 = 108
	OpCodeCardPlayed      int64 = 109
	OpCodeCardDrawn       int64 = 110
	OpCodeRoundEnded      int64 = 111
	OpCodeRoundClosed     int64 = 112
)
