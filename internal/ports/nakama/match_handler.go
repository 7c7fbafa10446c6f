package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"gestuno/internal/app"
	"gestuno/internal/config"
	"gestuno/internal/domain"
	"gestuno/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchState holds the authoritative runtime state for one match. The match
// loop goroutine is the only writer of everything here; the predictor side
// only ever touches the per-seat cells behind Actions.
type MatchState struct {
	Phase domain.Phase

	Seats     []string // seat index -> user id, "" for an empty seat
	Ready     []bool
	Presences map[string]runtime.Presence

	App     *app.Service
	Actions ports.ActionSource
	Round   *domain.Round

	Tick              int64
	NeedRecompute     bool
	CloseDeadlineTick int64

	SeatCount          int
	ReadyPollTicks     int
	SelectionPollTicks int
	RoundCloseTicks    int64
}

// OccupiedSeatCount returns the number of bound seats.
func (ms *MatchState) OccupiedSeatCount() int {
	count := 0
	for _, uid := range ms.Seats {
		if uid != "" {
			count++
		}
	}
	return count
}

func lowestFreeSeat(seats []string) int {
	for i, uid := range seats {
		if uid == "" {
			return i
		}
	}
	return -1
}

func seatOf(seats []string, userID string) int {
	for i, uid := range seats {
		if uid == userID {
			return i
		}
	}
	return -1
}

type matchHandler struct {
	actions ports.ActionRouter
}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	c := config.GetGameConfig()

	// Scope the action cells to this match; seat indexes repeat across
	// concurrent matches.
	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)

	state := &MatchState{
		Phase:              domain.PhaseLobby,
		Presences:          make(map[string]runtime.Presence),
		App:                app.NewService(nil, c.StartHandSize),
		Actions:            mh.actions.Match(matchID),
		SeatCount:          c.SeatCount,
		ReadyPollTicks:     c.ReadyPollTicks,
		SelectionPollTicks: c.SelectionPollTicks,
		RoundCloseTicks:    int64(c.RoundCloseSeconds) * TickRate,
	}

	// Environment overrides for local runs and tests.
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["gestuno_seat_count"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i >= app.MinSeatsToStart {
			state.SeatCount = i
		}
	}
	if val, ok := env["gestuno_round_close_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil && i > 0 {
			state.RoundCloseTicks = int64(i) * TickRate
		}
	}

	state.Seats = make([]string, state.SeatCount)
	state.Ready = make([]bool, state.SeatCount)

	logger.Debug("MatchInit: %d seats, hand size %d", state.SeatCount, c.StartHandSize)

	labelBytes, _ := json.Marshal(Label{Open: true, Game: GameLabel, Phase: string(domain.PhaseLobby)})
	return state, TickRate, string(labelBytes)
}

// MatchJoinAttempt rejects joins once every seat is bound. The host server
// disconnects rejected presences; the running game is unaffected.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if lowestFreeSeat(matchState.Seats) < 0 {
		return state, false, "match_full"
	}
	return state, true, ""
}

// MatchJoin binds each presence to the lowest free seat, attaches its action
// cell, acks the join privately and announces the connection to everyone.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		seat := lowestFreeSeat(matchState.Seats)
		if seat < 0 {
			logger.Warn("MatchJoin: user %s joined but no seat was available", p.GetUserId())
			continue
		}

		matchState.Seats[seat] = p.GetUserId()
		matchState.Presences[p.GetUserId()] = p
		matchState.Actions.Attach(seat)

		ack := JoinedPayload{
			SeatCount: matchState.SeatCount,
			Seat:      seat,
			Roster:    rosterInfo(matchState),
		}
		mh.sendJSON(dispatcher, logger, OpCodeJoined, ack, []runtime.Presence{p})
		mh.sendJSON(dispatcher, logger, OpCodeConnectionState, ConnectionStatePayload{Seat: seat, Connected: true}, nil)

		logger.Info("MatchJoin: user %s bound to seat %d", p.GetUserId(), seat)
	}

	if matchState.Phase == domain.PhaseLobby && matchState.OccupiedSeatCount() == matchState.SeatCount {
		mh.enterReadyCheck(matchState, dispatcher, logger)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave clears the seat binding atomically with the ready flag. A match
// below capacity cannot keep a round alive, so any in-progress round is
// abandoned and the match parks back in the lobby phase.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		seat := seatOf(matchState.Seats, p.GetUserId())
		if seat < 0 {
			continue
		}
		matchState.Seats[seat] = ""
		matchState.Ready[seat] = false
		matchState.Actions.Detach(seat)

		mh.sendJSON(dispatcher, logger, OpCodeConnectionState, ConnectionStatePayload{Seat: seat, Connected: false}, nil)
		logger.Info("MatchLeave: user %s left, seat %d freed", p.GetUserId(), seat)
	}

	if matchState.OccupiedSeatCount() == 0 {
		logger.Info("MatchLeave: terminating empty match")
		return nil
	}

	if matchState.OccupiedSeatCount() < matchState.SeatCount {
		if matchState.Round != nil {
			logger.Info("MatchLeave: abandoning round %s", matchState.Round.ID)
			matchState.Round = nil
		}
		matchState.CloseDeadlineTick = 0
		matchState.Phase = domain.PhaseLobby
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLoop drains predictor pushes delivered as match data, then advances
// whichever poll the current phase runs. Turns are strictly serialized: one
// seat's recompute, selection and resolution all happen on this goroutine.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpCodeGesture:
			mh.handleGesture(matchState, logger, msg)
		default:
			logger.Warn("MatchLoop: unknown opcode received: %d", msg.GetOpCode())
		}
	}

	switch matchState.Phase {
	case domain.PhaseReady:
		if tick%int64(matchState.ReadyPollTicks) == 0 {
			if mh.pollReadiness(matchState, dispatcher, logger) {
				mh.startRound(matchState, dispatcher, logger)
			}
		}
	case domain.PhasePlaying:
		mh.advanceTurn(matchState, dispatcher, logger, tick)
	case domain.PhaseEnding:
		// Readiness is checked before the deadline on purpose: if both
		// land on the same tick, the restart wins and the close never fires.
		if tick%int64(matchState.ReadyPollTicks) == 0 && mh.pollReadiness(matchState, dispatcher, logger) {
			mh.startRound(matchState, dispatcher, logger)
			return matchState
		}
		if matchState.CloseDeadlineTick > 0 && tick >= matchState.CloseDeadlineTick {
			mh.closeRound(matchState, dispatcher, logger)
		}
	}

	return matchState
}

func (mh *matchHandler) handleGesture(state *MatchState, logger runtime.Logger, msg runtime.MatchData) {
	seat := seatOf(state.Seats, msg.GetUserId())
	if seat < 0 {
		logger.Warn("handleGesture: message from unseated user %s", msg.GetUserId())
		return
	}

	var payload GesturePayload
	if err := json.Unmarshal(msg.GetData(), &payload); err != nil {
		logger.Warn("handleGesture: malformed payload from seat %d: %v", seat, err)
		return
	}
	state.Actions.Push(seat, domain.ParseAction(payload.Action))
}

// pollReadiness refreshes every occupied seat's ready flag from its latest
// action and reports whether the gate is open: full occupancy with every seat
// clenching on this same poll.
func (mh *matchHandler) pollReadiness(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) bool {
	allReady := state.OccupiedSeatCount() == state.SeatCount

	for seat, uid := range state.Seats {
		if uid == "" {
			continue
		}
		ready := state.Actions.Read(seat) == domain.ActionClench
		if ready != state.Ready[seat] {
			state.Ready[seat] = ready
			mh.sendJSON(dispatcher, logger, OpCodeReadyChanged, ReadyChangedPayload{Seat: seat, Ready: ready}, nil)
			logger.Debug("pollReadiness: seat %d ready=%t", seat, ready)
		}
		if !ready {
			allReady = false
		}
	}

	return allReady
}

func (mh *matchHandler) enterReadyCheck(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Phase = domain.PhaseReady
	state.Round = nil
	state.CloseDeadlineTick = 0
	for i := range state.Ready {
		state.Ready[i] = false
	}
	mh.sendJSON(dispatcher, logger, OpCodeReadyListen, struct{}{}, nil)
	logger.Info("enterReadyCheck: waiting for %d confirmations", state.SeatCount)
}

func (mh *matchHandler) startRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// Consume the confirming clench on every seat so a held jaw cannot
	// immediately confirm the next gate or play the first card.
	for seat, uid := range state.Seats {
		if uid != "" {
			state.Actions.Latch(seat)
		}
	}

	round, events, err := state.App.StartRound(state.SeatCount)
	if err != nil {
		logger.Error("startRound: %v", err)
		state.Phase = domain.PhaseLobby
		mh.updateLabel(state, dispatcher, logger)
		return
	}

	state.Round = round
	state.Phase = domain.PhasePlaying
	state.NeedRecompute = true
	state.CloseDeadlineTick = 0

	mh.dispatchEvents(state, dispatcher, logger, events)
	mh.updateLabel(state, dispatcher, logger)
	logger.Info("startRound: round %s started, seat 0 to act", round.ID)
}

// advanceTurn runs one tick of the current seat's turn: recompute the legal
// view when the turn begins, then poll the seat's latest action on the
// selection cadence until a clench resolves the play.
func (mh *matchHandler) advanceTurn(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, tick int64) {
	if state.Round == nil {
		logger.Error("advanceTurn: playing phase with no round")
		mh.abortRound(state, dispatcher, logger)
		return
	}

	seat := state.Round.Current
	if seat < 0 || seat >= len(state.Seats) || state.Seats[seat] == "" {
		// A phantom seat never acts; the round is abandoned instead.
		logger.Error("advanceTurn: seat %d has no bound connection, abandoning round %s", seat, state.Round.ID)
		mh.abortRound(state, dispatcher, logger)
		return
	}

	if state.NeedRecompute {
		events, err := state.App.RecomputeHands(state.Round, seat)
		if err != nil {
			logger.Error("advanceTurn: recompute for seat %d: %v", seat, err)
			mh.abortRound(state, dispatcher, logger)
			return
		}
		state.NeedRecompute = false
		mh.dispatchEvents(state, dispatcher, logger, events)
	}

	if tick%int64(state.SelectionPollTicks) != 0 {
		return
	}

	action := state.Actions.Read(seat)
	switch action {
	case domain.ActionLeft, domain.ActionRight:
		mh.dispatchEvents(state, dispatcher, logger, state.App.MoveCursor(state.Round, seat, action))
	case domain.ActionClench:
		state.Actions.Latch(seat)

		result, events, err := state.App.ResolvePlay(state.Round, seat)
		if err != nil {
			logger.Error("advanceTurn: resolve for seat %d: %v", seat, err)
			mh.abortRound(state, dispatcher, logger)
			return
		}
		mh.dispatchEvents(state, dispatcher, logger, events)

		if result.Won {
			mh.enterEnding(state, dispatcher, logger, tick)
			return
		}
		state.Round.Current = result.NextSeat
		state.NeedRecompute = true
	}
}

func (mh *matchHandler) enterEnding(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, tick int64) {
	state.Phase = domain.PhaseEnding
	state.CloseDeadlineTick = tick + state.RoundCloseTicks
	for i := range state.Ready {
		state.Ready[i] = false
	}
	mh.updateLabel(state, dispatcher, logger)
	logger.Info("enterEnding: round %s over, close at tick %d", state.Round.ID, state.CloseDeadlineTick)
}

func (mh *matchHandler) closeRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.sendJSON(dispatcher, logger, OpCodeRoundClosed, struct{}{}, nil)
	logger.Info("closeRound: close timer fired for round")
	mh.enterReadyCheck(state, dispatcher, logger)
	mh.updateLabel(state, dispatcher, logger)
}

func (mh *matchHandler) abortRound(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	state.Round = nil
	state.CloseDeadlineTick = 0
	state.Phase = domain.PhaseLobby
	mh.updateLabel(state, dispatcher, logger)
}

// dispatchEvents maps app events onto op codes and wire payloads. Events with
// recipients go to those seats' connections only; everything else is a
// broadcast.
func (mh *matchHandler) dispatchEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		var opCode int64
		var payload any

		switch ev.Kind {
		case app.EventRoundStarted:
			p := ev.Payload.(app.RoundStartedPayload)
			opCode = OpCodeRoundStarted
			payload = RoundStartedPayload{RoundID: p.RoundID, SeatCount: p.SeatCount, HandSize: p.HandSize}
		case app.EventPossibleHand:
			p := ev.Payload.(app.HandPayload)
			opCode = OpCodePossibleHand
			payload = HandPayload{Cards: p.Cards}
		case app.EventImpossibleHand:
			p := ev.Payload.(app.HandPayload)
			opCode = OpCodeImpossibleHand
			payload = HandPayload{Cards: p.Cards}
		case app.EventDirection:
			p := ev.Payload.(app.DirectionPayload)
			opCode = OpCodeDirection
			payload = DirectionPayload{Direction: p.Direction}
		case app.EventCardPlayed:
			p := ev.Payload.(app.CardPlayedPayload)
			opCode = OpCodeCardPlayed
			payload = CardPlayedPayload{Seat: p.Seat, Card: p.Card, NextSeat: p.NextSeat}
		case app.EventCardDrawn:
			p := ev.Payload.(app.CardDrawnPayload)
			opCode = OpCodeCardDrawn
			payload = CardDrawnPayload{Card: p.Card}
		case app.EventRoundEnded:
			p := ev.Payload.(app.RoundEndedPayload)
			opCode = OpCodeRoundEnded
			payload = RoundEndedPayload{WinnerSeat: p.WinnerSeat}
		default:
			logger.Warn("dispatchEvents: unknown event kind %q", ev.Kind)
			continue
		}

		var recipients []runtime.Presence
		if len(ev.Recipients) > 0 {
			for _, seat := range ev.Recipients {
				if seat < 0 || seat >= len(state.Seats) || state.Seats[seat] == "" {
					continue
				}
				if p, ok := state.Presences[state.Seats[seat]]; ok {
					recipients = append(recipients, p)
				}
			}
			if len(recipients) == 0 {
				continue
			}
		}

		mh.sendJSON(dispatcher, logger, opCode, payload, recipients)
	}
}

func (mh *matchHandler) sendJSON(dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload any, recipients []runtime.Presence) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("sendJSON: failed to marshal op %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("sendJSON: failed to send op %d: %v", opCode, err)
	}
}

func rosterInfo(state *MatchState) []SeatInfo {
	var roster []SeatInfo
	for seat, uid := range state.Seats {
		if uid == "" {
			continue
		}
		roster = append(roster, SeatInfo{Seat: seat, Ready: state.Ready[seat]})
	}
	return roster
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	open := state.Phase == domain.PhaseLobby && lowestFreeSeat(state.Seats) >= 0
	labelBytes, err := json.Marshal(Label{Open: open, Game: GameLabel, Phase: string(state.Phase)})
	if err != nil {
		logger.Error("updateLabel: failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

// MatchTerminate runs on match shutdown.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: match terminated")
	return state
}

// MatchSignal handles out-of-band signals; unused.
func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
