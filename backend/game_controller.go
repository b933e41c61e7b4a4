package main

import "sync"

type EventType string

const (
	EventStateChanged EventType = "state_changed"
	EventGameFinished EventType = "game_finished"
	EventGameReset    EventType = "game_reset"
)

type GameEvent struct {
	Type     EventType
	State    GameState
	LastMove *Move
	Status   GameStatus
}

// GameController is the thread-safe facade over a Game. All collaborators
// (HTTP handlers, the WS hub, the tick loop) go through it; events reach
// them via the publisher, never by polling Game internals.
type GameController struct {
	mu        sync.Mutex
	game      Game
	publisher func(GameEvent)
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{game: NewGame(settings)}
}

func (gc *GameController) SetPublisher(publisher func(GameEvent)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.publisher = publisher
}

// SubmitMove rejects without mutation when the move is illegal, out of
// turn, off the pinned chain piece, or while an AI search is outstanding.
func (gc *GameController) SubmitMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if gc.game.AiThinking() {
		return false, "ai move in progress"
	}
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	applied, reason := gc.game.TryApplyMove(move)
	if applied {
		gc.publishLocked(move)
	}
	return applied, reason
}

// QueueHumanMove hands a move to the human player whose turn it is; the
// tick loop commits it. Used by input surfaces that do not need the
// synchronous verdict.
func (gc *GameController) QueueHumanMove(move Move) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SubmitHumanMove(move)
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	applied := gc.game.Tick()
	if applied {
		var last *Move
		if entries := gc.game.History().All(); len(entries) > 0 {
			move := entries[len(entries)-1].Move
			last = &move
		}
		gc.publishMoveLocked(last)
	}
	return applied
}

func (gc *GameController) Undo() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	ok, reason := gc.game.Undo()
	if ok {
		gc.publishMoveLocked(nil)
	}
	return ok, reason
}

func (gc *GameController) Redo() (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	ok, reason := gc.game.Redo()
	if ok {
		gc.publishMoveLocked(nil)
	}
	return ok, reason
}

func (gc *GameController) ViewHistoryAt(index int) (GameState, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.ViewHistoryAt(index)
}

func (gc *GameController) AgreeDraw() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	ok := gc.game.AgreeDraw()
	if ok {
		gc.publishMoveLocked(nil)
	}
	return ok
}

func (gc *GameController) LegalMoves() []Move {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.LegalMoves()
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Variant() Variant {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Variant()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.settings
}

func (gc *GameController) SessionID() string {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.SessionID()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	entries := gc.game.History().All()
	if len(entries) == 0 {
		return HistoryEntry{}, false
	}
	return entries[len(entries)-1], true
}

func (gc *GameController) TurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) AiThinking() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.AiThinking()
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.publishResetLocked()
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
	gc.publishResetLocked()
}

func (gc *GameController) publishResetLocked() {
	if gc.publisher == nil {
		return
	}
	state := gc.game.State()
	gc.publisher(GameEvent{Type: EventGameReset, State: state, Status: state.Status})
}

func (gc *GameController) publishLocked(move Move) {
	gc.publishMoveLocked(&move)
}

func (gc *GameController) publishMoveLocked(last *Move) {
	if gc.publisher == nil {
		return
	}
	state := gc.game.State()
	gc.publisher(GameEvent{Type: EventStateChanged, State: state, LastMove: last, Status: state.Status})
	if state.Status != StatusRunning && state.Status != StatusNotStarted {
		gc.publisher(GameEvent{Type: EventGameFinished, State: state, Status: state.Status})
	}
}
