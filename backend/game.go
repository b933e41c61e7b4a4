package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Game owns one match: settings, rules, the authoritative state, players
// and history. It is not safe for concurrent use; GameController serializes
// access.
type Game struct {
	settings    GameSettings
	variant     Variant
	rules       Rules
	state       GameState
	history     MoveHistory
	redPlayer   IPlayer
	blackPlayer IPlayer
	sessionID   string
	turnStart   time.Time
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.stopAI()
	variant, ok := VariantByName(settings.VariantName)
	if !ok {
		variant = DefaultVariant()
		settings.VariantName = variant.Name
	}
	g.settings = settings
	g.variant = variant
	g.rules = NewRules(variant)
	g.state.Reset(variant)
	g.history.Reset(g.state)
	g.createPlayers()
	g.sessionID = uuid.NewString()
	g.turnStart = time.Now()
	log.Printf("[game] session=%s variant=%s red=%s black=%s",
		g.sessionID, variant.Name, playerLabel(settings.RedType, settings.RedDifficulty),
		playerLabel(settings.BlackType, settings.BlackDifficulty))
}

func playerLabel(t PlayerType, difficulty int) string {
	if t == PlayerAI {
		return fmt.Sprintf("ai/%d", difficulty)
	}
	return "human"
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.history.Reset(g.state)
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) Rules() Rules {
	return g.rules
}

func (g *Game) Variant() Variant {
	return g.variant
}

func (g *Game) SessionID() string {
	return g.sessionID
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) LegalMoves() []Move {
	return g.rules.GenerateLegalMoves(g.state)
}

// TryApplyMove validates against the legal set and commits on acceptance.
// Rejection never mutates anything.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	canonical, ok, reason := g.rules.ValidateMove(g.state, move)
	if !ok {
		return false, reason
	}
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	prevMover := g.state.ToMove

	g.state = g.rules.ApplyMove(g.state, canonical)
	turnComplete := g.state.ToMove != prevMover || g.state.Status != StatusRunning
	g.history.Push(HistoryEntry{
		Move:         canonical,
		Player:       prevMover,
		State:        g.state.Clone(),
		TurnComplete: turnComplete,
		ElapsedMs:    elapsedMs,
		IsAi:         isAiMove,
	})
	if turnComplete {
		g.turnStart = time.Now()
	}
	if g.state.Status != StatusRunning {
		log.Printf("[game] session=%s finished status=%s moves=%d",
			g.sessionID, g.state.Status, g.history.Size())
	}
	return true, ""
}

// Tick advances the match by at most one segment: pending human moves are
// committed, AI results are collected, idle AIs are started on a snapshot.
// Returns true when a segment was applied.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	if human, ok := player.(*HumanPlayer); ok {
		if human.HasPendingMove() {
			applied, _ := g.TryApplyMove(human.TakePendingMove())
			return applied
		}
		return false
	}
	if ai, ok := player.(*AIPlayer); ok {
		if ai.HasMoveReady() {
			move := ai.TakeMove()
			applied, reason := g.TryApplyMove(move)
			if !applied {
				log.Printf("[game] session=%s dropped AI move: %s", g.sessionID, reason)
			}
			return applied
		}
		if !ai.IsThinking() {
			ai.StartThinking(g.state.Clone(), g.rules)
		}
		return false
	}
	applied, _ := g.TryApplyMove(player.ChooseMove(g.state.Clone(), g.rules))
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	human, ok := g.currentPlayer().(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	for _, player := range []IPlayer{g.redPlayer, g.blackPlayer} {
		if ai, ok := player.(*AIPlayer); ok && ai.IsThinking() {
			return true
		}
	}
	return false
}

// Undo rewinds one whole turn. Partial capture chains are atomic: undo is
// refused mid-chain and while a search is outstanding.
func (g *Game) Undo() (bool, string) {
	if g.state.ChainPieceID != 0 {
		return false, "capture chain in progress"
	}
	if g.AiThinking() {
		return false, "ai move in progress"
	}
	state, ok := g.history.Undo()
	if !ok {
		return false, "nothing to undo"
	}
	g.state = state
	g.turnStart = time.Now()
	return true, ""
}

func (g *Game) Redo() (bool, string) {
	if g.AiThinking() {
		return false, "ai move in progress"
	}
	state, ok := g.history.Redo()
	if !ok {
		return false, "nothing to redo"
	}
	g.state = state
	g.turnStart = time.Now()
	return true, ""
}

// ViewHistoryAt is a read-only projection; it never discards forward
// history and never changes the live state.
func (g *Game) ViewHistoryAt(index int) (GameState, bool) {
	return g.history.ViewAt(index)
}

func (g *Game) AgreeDraw() bool {
	if g.state.Status != StatusRunning {
		return false
	}
	g.stopAI()
	g.state.Status = StatusDraw
	return true
}

func (g *Game) currentPlayer() IPlayer {
	if g.state.ToMove == PlayerRed {
		return g.redPlayer
	}
	return g.blackPlayer
}

func (g *Game) createPlayers() {
	if g.settings.RedType == PlayerHuman {
		g.redPlayer = NewHumanPlayer()
	} else {
		g.redPlayer = NewAIPlayer(g.settings.RedDifficulty)
	}
	if g.settings.BlackType == PlayerHuman {
		g.blackPlayer = NewHumanPlayer()
	} else {
		g.blackPlayer = NewAIPlayer(g.settings.BlackDifficulty)
	}
}

func (g *Game) stopAI() {
	for _, player := range []IPlayer{g.redPlayer, g.blackPlayer} {
		if ai, ok := player.(*AIPlayer); ok {
			ai.StopThinking()
		}
	}
}
