package main

import (
	"testing"
	"time"
)

func containsMove(legal []Move, move Move) bool {
	for _, candidate := range legal {
		if candidate.Equals(move) {
			return true
		}
	}
	return false
}

func TestEveryTierReturnsLegalMove(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := NewGameState(variant)
	state.Status = StatusRunning
	legal := rules.GenerateLegalMoves(state)
	if len(legal) == 0 {
		t.Fatalf("expected opening moves")
	}
	for difficulty := MinDifficulty; difficulty <= MaxDifficulty; difficulty++ {
		player := NewAIPlayerSeeded(difficulty, 42)
		move := player.ChooseMove(state.Clone(), rules)
		if !containsMove(legal, move) {
			t.Fatalf("tier %d produced an illegal move %+v", difficulty, move)
		}
	}
}

func TestTiersHandleChainContinuation(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(3, 4)},
		Piece{ID: 3, Color: PlayerBlack, Kind: Man, Pos: NewPosition(5, 6)},
		Piece{ID: 4, Color: PlayerBlack, Kind: Man, Pos: NewPosition(7, 0)},
	)
	mid := rules.ApplyMove(state, rules.GenerateLegalMoves(state)[0])
	if mid.ChainPieceID != 1 {
		t.Fatalf("expected a pinned chain piece")
	}
	legal := rules.GenerateLegalMoves(mid)
	for difficulty := MinDifficulty; difficulty <= MaxDifficulty; difficulty++ {
		player := NewAIPlayerSeeded(difficulty, 7)
		move := player.ChooseMove(mid.Clone(), rules)
		if !containsMove(legal, move) {
			t.Fatalf("tier %d broke the chain with %+v", difficulty, move)
		}
	}
}

func TestGreedyTierTakesAvailableCapture(t *testing.T) {
	// Optional-capture variant, so simple moves compete with the capture.
	variant := mustVariant(t, "Casual American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(3, 4)},
		Piece{ID: 3, Color: PlayerRed, Kind: Man, Pos: NewPosition(0, 1)},
	)
	for seed := int64(1); seed <= 8; seed++ {
		player := NewAIPlayerSeeded(2, seed)
		move := player.ChooseMove(state.Clone(), rules)
		if !move.IsCapture {
			t.Fatalf("seed %d: greedy tier skipped the capture, chose %+v", seed, move)
		}
	}
}

// A red man on (2,1) loses its only piece if it steps to (3,2), where black
// is forced to jump it. Every minimax tier must prefer the safe (3,0).
func TestMinimaxAvoidsHangingLastPiece(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 1)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(4, 3)},
	)
	safe := NewPosition(3, 0)
	for difficulty := 6; difficulty <= MaxDifficulty; difficulty++ {
		for seed := int64(1); seed <= 4; seed++ {
			player := NewAIPlayerSeeded(difficulty, seed)
			move := player.ChooseMove(state.Clone(), rules)
			if !move.To().Equals(safe) {
				t.Fatalf("tier %d seed %d walked into the jump: %+v", difficulty, seed, move)
			}
		}
	}
}

func TestBackgroundSearchLifecycle(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := NewGameState(variant)
	state.Status = StatusRunning
	legal := rules.GenerateLegalMoves(state)

	player := NewAIPlayerSeeded(5, 99)
	player.StartThinking(state.Clone(), rules)

	deadline := time.After(5 * time.Second)
	for !player.HasMoveReady() {
		select {
		case <-deadline:
			t.Fatalf("search never finished")
		case <-time.After(time.Millisecond):
		}
	}
	move := player.TakeMove()
	if !containsMove(legal, move) {
		t.Fatalf("background search produced an illegal move %+v", move)
	}
	if player.HasMoveReady() {
		t.Fatalf("TakeMove must consume the result")
	}
	if player.IsThinking() {
		t.Fatalf("player still thinking after publishing")
	}
}

func TestStopThinkingDiscardsResult(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := NewGameState(variant)
	state.Status = StatusRunning

	player := NewAIPlayerSeeded(10, 3)
	player.StartThinking(state.Clone(), rules)
	player.StopThinking()
	if player.IsThinking() {
		t.Fatalf("StopThinking must wait for the worker")
	}
	if player.HasMoveReady() {
		t.Fatalf("a cancelled search must not publish a move")
	}

	// The player stays usable after cancellation.
	move := player.ChooseMove(state.Clone(), rules)
	if !containsMove(rules.GenerateLegalMoves(state), move) {
		t.Fatalf("post-cancel move is illegal: %+v", move)
	}
}

func TestEvaluateStateMaterial(t *testing.T) {
	variant := mustVariant(t, "American")
	weights := GetConfig().Heuristics
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 3)},
		Piece{ID: 2, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 5)},
		Piece{ID: 3, Color: PlayerBlack, Kind: Man, Pos: NewPosition(5, 4)},
	)
	redScore := EvaluateState(state, PlayerRed, variant, weights)
	blackScore := EvaluateState(state, PlayerBlack, variant, weights)
	if redScore <= 0 {
		t.Fatalf("red is a man up yet scores %d", redScore)
	}
	if blackScore >= 0 {
		t.Fatalf("black is a man down yet scores %d", blackScore)
	}
	if redScore != -blackScore {
		t.Fatalf("evaluation must be antisymmetric: %d vs %d", redScore, blackScore)
	}
}

func TestEvaluateStateKingBeatsMan(t *testing.T) {
	variant := mustVariant(t, "American")
	weights := GetConfig().Heuristics
	manState := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(4, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(0, 1)},
	)
	kingState := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: King, Pos: NewPosition(4, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(0, 1)},
	)
	if EvaluateState(kingState, PlayerRed, variant, weights) <= EvaluateState(manState, PlayerRed, variant, weights) {
		t.Fatalf("a king must outscore a man on the same square")
	}
}
