package main

import "testing"

func TestInitialLayoutPerBoardSize(t *testing.T) {
	cases := []struct {
		variant string
		size    int
		perSide int
	}{
		{"American", 8, 12},
		{"International", 10, 20},
		{"Canadian", 12, 30},
	}
	for _, tc := range cases {
		variant := mustVariant(t, tc.variant)
		state := NewGameState(variant)
		if state.Board.Size() != tc.size {
			t.Fatalf("%s: board size %d, want %d", tc.variant, state.Board.Size(), tc.size)
		}
		if got := state.CountPieces(PlayerRed); got != tc.perSide {
			t.Fatalf("%s: %d red pieces, want %d", tc.variant, got, tc.perSide)
		}
		if got := state.CountPieces(PlayerBlack); got != tc.perSide {
			t.Fatalf("%s: %d black pieces, want %d", tc.variant, got, tc.perSide)
		}
		for _, piece := range state.Pieces {
			if !piece.Pos.IsDark() {
				t.Fatalf("%s: piece %d on light square %+v", tc.variant, piece.ID, piece.Pos)
			}
			if piece.Kind != Man {
				t.Fatalf("%s: piece %d starts as king", tc.variant, piece.ID)
			}
		}
		if state.ToMove != PlayerRed {
			t.Fatalf("%s: red moves first", tc.variant)
		}
	}
}

func TestPromotionAtFarRowBothColors(t *testing.T) {
	cases := []struct {
		variant string
		color   PlayerColor
		from    Position
		to      Position
	}{
		{"American", PlayerRed, NewPosition(6, 1), NewPosition(7, 2)},
		{"American", PlayerBlack, NewPosition(1, 2), NewPosition(0, 1)},
		{"International", PlayerRed, NewPosition(8, 1), NewPosition(9, 2)},
		{"International", PlayerBlack, NewPosition(1, 2), NewPosition(0, 1)},
		{"Canadian", PlayerRed, NewPosition(10, 1), NewPosition(11, 2)},
		{"Canadian", PlayerBlack, NewPosition(1, 2), NewPosition(0, 1)},
	}
	for _, tc := range cases {
		variant := mustVariant(t, tc.variant)
		rules := NewRules(variant)
		state := testState(variant, tc.color,
			Piece{ID: 1, Color: tc.color, Kind: Man, Pos: tc.from},
			Piece{ID: 2, Color: otherPlayer(tc.color), Kind: Man, Pos: farCorner(variant, tc.color)},
		)
		move, ok := findMoveTo(rules.GenerateLegalMoves(state), 1, tc.to)
		if !ok {
			t.Fatalf("%s %s: no move from %+v to %+v", tc.variant, tc.color, tc.from, tc.to)
		}
		if !move.Promoted {
			t.Fatalf("%s %s: move to far row not flagged as promotion", tc.variant, tc.color)
		}
		next := rules.ApplyMove(state, move)
		if next.Pieces[1].Kind != King {
			t.Fatalf("%s %s: piece not crowned at %+v", tc.variant, tc.color, tc.to)
		}
	}
}

// farCorner picks a dark square far from the promoting piece so the filler
// opponent never interferes with generation.
func farCorner(variant Variant, promoting PlayerColor) Position {
	if promoting == PlayerRed {
		return NewPosition(0, 1)
	}
	return NewPosition(variant.BoardSize-1, variant.BoardSize-2)
}

func TestNoPromotionBeforeFarRow(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(5, 2)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(0, 1)},
	)
	move, ok := findMoveTo(rules.GenerateLegalMoves(state), 1, NewPosition(6, 3))
	if !ok {
		t.Fatalf("expected simple move to (6,3)")
	}
	next := rules.ApplyMove(state, move)
	if next.Pieces[1].Kind != Man {
		t.Fatalf("piece crowned one row early")
	}
}

func TestPromotionEndsChainByDefault(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(5, 2)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(6, 3)},
		Piece{ID: 3, Color: PlayerBlack, Kind: Man, Pos: NewPosition(6, 5)},
		Piece{ID: 4, Color: PlayerBlack, Kind: Man, Pos: NewPosition(1, 0)},
	)
	moves := rules.GenerateLegalMoves(state)
	move, ok := findMoveTo(moves, 1, NewPosition(7, 4))
	if !ok {
		t.Fatalf("expected capture landing on the far row, got %+v", moves)
	}
	next := rules.ApplyMove(state, move)
	if next.Pieces[1].Kind != King {
		t.Fatalf("capturing onto the far row must crown")
	}
	if next.ChainPieceID != 0 || next.ToMove != PlayerBlack {
		t.Fatalf("promotion must end the chain: chain=%d toMove=%v", next.ChainPieceID, next.ToMove)
	}
}

func TestRussianPromotionContinuesChain(t *testing.T) {
	variant := mustVariant(t, "Russian")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(5, 2)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(6, 3)},
		Piece{ID: 3, Color: PlayerBlack, Kind: Man, Pos: NewPosition(6, 5)},
		Piece{ID: 4, Color: PlayerBlack, Kind: Man, Pos: NewPosition(1, 0)},
	)
	moves := rules.GenerateLegalMoves(state)
	move, ok := findMoveTo(moves, 1, NewPosition(7, 4))
	if !ok {
		t.Fatalf("expected capture landing on the far row, got %+v", moves)
	}
	next := rules.ApplyMove(state, move)
	if next.Pieces[1].Kind != King {
		t.Fatalf("capturing onto the far row must crown")
	}
	if next.ChainPieceID != 1 || next.ToMove != PlayerRed {
		t.Fatalf("Russian rules continue the chain after promotion: chain=%d toMove=%v",
			next.ChainPieceID, next.ToMove)
	}
	continuation := rules.GenerateLegalMoves(next)
	if len(continuation) == 0 {
		t.Fatalf("expected the fresh king to keep capturing")
	}
	for _, cont := range continuation {
		if cont.PieceID != 1 || !cont.IsCapture {
			t.Fatalf("only the pinned king may move mid-chain, got %+v", cont)
		}
	}
}

func TestPieceCountNeverIncreases(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(3, 4)},
		Piece{ID: 3, Color: PlayerBlack, Kind: Man, Pos: NewPosition(5, 6)},
		Piece{ID: 4, Color: PlayerBlack, Kind: Man, Pos: NewPosition(7, 0)},
	)
	for steps := 0; steps < 12 && state.Status == StatusRunning; steps++ {
		moves := rules.GenerateLegalMoves(state)
		if len(moves) == 0 {
			break
		}
		before := len(state.Pieces)
		state = rules.ApplyMove(state, moves[0])
		if len(state.Pieces) > before {
			t.Fatalf("piece count grew from %d to %d", before, len(state.Pieces))
		}
	}
}

func TestWinByEliminatingLastPiece(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(3, 4)},
	)
	moves := rules.GenerateLegalMoves(state)
	if len(moves) != 1 {
		t.Fatalf("expected the single capture, got %+v", moves)
	}
	next := rules.ApplyMove(state, moves[0])
	if next.Status != StatusRedWon {
		t.Fatalf("expected red_won, got %v", next.Status)
	}
}

func TestWinByBlockingAllMoves(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(4, 1)},
		Piece{ID: 2, Color: PlayerRed, Kind: Man, Pos: NewPosition(6, 1)},
		Piece{ID: 3, Color: PlayerBlack, Kind: Man, Pos: NewPosition(7, 0)},
	)
	move, ok := findMoveTo(rules.GenerateLegalMoves(state), 1, NewPosition(5, 2))
	if !ok {
		t.Fatalf("expected simple move to (5,2)")
	}
	next := rules.ApplyMove(state, move)
	if next.Status != StatusRedWon {
		t.Fatalf("black has no moves, expected red_won, got %v", next.Status)
	}
}

func TestCloneIsolation(t *testing.T) {
	variant := mustVariant(t, "American")
	state := NewGameState(variant)
	clone := state.Clone()
	clone.Board.Clear(NewPosition(0, 1))
	delete(clone.Pieces, 1)
	if state.Board.At(NewPosition(0, 1)) == 0 {
		t.Fatalf("clone shares the board cells")
	}
	if _, ok := state.Pieces[1]; !ok {
		t.Fatalf("clone shares the piece map")
	}
}

func TestHashTracksStateComponents(t *testing.T) {
	variant := mustVariant(t, "American")
	rules := NewRules(variant)
	state := NewGameState(variant)
	state.Status = StatusRunning
	moves := rules.GenerateLegalMoves(state)
	if len(moves) == 0 {
		t.Fatalf("expected opening moves")
	}
	next := rules.ApplyMove(state, moves[0])
	if next.Hash == state.Hash {
		t.Fatalf("hash unchanged across a move")
	}
	if next.Hash != hashState(next) {
		t.Fatalf("stored hash diverges from recomputation")
	}
}
