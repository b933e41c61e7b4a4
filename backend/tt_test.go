package main

import "testing"

func TestTranspositionTableStoreAndProbe(t *testing.T) {
	tt := NewTranspositionTable(16)
	if _, ok := tt.Probe(1); ok {
		t.Fatalf("probe on an empty table hit")
	}
	entry := TTEntry{Key: 1, Depth: 3, Score: 42, Flag: TTExact}
	tt.Store(entry)
	got, ok := tt.Probe(1)
	if !ok || got.Score != 42 || got.Flag != TTExact {
		t.Fatalf("probe returned %+v ok=%v", got, ok)
	}
}

func TestTranspositionTablePrefersDeeperEntries(t *testing.T) {
	tt := NewTranspositionTable(16)
	tt.Store(TTEntry{Key: 7, Depth: 5, Score: 10, Flag: TTExact})
	tt.Store(TTEntry{Key: 7, Depth: 2, Score: -99, Flag: TTExact})
	got, ok := tt.Probe(7)
	if !ok || got.Depth != 5 || got.Score != 10 {
		t.Fatalf("shallow entry displaced a deeper one: %+v", got)
	}
	tt.Store(TTEntry{Key: 7, Depth: 6, Score: 11, Flag: TTLower})
	if got, _ := tt.Probe(7); got.Depth != 6 {
		t.Fatalf("deeper entry failed to replace: %+v", got)
	}
}

func TestTranspositionTableClear(t *testing.T) {
	tt := NewTranspositionTable(16)
	tt.Store(TTEntry{Key: 3, Depth: 1})
	tt.Clear()
	if tt.Size() != 0 {
		t.Fatalf("clear left %d entries", tt.Size())
	}
}

func TestZobristDistinguishesStateComponents(t *testing.T) {
	variant := mustVariant(t, "American")
	base := testState(variant, PlayerRed,
		Piece{ID: 1, Color: PlayerRed, Kind: Man, Pos: NewPosition(2, 3)},
		Piece{ID: 2, Color: PlayerBlack, Kind: Man, Pos: NewPosition(5, 4)},
	)

	sideFlipped := base.Clone()
	sideFlipped.ToMove = PlayerBlack
	if hashState(sideFlipped) == base.Hash {
		t.Fatalf("side to move not hashed")
	}

	crowned := base.Clone()
	piece := crowned.Pieces[1]
	piece.Kind = King
	crowned.Pieces[1] = piece
	if hashState(crowned) == base.Hash {
		t.Fatalf("piece kind not hashed")
	}

	pinned := base.Clone()
	pinned.ChainPieceID = 1
	if hashState(pinned) == base.Hash {
		t.Fatalf("chain pin not hashed")
	}

	if hashState(base) != base.Hash {
		t.Fatalf("hash is not a pure function of the state")
	}
}
