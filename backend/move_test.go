package main

import (
	"encoding/json"
	"testing"
)

func TestMoveWireFormat(t *testing.T) {
	move := Move{
		PieceID:        7,
		FromRow:        2,
		FromCol:        3,
		ToRow:          4,
		ToCol:          5,
		IsCapture:      true,
		CapturedPieces: []int{12},
	}
	raw, err := json.Marshal(move)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	for _, key := range []string{"piece_id", "from_row", "from_col", "to_row", "to_col",
		"is_capture", "promoted", "captured_pieces"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("wire format missing %q: %s", key, raw)
		}
	}

	var decoded Move
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equals(move) {
		t.Fatalf("round trip changed the move: %+v vs %+v", decoded, move)
	}
}

func TestMoveValidityBounds(t *testing.T) {
	ok := Move{PieceID: 1, FromRow: 0, FromCol: 1, ToRow: 1, ToCol: 2}
	if !ok.IsValid(8) {
		t.Fatalf("in-bounds move rejected")
	}
	cases := []Move{
		{PieceID: 0, FromRow: 0, FromCol: 1, ToRow: 1, ToCol: 2},
		{PieceID: 1, FromRow: -1, FromCol: 1, ToRow: 1, ToCol: 2},
		{PieceID: 1, FromRow: 0, FromCol: 1, ToRow: 8, ToCol: 2},
	}
	for i, move := range cases {
		if move.IsValid(8) {
			t.Fatalf("case %d: invalid move accepted: %+v", i, move)
		}
	}
}

func TestSameTransitionIgnoresDerivedFlags(t *testing.T) {
	canonical := Move{PieceID: 1, FromRow: 2, FromCol: 3, ToRow: 4, ToCol: 5,
		IsCapture: true, CapturedPieces: []int{2}}
	bare := Move{PieceID: 1, FromRow: 2, FromCol: 3, ToRow: 4, ToCol: 5}
	if !canonical.SameTransition(bare) {
		t.Fatalf("flags must not affect transition identity")
	}
	if canonical.Equals(bare) {
		t.Fatalf("Equals must still see the flag difference")
	}
	other := Move{PieceID: 1, FromRow: 2, FromCol: 3, ToRow: 4, ToCol: 1}
	if canonical.SameTransition(other) {
		t.Fatalf("different landing square matched")
	}
}
