package main

// Move is a single mover transition. A multi-jump turn is a chain of Moves
// sharing one PieceID, applied in sequence without a turn switch between
// them; CapturedPieces holds only the ids taken by this segment.
//
// The JSON shape is the multiplayer wire format: peers validate a received
// move by membership in their own legal-move set, never by trust.
type Move struct {
	PieceID        int   `json:"piece_id"`
	FromRow        int   `json:"from_row"`
	FromCol        int   `json:"from_col"`
	ToRow          int   `json:"to_row"`
	ToCol          int   `json:"to_col"`
	IsCapture      bool  `json:"is_capture"`
	Promoted       bool  `json:"promoted"`
	CapturedPieces []int `json:"captured_pieces"`
}

func (m Move) From() Position {
	return Position{Row: m.FromRow, Col: m.FromCol}
}

func (m Move) To() Position {
	return Position{Row: m.ToRow, Col: m.ToCol}
}

func (m Move) IsValid(boardSize int) bool {
	return m.PieceID > 0 && m.From().InBounds(boardSize) && m.To().InBounds(boardSize)
}

func (m Move) Equals(other Move) bool {
	if m.PieceID != other.PieceID || m.FromRow != other.FromRow || m.FromCol != other.FromCol ||
		m.ToRow != other.ToRow || m.ToCol != other.ToCol ||
		m.IsCapture != other.IsCapture || m.Promoted != other.Promoted {
		return false
	}
	if len(m.CapturedPieces) != len(other.CapturedPieces) {
		return false
	}
	for i, id := range m.CapturedPieces {
		if other.CapturedPieces[i] != id {
			return false
		}
	}
	return true
}

// SameTransition matches on mover and geometry only, ignoring the flags the
// engine derives itself. Used to resolve an untrusted inbound move against
// the locally generated legal set.
func (m Move) SameTransition(other Move) bool {
	return m.PieceID == other.PieceID &&
		m.FromRow == other.FromRow && m.FromCol == other.FromCol &&
		m.ToRow == other.ToRow && m.ToCol == other.ToCol
}
