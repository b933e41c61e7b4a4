package main

type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusRedWon
	StatusBlackWon
	StatusDraw
)

func (s GameStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRedWon:
		return "red_won"
	case StatusBlackWon:
		return "black_won"
	case StatusDraw:
		return "draw"
	default:
		return "running"
	}
}

// GameState is a snapshot. Transitions go through Rules.ApplyMove, which
// clones first; nothing mutates a committed state in place.
type GameState struct {
	Board  Board
	Pieces map[int]Piece
	ToMove PlayerColor
	Status GameStatus
	// ChainPieceID pins the piece that must continue a capture chain.
	// Zero outside a chain.
	ChainPieceID int
	Hash         uint64
}

func NewGameState(variant Variant) GameState {
	state := GameState{}
	state.Reset(variant)
	return state
}

func (s *GameState) Reset(variant Variant) {
	s.Board = NewBoard(variant.BoardSize)
	s.Pieces = make(map[int]Piece)
	s.ToMove = PlayerRed
	s.Status = StatusNotStarted
	s.ChainPieceID = 0

	nextID := 1
	place := func(color PlayerColor, firstRow, lastRow int) {
		for row := firstRow; row <= lastRow; row++ {
			for col := 0; col < variant.BoardSize; col++ {
				pos := Position{Row: row, Col: col}
				if !pos.IsDark() {
					continue
				}
				piece := Piece{ID: nextID, Color: color, Kind: Man, Pos: pos}
				s.Pieces[piece.ID] = piece
				s.Board.Set(pos, piece.ID)
				nextID++
			}
		}
	}
	rows := variant.PieceRows()
	place(PlayerRed, 0, rows-1)
	place(PlayerBlack, variant.BoardSize-rows, variant.BoardSize-1)
	s.Hash = hashState(*s)
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.Pieces = make(map[int]Piece, len(s.Pieces))
	for id, piece := range s.Pieces {
		clone.Pieces[id] = piece
	}
	return clone
}

func (s GameState) PieceAt(pos Position) (Piece, bool) {
	if !s.Board.InBounds(pos) {
		return Piece{}, false
	}
	id := s.Board.At(pos)
	if id == 0 {
		return Piece{}, false
	}
	piece, ok := s.Pieces[id]
	return piece, ok
}

func (s GameState) CountPieces(color PlayerColor) int {
	count := 0
	for _, piece := range s.Pieces {
		if piece.Color == color {
			count++
		}
	}
	return count
}

func winStatusFor(color PlayerColor) GameStatus {
	if color == PlayerRed {
		return StatusRedWon
	}
	return StatusBlackWon
}
