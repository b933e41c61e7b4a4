package main

import "fmt"

type PlayerColor int

const (
	PlayerRed PlayerColor = iota
	PlayerBlack
)

func (c PlayerColor) String() string {
	if c == PlayerRed {
		return "red"
	}
	return "black"
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerRed {
		return PlayerBlack
	}
	return PlayerRed
}

type PieceKind int

const (
	Man PieceKind = iota
	King
)

func (k PieceKind) String() string {
	if k == King {
		return "king"
	}
	return "man"
}

// Piece identity is the ID; it survives every state transition until the
// piece is captured and is never reused within a game.
type Piece struct {
	ID    int
	Color PlayerColor
	Kind  PieceKind
	Pos   Position
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s #%d at (%d,%d)", p.Color, p.Kind, p.ID, p.Pos.Row, p.Pos.Col)
}

// promotionRow is the farthest row for the color: Red promotes on the top
// row, Black on row 0.
func promotionRow(color PlayerColor, boardSize int) int {
	if color == PlayerRed {
		return boardSize - 1
	}
	return 0
}
