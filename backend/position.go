package main

// Position is a logical board coordinate. Row 0 is Red's back row; Black sits
// on the high rows and moves toward row 0. No display flipping happens here.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

func (p Position) InBounds(boardSize int) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < boardSize && p.Col < boardSize
}

// IsDark reports whether the square is playable. Pieces live on dark squares
// only; (row+col) odd matches the initial layouts for all supported sizes.
func (p Position) IsDark() bool {
	return (p.Row+p.Col)%2 == 1
}

func (p Position) Equals(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

func (p Position) Offset(dir Direction, steps int) Position {
	return Position{Row: p.Row + dir.DR*steps, Col: p.Col + dir.DC*steps}
}

type Direction struct {
	DR int
	DC int
}

var diagonalDirections = [4]Direction{
	{DR: 1, DC: 1},
	{DR: 1, DC: -1},
	{DR: -1, DC: 1},
	{DR: -1, DC: -1},
}

// forward reports whether dir advances toward the given color's promotion row.
func (d Direction) forward(color PlayerColor) bool {
	if color == PlayerRed {
		return d.DR > 0
	}
	return d.DR < 0
}
