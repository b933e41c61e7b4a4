package main

// Board is an occupancy grid mapping squares to piece ids. Zero means empty.
// Piece data itself lives on GameState; the grid only answers "who is here"
// in O(1) for the move generator.
type Board struct {
	size  int
	cells []int
}

func NewBoard(boardSize int) Board {
	b := Board{}
	b.Reset(boardSize)
	return b
}

func (b *Board) Reset(boardSize int) {
	b.size = boardSize
	b.cells = make([]int, boardSize*boardSize)
}

func (b Board) At(pos Position) int {
	return b.cells[b.index(pos)]
}

func (b *Board) Set(pos Position, pieceID int) {
	b.cells[b.index(pos)] = pieceID
}

func (b *Board) Clear(pos Position) {
	b.cells[b.index(pos)] = 0
}

func (b Board) InBounds(pos Position) bool {
	return pos.InBounds(b.size)
}

func (b Board) IsEmpty(pos Position) bool {
	return b.InBounds(pos) && b.At(pos) == 0
}

func (b Board) Size() int {
	return b.size
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]int, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) index(pos Position) int {
	return pos.Row*b.size + pos.Col
}
