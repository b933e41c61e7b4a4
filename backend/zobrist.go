package main

import "math/rand"

// Zobrist keys for every (square, color, kind) combination on the largest
// supported board, plus one key for the side to move and per-piece chain
// pins. Fixed seed so hashes are stable across processes, which keeps the
// transposition table meaningful for peer-identical positions.
const zobristMaxSize = 12

var (
	zobristPieces [zobristMaxSize * zobristMaxSize][2][2]uint64
	zobristBlack  uint64
	zobristChain  [zobristMaxSize * zobristMaxSize]uint64
)

func init() {
	rng := rand.New(rand.NewSource(0x5eed_d8a0))
	for sq := range zobristPieces {
		for color := 0; color < 2; color++ {
			for kind := 0; kind < 2; kind++ {
				zobristPieces[sq][color][kind] = rng.Uint64()
			}
		}
		zobristChain[sq] = rng.Uint64()
	}
	zobristBlack = rng.Uint64()
}

func hashState(state GameState) uint64 {
	var hash uint64
	size := state.Board.Size()
	for _, piece := range state.Pieces {
		sq := piece.Pos.Row*size + piece.Pos.Col
		hash ^= zobristPieces[sq][int(piece.Color)][int(piece.Kind)]
	}
	if state.ToMove == PlayerBlack {
		hash ^= zobristBlack
	}
	if state.ChainPieceID != 0 {
		if piece, ok := state.Pieces[state.ChainPieceID]; ok {
			hash ^= zobristChain[piece.Pos.Row*size+piece.Pos.Col]
		}
	}
	return hash
}
