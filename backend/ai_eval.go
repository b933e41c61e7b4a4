package main

// EvaluateState scores a position from the mover's perspective. All terms
// are integers; positive favors the mover. Terminal positions with a side
// cleared off the board short-circuit to the win sentinel.
func EvaluateState(state GameState, mover PlayerColor, variant Variant, weights HeuristicConfig) int {
	moverPieces := 0
	opponentPieces := 0
	score := 0
	size := variant.BoardSize

	for _, piece := range state.Pieces {
		mine := piece.Color == mover
		if mine {
			moverPieces++
		} else {
			opponentPieces++
		}
		value := pieceScore(piece, size, weights)
		if mine {
			score += value
		} else {
			score -= value
		}
	}
	if opponentPieces == 0 {
		return weights.WinScore
	}
	if moverPieces == 0 {
		return -weights.WinScore
	}
	return score
}

func pieceScore(piece Piece, size int, weights HeuristicConfig) int {
	score := 0
	if piece.Kind == King {
		score += weights.KingValue
	} else {
		score += weights.ManValue
		advance := rowsAdvanced(piece, size)
		score += advance * weights.AdvanceWeight
		if rowsToPromotion(piece, size) <= 2 {
			score += weights.NearPromotionBonus
		}
	}
	if piece.Pos.Row == backRow(piece.Color, size) {
		score += weights.BackRowBonus
	}
	if piece.Pos.Col == 0 || piece.Pos.Col == size-1 {
		score -= weights.EdgePenalty
	}
	score += weights.CenterWeight * (size - centerDistance(piece.Pos, size))
	return score
}

func rowsAdvanced(piece Piece, size int) int {
	if piece.Color == PlayerRed {
		return piece.Pos.Row
	}
	return size - 1 - piece.Pos.Row
}

func rowsToPromotion(piece Piece, size int) int {
	if piece.Color == PlayerRed {
		return size - 1 - piece.Pos.Row
	}
	return piece.Pos.Row
}

func backRow(color PlayerColor, size int) int {
	if color == PlayerRed {
		return 0
	}
	return size - 1
}

func centerDistance(pos Position, size int) int {
	mid := (size - 1) / 2
	dr := pos.Row - mid
	if dr < 0 {
		dr = -dr
	}
	dc := pos.Col - mid
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
