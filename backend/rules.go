package main

import "fmt"

// Rules is the pure move generator and transition function for one variant.
// It holds no mutable state and never touches the state it is given; every
// transition clones first. Callers must not assume any ordering in the
// returned move lists.
type Rules struct {
	variant Variant
}

func NewRules(variant Variant) Rules {
	return Rules{variant: variant}
}

func (r Rules) Variant() Variant {
	return r.variant
}

// GenerateLegalMoves returns every legal single segment for the active
// player. Mid-chain, only the pinned piece may move and only by capturing.
// An empty result is not an error; it is the losing condition for the mover.
func (r Rules) GenerateLegalMoves(state GameState) []Move {
	if state.ChainPieceID != 0 {
		piece, ok := state.Pieces[state.ChainPieceID]
		if !ok || piece.Color != state.ToMove {
			return nil
		}
		return r.applyPriority(state, r.captureSegments(state, piece))
	}

	var captures []Move
	for _, piece := range state.Pieces {
		if piece.Color != state.ToMove {
			continue
		}
		captures = append(captures, r.captureSegments(state, piece)...)
	}
	if len(captures) > 0 {
		captures = r.applyPriority(state, captures)
		if r.variant.MandatoryCapture {
			return captures
		}
	}

	moves := captures
	for _, piece := range state.Pieces {
		if piece.Color != state.ToMove {
			continue
		}
		moves = append(moves, r.simpleMoves(state, piece)...)
	}
	return moves
}

// ValidateMove resolves an untrusted move against the legal set and returns
// the engine's canonical version of it. The reason string is empty on
// success.
func (r Rules) ValidateMove(state GameState, move Move) (Move, bool, string) {
	if !move.IsValid(r.variant.BoardSize) {
		return Move{}, false, "out of bounds"
	}
	piece, ok := state.Pieces[move.PieceID]
	if !ok {
		return Move{}, false, "unknown piece"
	}
	if piece.Color != state.ToMove {
		return Move{}, false, "not your turn"
	}
	if state.ChainPieceID != 0 && move.PieceID != state.ChainPieceID {
		return Move{}, false, "must continue capture chain"
	}
	for _, legal := range r.GenerateLegalMoves(state) {
		if !legal.SameTransition(move) {
			continue
		}
		if len(move.CapturedPieces) > 0 && !sameIDSet(move.CapturedPieces, legal.CapturedPieces) {
			return Move{}, false, "captured pieces do not match"
		}
		return legal, true, ""
	}
	return Move{}, false, "not a legal move"
}

// ApplyMove produces the successor state. The move must come from
// GenerateLegalMoves (or ValidateMove); behavior for anything else is
// undefined at this layer.
func (r Rules) ApplyMove(state GameState, move Move) GameState {
	next := r.applySegment(state, move)
	if next.ToMove == state.ToMove {
		// Chain continues; the turn is not over and the game cannot end here.
		return next
	}
	if next.Status == StatusRunning {
		if next.CountPieces(next.ToMove) == 0 || len(r.GenerateLegalMoves(next)) == 0 {
			next.Status = winStatusFor(state.ToMove)
		}
	}
	return next
}

// applySegment performs the raw transition without terminal detection:
// relocate, remove captured ids, promote at landing, then either pin the
// chain piece or flip the turn.
func (r Rules) applySegment(state GameState, move Move) GameState {
	next := state.Clone()
	piece := next.Pieces[move.PieceID]
	next.Board.Clear(piece.Pos)
	for _, id := range move.CapturedPieces {
		if captured, ok := next.Pieces[id]; ok {
			next.Board.Clear(captured.Pos)
			delete(next.Pieces, id)
		}
	}
	piece.Pos = move.To()
	promoted := false
	if piece.Kind == Man && piece.Pos.Row == promotionRow(piece.Color, r.variant.BoardSize) {
		piece.Kind = King
		promoted = true
	}
	next.Pieces[piece.ID] = piece
	next.Board.Set(piece.Pos, piece.ID)

	if move.IsCapture && !(promoted && r.variant.PromotionEndsChain) {
		if len(r.captureSegments(next, piece)) > 0 {
			next.ChainPieceID = piece.ID
			next.Hash = hashState(next)
			return next
		}
	}
	next.ChainPieceID = 0
	next.ToMove = otherPlayer(state.ToMove)
	next.Hash = hashState(next)
	return next
}

// ChainLength is the number of segments in the longest chain starting with
// the given capture segment. Simple moves count as zero.
func (r Rules) ChainLength(state GameState, segment Move) int {
	if !segment.IsCapture {
		return 0
	}
	next := r.applySegment(state, segment)
	if next.ChainPieceID != segment.PieceID {
		return 1
	}
	best := 0
	piece := next.Pieces[segment.PieceID]
	for _, cont := range r.captureSegments(next, piece) {
		if length := r.ChainLength(next, cont); length > best {
			best = length
		}
	}
	return 1 + best
}

func (r Rules) applyPriority(state GameState, captures []Move) []Move {
	if len(captures) < 2 {
		return captures
	}
	switch r.variant.CapturePriority {
	case CaptureMaximum:
		lengths := make([]int, len(captures))
		best := 0
		for i, move := range captures {
			lengths[i] = r.ChainLength(state, move)
			if lengths[i] > best {
				best = lengths[i]
			}
		}
		kept := captures[:0]
		for i, move := range captures {
			if lengths[i] == best {
				kept = append(kept, move)
			}
		}
		return kept
	case CaptureKingFirst:
		kingCapture := false
		for _, move := range captures {
			if state.Pieces[move.PieceID].Kind == King {
				kingCapture = true
				break
			}
		}
		if !kingCapture {
			return captures
		}
		kept := captures[:0]
		for _, move := range captures {
			if state.Pieces[move.PieceID].Kind == King {
				kept = append(kept, move)
			}
		}
		return kept
	default:
		return captures
	}
}

func (r Rules) captureSegments(state GameState, piece Piece) []Move {
	if piece.Kind == King && r.variant.KingsFly {
		return r.flyingKingCaptures(state, piece)
	}
	var segments []Move
	for _, dir := range diagonalDirections {
		if piece.Kind == Man && !dir.forward(piece.Color) && !r.variant.MenCaptureBackwards {
			continue
		}
		over := piece.Pos.Offset(dir, 1)
		land := piece.Pos.Offset(dir, 2)
		if !state.Board.InBounds(land) {
			continue
		}
		victim, ok := state.PieceAt(over)
		if !ok || victim.Color == piece.Color {
			continue
		}
		if !state.Board.IsEmpty(land) {
			continue
		}
		segments = append(segments, r.buildMove(piece, land, []int{victim.ID}))
	}
	return segments
}

// flyingKingCaptures slides over any run of empty squares, jumps the first
// opposing piece met, and may land on any empty square beyond it.
func (r Rules) flyingKingCaptures(state GameState, piece Piece) []Move {
	var segments []Move
	for _, dir := range diagonalDirections {
		step := 1
		for {
			pos := piece.Pos.Offset(dir, step)
			if !state.Board.InBounds(pos) {
				break
			}
			victim, occupied := state.PieceAt(pos)
			if !occupied {
				step++
				continue
			}
			if victim.Color == piece.Color {
				break
			}
			for landStep := step + 1; ; landStep++ {
				land := piece.Pos.Offset(dir, landStep)
				if !state.Board.IsEmpty(land) {
					break
				}
				segments = append(segments, r.buildMove(piece, land, []int{victim.ID}))
			}
			break
		}
	}
	return segments
}

func (r Rules) simpleMoves(state GameState, piece Piece) []Move {
	var moves []Move
	for _, dir := range diagonalDirections {
		if piece.Kind == Man && !dir.forward(piece.Color) {
			continue
		}
		if piece.Kind == King && r.variant.KingsFly {
			for step := 1; ; step++ {
				pos := piece.Pos.Offset(dir, step)
				if !state.Board.IsEmpty(pos) {
					break
				}
				moves = append(moves, r.buildMove(piece, pos, nil))
			}
			continue
		}
		pos := piece.Pos.Offset(dir, 1)
		if state.Board.IsEmpty(pos) {
			moves = append(moves, r.buildMove(piece, pos, nil))
		}
	}
	return moves
}

func (r Rules) buildMove(piece Piece, to Position, captured []int) Move {
	return Move{
		PieceID:        piece.ID,
		FromRow:        piece.Pos.Row,
		FromCol:        piece.Pos.Col,
		ToRow:          to.Row,
		ToCol:          to.Col,
		IsCapture:      len(captured) > 0,
		Promoted:       piece.Kind == Man && to.Row == promotionRow(piece.Color, r.variant.BoardSize),
		CapturedPieces: captured,
	}
}

func sameIDSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for _, id := range a {
		found := false
		for _, other := range b {
			if id == other {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{%s %dx%d}", r.variant.Name, r.variant.BoardSize, r.variant.BoardSize)
}
