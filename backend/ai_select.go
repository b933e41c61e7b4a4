package main

import (
	"log"
	"math/rand"
	"time"
)

const (
	// MinDifficulty..MaxDifficulty is the ten-tier ladder. Tiers 1-4 are
	// heuristic; tiers 5-10 run minimax with alpha-beta at fixed depths.
	MinDifficulty = 1
	MaxDifficulty = 10

	searchInfinity = 1 << 30
)

var minimaxDepths = map[int]int{5: 1, 6: 2, 7: 3, 8: 4, 9: 5, 10: 7}

type SearchStats struct {
	Start   time.Time
	Nodes   int
	TTHits  int
	Cutoffs int
}

type aiSearch struct {
	rules      Rules
	config     Config
	rng        *rand.Rand
	tt         *TranspositionTable
	shouldStop func() bool
	stats      *SearchStats
}

// SelectMove always returns a member of legal; legal must be non-empty.
// Every tier breaks ties among equally good moves by uniform random choice
// so no tier plays a deterministic, exploitable line.
func (s *aiSearch) SelectMove(state GameState, legal []Move, difficulty int) Move {
	if difficulty < MinDifficulty {
		difficulty = MinDifficulty
	}
	if difficulty > MaxDifficulty {
		difficulty = MaxDifficulty
	}
	switch difficulty {
	case 1:
		return legal[s.rng.Intn(len(legal))]
	case 2:
		return s.greedyCapture(legal)
	case 3:
		return s.cautious(legal)
	case 4:
		return s.heuristic(state, legal)
	default:
		return s.minimaxRoot(state, legal, minimaxDepths[difficulty])
	}
}

func (s *aiSearch) greedyCapture(legal []Move) Move {
	var captures []Move
	for _, move := range legal {
		if move.IsCapture {
			captures = append(captures, move)
		}
	}
	if len(captures) > 0 {
		return captures[s.rng.Intn(len(captures))]
	}
	return legal[s.rng.Intn(len(legal))]
}

// cautious prefers captures, then moves that stay off the board edge.
func (s *aiSearch) cautious(legal []Move) Move {
	var captures []Move
	var interior []Move
	size := s.rules.Variant().BoardSize
	for _, move := range legal {
		if move.IsCapture {
			captures = append(captures, move)
			continue
		}
		to := move.To()
		if to.Row > 0 && to.Col > 0 && to.Row < size-1 && to.Col < size-1 {
			interior = append(interior, move)
		}
	}
	if len(captures) > 0 {
		return captures[s.rng.Intn(len(captures))]
	}
	if len(interior) > 0 {
		return interior[s.rng.Intn(len(interior))]
	}
	return legal[s.rng.Intn(len(legal))]
}

func (s *aiSearch) heuristic(state GameState, legal []Move) Move {
	weights := s.config.Heuristics
	size := s.rules.Variant().BoardSize
	scores := make([]int, len(legal))
	best := -searchInfinity
	for i, move := range legal {
		score := len(move.CapturedPieces) * weights.CaptureBonus
		piece := state.Pieces[move.PieceID]
		score += forwardGain(piece.Color, move) * weights.AdvanceWeight
		score += weights.CenterWeight * (size - centerDistance(move.To(), size))
		scores[i] = score
		if score > best {
			best = score
		}
	}
	return s.pickAmongBest(legal, scores, best)
}

func forwardGain(color PlayerColor, move Move) int {
	if color == PlayerRed {
		return move.ToRow - move.FromRow
	}
	return move.FromRow - move.ToRow
}

func (s *aiSearch) minimaxRoot(state GameState, legal []Move, depth int) Move {
	mover := state.ToMove
	scores := make([]int, len(legal))
	best := -searchInfinity
	for i, move := range legal {
		if s.stopped() {
			break
		}
		next := s.rules.ApplyMove(state, move)
		scores[i] = s.minimax(next, depth-1, -searchInfinity, searchInfinity, mover)
		if scores[i] > best {
			best = scores[i]
		}
	}
	if s.config.AiLogSearchStats && s.stats != nil {
		log.Printf("[ai] depth=%d nodes=%d tt_hits=%d cutoffs=%d elapsed=%dms",
			depth, s.stats.Nodes, s.stats.TTHits, s.stats.Cutoffs,
			time.Since(s.stats.Start).Milliseconds())
	}
	return s.pickAmongBest(legal, scores, best)
}

// minimax scores state from mover's perspective. The side to maximize is
// read from the state itself, so capture chains where the same player moves
// twice in a row are searched correctly.
func (s *aiSearch) minimax(state GameState, depth, alpha, beta int, mover PlayerColor) int {
	if s.stats != nil {
		s.stats.Nodes++
	}
	weights := s.config.Heuristics
	switch state.Status {
	case StatusRedWon, StatusBlackWon:
		if state.Status == winStatusFor(mover) {
			return weights.WinScore
		}
		return -weights.WinScore
	case StatusDraw:
		return 0
	}
	if depth <= 0 {
		return EvaluateState(state, mover, s.rules.Variant(), weights)
	}

	alphaOrig := alpha
	betaOrig := beta
	key := state.Hash
	var ttBest Move
	hasTTBest := false
	if s.tt != nil {
		if entry, ok := s.tt.Probe(key); ok && entry.Depth >= depth {
			if s.stats != nil {
				s.stats.TTHits++
			}
			switch entry.Flag {
			case TTExact:
				return entry.Score
			case TTLower:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case TTUpper:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if beta <= alpha {
				return entry.Score
			}
			if entry.HasBest {
				ttBest = entry.Best
				hasTTBest = true
			}
		}
	}

	legal := s.rules.GenerateLegalMoves(state)
	if len(legal) == 0 {
		// No moves for the side to move: loss for them.
		if state.ToMove == mover {
			return -weights.WinScore
		}
		return weights.WinScore
	}
	if hasTTBest {
		for i, move := range legal {
			if move.Equals(ttBest) {
				legal[0], legal[i] = legal[i], legal[0]
				break
			}
		}
	}

	maximizing := state.ToMove == mover
	var best int
	var bestMove Move
	haveBest := false
	if maximizing {
		best = -searchInfinity
	} else {
		best = searchInfinity
	}
	for _, move := range legal {
		if s.stopped() {
			break
		}
		next := s.rules.ApplyMove(state, move)
		value := s.minimax(next, depth-1, alpha, beta, mover)
		if maximizing {
			if value > best {
				best = value
				bestMove = move
				haveBest = true
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				bestMove = move
				haveBest = true
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			if s.stats != nil {
				s.stats.Cutoffs++
			}
			break
		}
	}

	if s.tt != nil && !s.stopped() {
		flag := TTExact
		if best <= alphaOrig {
			flag = TTUpper
		} else if best >= betaOrig {
			flag = TTLower
		}
		s.tt.Store(TTEntry{Key: key, Depth: depth, Score: best, Flag: flag, Best: bestMove, HasBest: haveBest})
	}
	return best
}

func (s *aiSearch) pickAmongBest(legal []Move, scores []int, best int) Move {
	var top []Move
	for i, move := range legal {
		if scores[i] == best {
			top = append(top, move)
		}
	}
	if len(top) == 0 {
		return legal[s.rng.Intn(len(legal))]
	}
	return top[s.rng.Intn(len(top))]
}

func (s *aiSearch) stopped() bool {
	return s.shouldStop != nil && s.shouldStop()
}
