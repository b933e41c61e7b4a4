package main

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// AIPlayer runs search on a background goroutine over a cloned snapshot so
// deep tiers never block the control loop. StopThinking cancels an
// in-flight search; a cancelled search publishes no move.
type AIPlayer struct {
	difficulty int
	rng        *rand.Rand
	rngMutex   sync.Mutex
	tt         *TranspositionTable

	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	stopSignal atomic.Bool
	readyMove  Move
}

func NewAIPlayer(difficulty int) *AIPlayer {
	return NewAIPlayerSeeded(difficulty, time.Now().UnixNano())
}

func NewAIPlayerSeeded(difficulty int, seed int64) *AIPlayer {
	if difficulty < MinDifficulty {
		difficulty = MinDifficulty
	}
	if difficulty > MaxDifficulty {
		difficulty = MaxDifficulty
	}
	return &AIPlayer{
		difficulty: difficulty,
		rng:        rand.New(rand.NewSource(seed)),
		tt:         NewTranspositionTable(GetConfig().AiTtMaxEntries),
	}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) Difficulty() int {
	return a.difficulty
}

// ChooseMove is the synchronous path, used by tests and the trainer. The
// control loop uses StartThinking/TakeMove instead.
func (a *AIPlayer) ChooseMove(state GameState, rules Rules) Move {
	legal := rules.GenerateLegalMoves(state)
	if len(legal) == 0 {
		return Move{}
	}
	return a.selectMove(state, rules, legal, nil)
}

func (a *AIPlayer) StartThinking(state GameState, rules Rules) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)
	a.stopSignal.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		legal := rules.GenerateLegalMoves(stateCopy)
		var move Move
		if len(legal) > 0 {
			move = a.selectMove(stateCopy, rules, legal, func() bool { return a.stopSignal.Load() })
		}
		if a.stopSignal.Load() {
			a.moveReady.Store(false)
			a.thinking.Store(false)
			return
		}
		a.moveMutex.Lock()
		a.readyMove = move
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) selectMove(state GameState, rules Rules, legal []Move, shouldStop func() bool) Move {
	a.rngMutex.Lock()
	defer a.rngMutex.Unlock()
	search := &aiSearch{
		rules:      rules,
		config:     GetConfig(),
		rng:        a.rng,
		tt:         a.tt,
		shouldStop: shouldStop,
		stats:      &SearchStats{Start: time.Now()},
	}
	return search.SelectMove(state, legal, a.difficulty)
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() Move {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove
}

// StopThinking cancels any outstanding search and waits for the worker to
// drain, so a game switch never races a stale snapshot.
func (a *AIPlayer) StopThinking() {
	a.stopSignal.Store(true)
	if a.workerDone != nil {
		<-a.workerDone
		a.workerDone = nil
	}
	a.moveReady.Store(false)
	a.stopSignal.Store(false)
}

func (a *AIPlayer) ResetForNewGame() {
	a.StopThinking()
	a.tt.Clear()
}
