package main

type TTFlag uint8

const (
	TTExact TTFlag = iota
	TTLower
	TTUpper
)

type TTEntry struct {
	Key     uint64
	Depth   int
	Score   int
	Flag    TTFlag
	Best    Move
	HasBest bool
}

// TranspositionTable memoizes search results for the minimax tiers. One
// table per AIPlayer; searches run on a single goroutine so no locking is
// needed. Boards differ per variant, so tables are never shared across
// games.
type TranspositionTable struct {
	entries map[uint64]TTEntry
	limit   int
}

func NewTranspositionTable(limit int) *TranspositionTable {
	if limit <= 0 {
		limit = 1 << 16
	}
	return &TranspositionTable{entries: make(map[uint64]TTEntry), limit: limit}
}

func (t *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	entry, ok := t.entries[key]
	if !ok || entry.Key != key {
		return TTEntry{}, false
	}
	return entry, true
}

func (t *TranspositionTable) Store(entry TTEntry) {
	if len(t.entries) >= t.limit {
		if existing, ok := t.entries[entry.Key]; !ok || existing.Depth <= entry.Depth {
			// Full table: only replace in place, never grow.
			if ok {
				t.entries[entry.Key] = entry
			}
		}
		return
	}
	if existing, ok := t.entries[entry.Key]; ok && existing.Depth > entry.Depth {
		return
	}
	t.entries[entry.Key] = entry
}

func (t *TranspositionTable) Size() int {
	return len(t.entries)
}

func (t *TranspositionTable) Clear() {
	t.entries = make(map[uint64]TTEntry)
}
