package main

// HistoryEntry records one committed segment and the state it produced.
// TurnComplete marks the segment that ended a turn; a multi-jump chain is a
// run of entries where only the last one has it set.
type HistoryEntry struct {
	Move         Move
	Player       PlayerColor
	State        GameState
	TurnComplete bool
	ElapsedMs    float64
	IsAi         bool
}

// MoveHistory is append-only with a cursor. Undo and redo move the cursor a
// whole turn at a time; ViewAt projects any past state without touching the
// cursor, so forward history survives viewing.
type MoveHistory struct {
	initial GameState
	entries []HistoryEntry
	cursor  int
}

func NewMoveHistory(initial GameState) MoveHistory {
	return MoveHistory{initial: initial.Clone()}
}

func (h *MoveHistory) Reset(initial GameState) {
	h.initial = initial.Clone()
	h.entries = nil
	h.cursor = 0
}

// Push drops any redo tail, then appends.
func (h *MoveHistory) Push(entry HistoryEntry) {
	h.entries = h.entries[:h.cursor]
	h.entries = append(h.entries, entry)
	h.cursor = len(h.entries)
}

// Size is the number of committed segments up to the cursor.
func (h MoveHistory) Size() int {
	return h.cursor
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries[:h.cursor]...)
}

func (h MoveHistory) CanUndo() bool {
	return h.cursor > 0
}

func (h MoveHistory) CanRedo() bool {
	return h.cursor < len(h.entries)
}

// Undo rewinds one whole turn and returns the state now current.
func (h *MoveHistory) Undo() (GameState, bool) {
	if h.cursor == 0 {
		return GameState{}, false
	}
	target := h.cursor - 1
	for target > 0 && !h.entries[target-1].TurnComplete {
		target--
	}
	h.cursor = target
	return h.stateAtCursor(), true
}

// Redo replays one whole turn and returns the state now current.
func (h *MoveHistory) Redo() (GameState, bool) {
	if h.cursor >= len(h.entries) {
		return GameState{}, false
	}
	for h.cursor < len(h.entries) {
		h.cursor++
		if h.entries[h.cursor-1].TurnComplete {
			break
		}
	}
	return h.stateAtCursor(), true
}

// ViewAt returns the state after the segment at index, read-only. Index -1
// yields the initial position. The cursor is untouched.
func (h MoveHistory) ViewAt(index int) (GameState, bool) {
	if index == -1 {
		return h.initial.Clone(), true
	}
	if index < 0 || index >= h.cursor {
		return GameState{}, false
	}
	return h.entries[index].State.Clone(), true
}

func (h MoveHistory) stateAtCursor() GameState {
	if h.cursor == 0 {
		return h.initial.Clone()
	}
	return h.entries[h.cursor-1].State.Clone()
}
