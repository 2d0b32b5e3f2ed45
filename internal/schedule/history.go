package schedule

// HistoryLimit is the default undo depth. Oldest snapshots are evicted
// silently once the stack is full.
const HistoryLimit = 10

// History is a bounded stack of pre-mutation snapshots, most recent first.
// It knows nothing about what mutated; callers record a deep copy of the
// state as it was immediately before each change.
type History struct {
	limit   int
	entries []State
}

func NewHistory(limit int) *History {
	if limit < 1 {
		limit = HistoryLimit
	}
	return &History{limit: limit}
}

// Record pushes a snapshot to the front, evicting the oldest entry when the
// stack is over its limit.
func (h *History) Record(snapshot State) {
	h.entries = append([]State{snapshot}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// Undo pops the most recent snapshot. The second return is false when there
// is nothing to undo.
func (h *History) Undo() (State, bool) {
	if len(h.entries) == 0 {
		return State{}, false
	}
	top := h.entries[0]
	h.entries = h.entries[1:]
	return top, true
}

// Clear drops every snapshot. Wholesale loads (import, reset) are not
// undoable.
func (h *History) Clear() {
	h.entries = nil
}

func (h *History) Len() int {
	return len(h.entries)
}
