package schedule

import (
	"errors"

	"github.com/salomonMuriel/schedule-creator/internal/model"
)

// DefaultWeeks is the week count adopted when a decoded schedule declares no
// weeks at all. A zero-week schedule is not a valid operating state.
const DefaultWeeks = 12

// ErrLastWeek is the guard refusal for removing the only remaining week.
var ErrLastWeek = errors.New("cannot remove the last week")

// ErrDayOutOfRange is reported when a caller addresses a day cell the grid
// does not have.
var ErrDayOutOfRange = errors.New("day is outside the schedule")

// State is the in-memory schedule: every cell of the grid mapped to its
// ordered activity list, paired with the authoritative week count.
//
// Invariant: for Weeks = N, every key W{1..N}-{Mon..Sat} is present in Days
// (possibly mapped to an empty list), and no key outside that range survives
// a mutation.
//
// Mutations are copy-on-write: each returns a new State and reports whether
// anything changed. A mutation whose preconditions fail returns the receiver
// unchanged with changed = false, so callers can skip history snapshots for
// no-ops.
type State struct {
	Days  map[DayKey][]model.Activity
	Weeks int
}

// NewState returns an empty schedule with the completeness invariant
// established for the given week count.
func NewState(weeks int) State {
	if weeks < 1 {
		weeks = DefaultWeeks
	}
	s := State{Days: make(map[DayKey][]model.Activity, weeks*len(Days)), Weeks: weeks}
	s.backfill()
	return s
}

func (s *State) backfill() {
	for w := 1; w <= s.Weeks; w++ {
		for _, d := range Days {
			k := NewDayKey(w, d)
			if _, ok := s.Days[k]; !ok {
				s.Days[k] = []model.Activity{}
			}
		}
	}
}

// Clone deep-copies the state. Snapshots handed to the history must not
// alias the live maps or slices.
func (s State) Clone() State {
	out := State{Days: make(map[DayKey][]model.Activity, len(s.Days)), Weeks: s.Weeks}
	for k, acts := range s.Days {
		cp := make([]model.Activity, len(acts))
		for i, a := range acts {
			cp[i] = a.Clone()
		}
		out.Days[k] = cp
	}
	return out
}

// shallowCopy duplicates the map but shares the per-day slices; mutations
// replace whole slices, never edit them in place, so sharing is safe.
func (s State) shallowCopy() State {
	out := State{Days: make(map[DayKey][]model.Activity, len(s.Days)), Weeks: s.Weeks}
	for k, acts := range s.Days {
		out.Days[k] = acts
	}
	return out
}

func indexOf(acts []model.Activity, id string) int {
	for i, a := range acts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// MoveActivity relocates one activity between day cells. The activity is
// appended to the end of the target's list; drop ordering is "always last".
// Moving within the same day re-appends at the end, which is a visible
// reordering, not a no-op. An ID absent from the source, or a target cell
// outside the grid, resolves as a no-op.
func (s State) MoveActivity(target DayKey, activityID string, source DayKey) (State, bool) {
	if _, ok := s.Days[target]; !ok {
		return s, false
	}
	srcActs := s.Days[source]
	idx := indexOf(srcActs, activityID)
	if idx == -1 {
		return s, false
	}

	moved := srcActs[idx]
	next := s.shallowCopy()

	remaining := make([]model.Activity, 0, len(srcActs)-1)
	remaining = append(remaining, srcActs[:idx]...)
	remaining = append(remaining, srcActs[idx+1:]...)
	next.Days[source] = remaining

	tgtActs := next.Days[target]
	appended := make([]model.Activity, 0, len(tgtActs)+1)
	appended = append(appended, tgtActs...)
	appended = append(appended, moved)
	next.Days[target] = appended

	return next, true
}

// AddActivity appends to the day's list. The caller guarantees the ID is
// fresh; the schedule does not deduplicate. Appending to a cell the grid
// does not have is a no-op: mutations never grow the key set past the week
// count.
func (s State) AddActivity(day DayKey, a model.Activity) (State, bool) {
	if _, ok := s.Days[day]; !ok {
		return s, false
	}
	next := s.shallowCopy()
	acts := next.Days[day]
	appended := make([]model.Activity, 0, len(acts)+1)
	appended = append(appended, acts...)
	appended = append(appended, a)
	next.Days[day] = appended
	return next, true
}

// UpdateActivity replaces the entry matching updated.ID in place, keeping
// its position. An unknown ID is a no-op; the caller surfaces the diagnostic.
func (s State) UpdateActivity(day DayKey, updated model.Activity) (State, bool) {
	acts := s.Days[day]
	idx := indexOf(acts, updated.ID)
	if idx == -1 {
		return s, false
	}
	next := s.shallowCopy()
	replaced := make([]model.Activity, len(acts))
	copy(replaced, acts)
	replaced[idx] = updated
	next.Days[day] = replaced
	return next, true
}

// RemoveActivity filters the activity out of the day's list by ID.
// Idempotent: an absent ID leaves the state unchanged.
func (s State) RemoveActivity(day DayKey, activityID string) (State, bool) {
	acts := s.Days[day]
	if indexOf(acts, activityID) == -1 {
		return s, false
	}
	next := s.shallowCopy()
	filtered := make([]model.Activity, 0, len(acts)-1)
	for _, a := range acts {
		if a.ID != activityID {
			filtered = append(filtered, a)
		}
	}
	next.Days[day] = filtered
	return next, true
}

// AddWeek grows the grid by one week, pre-populating its six day cells so
// the completeness invariant holds before the new count is observable.
func (s State) AddWeek() (State, bool) {
	next := s.shallowCopy()
	next.Weeks = s.Weeks + 1
	for _, d := range Days {
		k := NewDayKey(next.Weeks, d)
		if _, ok := next.Days[k]; !ok {
			next.Days[k] = []model.Activity{}
		}
	}
	return next, true
}

// RemoveWeek drops the highest-numbered week and its six day cells. Only the
// last week can ever be removed, and at least one week must always remain;
// the guard is reported as ErrLastWeek with the state untouched.
func (s State) RemoveWeek() (State, bool, error) {
	if s.Weeks <= 1 {
		return s, false, ErrLastWeek
	}
	next := s.shallowCopy()
	for _, d := range Days {
		delete(next.Days, NewDayKey(s.Weeks, d))
	}
	next.Weeks = s.Weeks - 1
	return next, true, nil
}

// TotalActivities counts activities across every day cell.
func (s State) TotalActivities() int {
	n := 0
	for _, acts := range s.Days {
		n += len(acts)
	}
	return n
}
