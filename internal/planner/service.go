// Package planner orchestrates the schedule core: it owns the live state,
// wraps every mutation in a history snapshot, mirrors each applied change to
// storage, and records telemetry. Handlers and CLIs talk to a Service; the
// schedule package itself stays pure.
package planner

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/salomonMuriel/schedule-creator/internal/model"
	"github.com/salomonMuriel/schedule-creator/internal/schedule"
	"github.com/salomonMuriel/schedule-creator/internal/storage"
	"github.com/salomonMuriel/schedule-creator/internal/telemetry"
)

// ErrNothingToUndo is reported when the history stack is empty. The UI shows
// it as a disabled action, not a failure.
var ErrNothingToUndo = errors.New("nothing to undo")

type Options struct {
	Mirror       storage.Mirror       // nil = no persistence
	Events       telemetry.Repository // nil = no telemetry
	Logger       *log.Logger
	HistoryLimit int
	Seed         []byte // raw seed JSON; defaults to the embedded dataset
}

type Service struct {
	mu      sync.RWMutex
	cur     schedule.State
	history *schedule.History
	mirror  storage.Mirror
	events  telemetry.Repository
	logger  *log.Logger
	seed    []byte
}

// NewService builds a Service and loads its initial state: the mirror if it
// holds a readable schedule, the seed dataset otherwise. Storage problems on
// startup are logged and fall back to the seed; only an unusable seed is
// fatal.
func NewService(opts Options) (*Service, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.HistoryLimit < 1 {
		opts.HistoryLimit = schedule.HistoryLimit
	}
	if opts.Seed == nil {
		opts.Seed = SeedJSON()
	}

	s := &Service{
		history: schedule.NewHistory(opts.HistoryLimit),
		mirror:  opts.Mirror,
		events:  opts.Events,
		logger:  opts.Logger,
		seed:    opts.Seed,
	}

	seedState, err := decodeRaw(opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed dataset: %w", err)
	}

	s.cur = seedState
	if s.mirror != nil {
		raw, ok, err := s.mirror.Load()
		switch {
		case err != nil:
			s.logger.Printf("planner: load mirror: %v (using seed)", err)
		case ok:
			loaded, err := decodeRaw(raw)
			if err != nil {
				s.logger.Printf("planner: stored schedule unreadable: %v (using seed)", err)
			} else {
				s.cur = loaded
			}
		}
	}
	return s, nil
}

func decodeRaw(raw []byte) (schedule.State, error) {
	doc, err := schedule.Parse(raw)
	if err != nil {
		return schedule.State{}, err
	}
	return schedule.Decode(doc), nil
}

// State returns a deep copy of the current schedule, safe to read and
// serialize without holding the service lock.
func (s *Service) State() schedule.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Clone()
}

func (s *Service) CanUndo() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.history.Len() > 0
}

// mutate applies one pure transform under the snapshot-before-mutation
// discipline: the prior state is recorded only when the transform actually
// changed something, then the new state is mirrored. Callers hold no lock.
func (s *Service) mutate(fn func(schedule.State) (schedule.State, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.cur)
	if !changed {
		return false
	}
	s.history.Record(s.cur.Clone())
	s.cur = next
	s.persistLocked()
	return true
}

// persistLocked mirrors the current state. Failures are logged and do not
// roll back: the in-memory schedule stays authoritative.
func (s *Service) persistLocked() {
	if s.mirror == nil {
		return
	}
	raw, err := schedule.Marshal(schedule.Encode(s.cur))
	if err != nil {
		s.logger.Printf("planner: encode for mirror: %v", err)
		return
	}
	if err := s.mirror.Save(raw); err != nil {
		s.logger.Printf("planner: storage write failed: %v", err)
	}
}

func (s *Service) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if s.events == nil {
		return
	}
	if err := s.events.RecordEvent(t, md); err != nil {
		s.logger.Printf("planner: record %s: %v", t, err)
	}
}

// AddActivity validates the form fields, mints a fresh ID, and appends the
// activity to the day's list.
func (s *Service) AddActivity(day schedule.DayKey, a model.Activity) (model.Activity, error) {
	if err := a.Validate(); err != nil {
		return model.Activity{}, err
	}
	a.ID = model.NewID()
	changed := s.mutate(func(st schedule.State) (schedule.State, bool) {
		return st.AddActivity(day, a)
	})
	if !changed {
		return model.Activity{}, fmt.Errorf("%s: %w", day, schedule.ErrDayOutOfRange)
	}
	s.record(telemetry.EventActivityAdded, telemetry.EventMetadata{
		"day": day.String(), "pillar": string(a.Pillar),
	})
	return a, nil
}

// UpdateActivity replaces the matching entry in place. An unknown ID is a
// diagnostic no-op: logged, reported as found=false, never an error.
func (s *Service) UpdateActivity(day schedule.DayKey, a model.Activity) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	changed := s.mutate(func(st schedule.State) (schedule.State, bool) {
		return st.UpdateActivity(day, a)
	})
	if !changed {
		s.logger.Printf("planner: activity %s not found in %s for update", a.ID, day)
		return false, nil
	}
	s.record(telemetry.EventActivityUpdated, telemetry.EventMetadata{"day": day.String()})
	return true, nil
}

// RemoveActivity filters the activity out of the day. Idempotent.
func (s *Service) RemoveActivity(day schedule.DayKey, activityID string) bool {
	changed := s.mutate(func(st schedule.State) (schedule.State, bool) {
		return st.RemoveActivity(day, activityID)
	})
	if changed {
		s.record(telemetry.EventActivityRemoved, telemetry.EventMetadata{"day": day.String()})
	}
	return changed
}

// MoveActivity relocates an activity between days, appending at the target.
// A missing ID resolves as a logged no-op.
func (s *Service) MoveActivity(target schedule.DayKey, activityID string, source schedule.DayKey) bool {
	changed := s.mutate(func(st schedule.State) (schedule.State, bool) {
		return st.MoveActivity(target, activityID, source)
	})
	if !changed {
		s.logger.Printf("planner: activity %s not found in %s for move", activityID, source)
		return false
	}
	s.record(telemetry.EventActivityMoved, telemetry.EventMetadata{
		"source": source.String(), "target": target.String(),
	})
	return true
}

// AddWeek appends an empty week and returns the new week count.
func (s *Service) AddWeek() int {
	s.mutate(func(st schedule.State) (schedule.State, bool) {
		return st.AddWeek()
	})
	s.record(telemetry.EventWeekAdded, nil)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Weeks
}

// RemoveWeek drops the last week. Returns ErrLastWeek, state untouched, when
// only one week remains; any confirmation prompt is the caller's business.
func (s *Service) RemoveWeek() (int, error) {
	var guard error
	s.mutate(func(st schedule.State) (schedule.State, bool) {
		next, changed, err := st.RemoveWeek()
		guard = err
		return next, changed
	})
	s.mu.RLock()
	weeks := s.cur.Weeks
	s.mu.RUnlock()
	if guard != nil {
		return weeks, guard
	}
	s.record(telemetry.EventWeekRemoved, nil)
	return weeks, nil
}

// Undo restores the most recent prior state. The restored state is mirrored
// like any other change but records no new snapshot.
func (s *Service) Undo() (schedule.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Undo()
	if !ok {
		return schedule.State{}, ErrNothingToUndo
	}
	s.cur = prev
	s.persistLocked()
	s.record(telemetry.EventUndo, nil)
	return s.cur.Clone(), nil
}

// Reset reinstalls the seed dataset and clears the history; undoing across a
// reset is not supported.
func (s *Service) Reset() error {
	seedState, err := decodeRaw(s.seed)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = seedState
	s.history.Clear()
	s.persistLocked()
	s.record(telemetry.EventScheduleReset, nil)
	return nil
}

// Import validates raw JSON and installs it as the current schedule,
// clearing history. On malformed input the current state is left untouched.
func (s *Service) Import(raw []byte) error {
	loaded, err := decodeRaw(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = loaded
	s.history.Clear()
	s.persistLocked()
	s.record(telemetry.EventScheduleImported, telemetry.EventMetadata{
		"weeks": loaded.Weeks,
	})
	return nil
}

// Export renders the current schedule as pretty-printed JSON with a
// date-stamped download filename.
func (s *Service) Export() (filename string, raw []byte, err error) {
	s.mu.RLock()
	raw, err = schedule.Marshal(schedule.Encode(s.cur))
	s.mu.RUnlock()
	if err != nil {
		return "", nil, err
	}
	s.record(telemetry.EventScheduleExported, nil)
	filename = "catapult_schedule_" + time.Now().Format("2006-01-02") + ".json"
	return filename, raw, nil
}
