package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/salomonMuriel/schedule-creator/internal/model"
	"github.com/salomonMuriel/schedule-creator/internal/planner"
	"github.com/salomonMuriel/schedule-creator/internal/schedule"
	"github.com/salomonMuriel/schedule-creator/internal/telemetry"
)

// App holds the in-memory state for the server.
// This makes it obvious what the handlers depend on.
type App struct {
	Planner *planner.Service
	Events  telemetry.Repository

	BootNow time.Time
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// StateResponse is the full grid the UI renders from.
type StateResponse struct {
	Days    map[schedule.DayKey][]model.Activity `json:"days"`
	Weeks   int                                  `json:"weeks"`
	CanUndo bool                                 `json:"canUndo"`
}

func stateResponse(svc *planner.Service) StateResponse {
	st := svc.State()
	return StateResponse{Days: st.Days, Weeks: st.Weeks, CanUndo: svc.CanUndo()}
}

// DayActivity pairs an activity with the day cell holding it, for the flat
// all-activities listing.
type DayActivity struct {
	Day      schedule.DayKey `json:"day"`
	Activity model.Activity  `json:"activity"`
}

// activityForm is the create/edit payload. On create the ID is ignored; on
// update it selects the entry to replace.
type activityForm struct {
	ID           string       `json:"id,omitempty"`
	Pillar       model.Pillar `json:"pillar"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Skills       []string     `json:"skills,omitempty"`
	IsFieldTrip  bool         `json:"isFieldTrip"`
	GuestSpeaker bool         `json:"guestSpeaker,omitempty"`
}

func (f activityForm) activity() model.Activity {
	return model.Activity{
		ID:           f.ID,
		Pillar:       f.Pillar,
		Name:         f.Name,
		Description:  f.Description,
		Skills:       f.Skills,
		IsFieldTrip:  f.IsFieldTrip,
		GuestSpeaker: f.GuestSpeaker,
	}
}

func RegisterAPIRoutes(mux *http.ServeMux, rr *RouteRegistry, app *App) {
	svc := app.Planner

	Handle(mux, rr, "GET /api/schedule/state", "Current schedule grid", "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, stateResponse(svc))
	})

	Handle(mux, rr, "GET /api/schedule/activities", "All activities, ordered by week and day", "", func(w http.ResponseWriter, r *http.Request) {
		st := svc.State()
		out := make([]DayActivity, 0, st.TotalActivities())
		keys := make([]schedule.DayKey, 0, len(st.Days))
		for k := range st.Days {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Week != keys[j].Week {
				return keys[i].Week < keys[j].Week
			}
			return dayIndex(keys[i].Day) < dayIndex(keys[j].Day)
		})
		for _, k := range keys {
			for _, a := range st.Days[k] {
				out = append(out, DayActivity{Day: k, Activity: a})
			}
		}
		writeJSON(w, out)
	})

	Handle(mux, rr, "POST /api/schedule/activities", "Create an activity", `{"day":"W1-Mon","pillar":"Hacer","name":"Lab","description":""}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Day string `json:"day"`
			activityForm
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		day, ok := schedule.ParseDayKey(body.Day)
		if !ok {
			http.Error(w, "invalid day key", 400)
			return
		}

		created, err := svc.AddActivity(day, body.activity())
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, DayActivity{Day: day, Activity: created})
	})

	Handle(mux, rr, "POST /api/schedule/activities/update", "Edit an activity in place", `{"day":"W1-Mon","id":"act_...","pillar":"Hacer","name":"Lab 2","description":""}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Day string `json:"day"`
			activityForm
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		day, ok := schedule.ParseDayKey(body.Day)
		if !ok {
			http.Error(w, "invalid day key", 400)
			return
		}
		if body.ID == "" {
			http.Error(w, "id is required", 400)
			return
		}

		found, err := svc.UpdateActivity(day, body.activity())
		if err != nil {
			http.Error(w, err.Error(), 400)
			return
		}
		if !found {
			http.Error(w, "activity not found", 404)
			return
		}
		writeJSON(w, stateResponse(svc))
	})

	Handle(mux, rr, "POST /api/schedule/activities/remove", "Remove an activity", `{"day":"W1-Mon","id":"act_..."}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Day string `json:"day"`
			ID  string `json:"id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		day, ok := schedule.ParseDayKey(body.Day)
		if !ok {
			http.Error(w, "invalid day key", 400)
			return
		}

		removed := svc.RemoveActivity(day, body.ID)
		writeJSON(w, map[string]any{"removed": removed})
	})

	Handle(mux, rr, "POST /api/schedule/move", "Move an activity between days", `{"target":"W1-Tue","activityId":"act_...","source":"W1-Mon"}`, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Target     string `json:"target"`
			ActivityID string `json:"activityId"`
			Source     string `json:"source"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json body", 400)
			return
		}
		target, ok := schedule.ParseDayKey(body.Target)
		if !ok {
			http.Error(w, "invalid target day key", 400)
			return
		}
		source, ok := schedule.ParseDayKey(body.Source)
		if !ok {
			http.Error(w, "invalid source day key", 400)
			return
		}

		moved := svc.MoveActivity(target, body.ActivityID, source)
		if !moved {
			http.Error(w, "activity not found in source day", 404)
			return
		}
		writeJSON(w, stateResponse(svc))
	})

	Handle(mux, rr, "POST /api/schedule/weeks/add", "Append an empty week", "", func(w http.ResponseWriter, r *http.Request) {
		weeks := svc.AddWeek()
		writeJSON(w, map[string]any{"weeks": weeks})
	})

	Handle(mux, rr, "POST /api/schedule/weeks/remove", "Remove the last week", "", func(w http.ResponseWriter, r *http.Request) {
		weeks, err := svc.RemoveWeek()
		if err != nil {
			if errors.Is(err, schedule.ErrLastWeek) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, map[string]any{"weeks": weeks})
	})

	Handle(mux, rr, "POST /api/schedule/undo", "Undo the most recent change", "", func(w http.ResponseWriter, r *http.Request) {
		_, err := svc.Undo()
		if err != nil {
			if errors.Is(err, planner.ErrNothingToUndo) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, stateResponse(svc))
	})

	Handle(mux, rr, "POST /api/schedule/reset", "Restore the seed schedule", "", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Reset(); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, stateResponse(svc))
	})

	Handle(mux, rr, "GET /api/schedule/export", "Download the schedule as JSON", "", func(w http.ResponseWriter, r *http.Request) {
		name, raw, err := svc.Export()
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		_, _ = w.Write(raw)
	})

	Handle(mux, rr, "POST /api/schedule/import", "Replace the schedule from uploaded JSON", `{"weeks":[{"week":1}]}`, func(w http.ResponseWriter, r *http.Request) {
		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
		if err != nil {
			http.Error(w, "failed to read body", 400)
			return
		}
		if err := svc.Import(raw); err != nil {
			if errors.Is(err, schedule.ErrMalformed) {
				http.Error(w, err.Error(), 400)
				return
			}
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, stateResponse(svc))
	})

	Handle(mux, rr, "GET /api/telemetry/stats", "Planner usage summary", "", func(w http.ResponseWriter, r *http.Request) {
		if app.Events == nil {
			http.Error(w, "telemetry disabled", 404)
			return
		}
		since := app.BootNow
		if since.IsZero() {
			since = time.Now().AddDate(0, 0, -30)
		}
		events, err := app.Events.GetEvents(since, nil)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		stats, err := telemetry.CalculateStats(events, since)
		if err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		writeJSON(w, stats)
	})
}

func dayIndex(d schedule.Day) int {
	for i, day := range schedule.Days {
		if day == d {
			return i
		}
	}
	return len(schedule.Days)
}
