package telemetry

import "time"

type EventType string

const (
	EventActivityAdded    EventType = "activity_added"
	EventActivityUpdated  EventType = "activity_updated"
	EventActivityRemoved  EventType = "activity_removed"
	EventActivityMoved    EventType = "activity_moved"
	EventWeekAdded        EventType = "week_added"
	EventWeekRemoved      EventType = "week_removed"
	EventUndo             EventType = "undo"
	EventScheduleReset    EventType = "schedule_reset"
	EventScheduleImported EventType = "schedule_imported"
	EventScheduleExported EventType = "schedule_exported"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
