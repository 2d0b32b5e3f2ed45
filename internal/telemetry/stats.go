package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period        string            `json:"period"`
	EventCounts   map[EventType]int `json:"event_counts"`
	ActivityAdds  int               `json:"activity_adds"`
	ActivityMoves int               `json:"activity_moves"`
	Undos         int               `json:"undos"`
	PillarUsage   map[string]int    `json:"pillar_usage"`
	BusiestDays   map[string]int    `json:"busiest_days"`
}

// CalculateStats summarizes planner usage from events
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
		PillarUsage: make(map[string]int),
		BusiestDays: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			continue
		}

		switch event.Type {
		case EventActivityAdded:
			stats.ActivityAdds++
			if pillar, ok := metadata["pillar"].(string); ok {
				stats.PillarUsage[pillar]++
			}
			if day, ok := metadata["day"].(string); ok {
				stats.BusiestDays[day]++
			}
		case EventActivityMoved:
			stats.ActivityMoves++
			if day, ok := metadata["target"].(string); ok {
				stats.BusiestDays[day]++
			}
		case EventUndo:
			stats.Undos++
		}
	}

	return stats, nil
}
