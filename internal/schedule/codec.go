package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/salomonMuriel/schedule-creator/internal/model"
)

// ErrMalformed marks persisted or imported JSON that fails schema
// validation. Callers leave current state untouched when they see it.
var ErrMalformed = errors.New("malformed schedule")

// Document is the persisted JSON form: an ordered list of week objects with
// optional day buckets. Activities carry no IDs on the wire; identity is
// re-minted on every load.
type Document struct {
	Weeks []WeekDoc `json:"weeks"`
}

type WeekDoc struct {
	Week *int    `json:"week"`
	Mon  *DayDoc `json:"mon,omitempty"`
	Tue  *DayDoc `json:"tue,omitempty"`
	Wed  *DayDoc `json:"wed,omitempty"`
	Thu  *DayDoc `json:"thu,omitempty"`
	Fri  *DayDoc `json:"fri,omitempty"`
	Sat  *DayDoc `json:"sat,omitempty"`
}

type DayDoc struct {
	Activities []ActivityDoc `json:"activities"`
}

// ActivityDoc is an Activity without its ID.
type ActivityDoc struct {
	Pillar       model.Pillar `json:"pillar"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Skills       []string     `json:"skills,omitempty"`
	IsFieldTrip  bool         `json:"isFieldTrip"`
	GuestSpeaker bool         `json:"guestSpeaker,omitempty"`
}

func (w *WeekDoc) day(d Day) **DayDoc {
	switch d {
	case Mon:
		return &w.Mon
	case Tue:
		return &w.Tue
	case Wed:
		return &w.Wed
	case Thu:
		return &w.Thu
	case Fri:
		return &w.Fri
	default:
		return &w.Sat
	}
}

// Parse validates raw JSON against the persisted schema and returns the
// Document. The two schema requirements are a weeks array and a numeric,
// positive week number on every entry; absent day buckets are fine.
func Parse(raw []byte) (Document, error) {
	var probe struct {
		Weeks json.RawMessage `json:"weeks"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if probe.Weeks == nil {
		return Document{}, fmt.Errorf("%w: missing 'weeks' array", ErrMalformed)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, w := range doc.Weeks {
		if w.Week == nil {
			return Document{}, fmt.Errorf("%w: weeks[%d] has no 'week' number", ErrMalformed, i)
		}
		if *w.Week < 1 {
			return Document{}, fmt.Errorf("%w: weeks[%d] has week number %d", ErrMalformed, i, *w.Week)
		}
	}
	return doc, nil
}

// Decode builds the in-memory schedule from a validated Document: each
// declared day bucket gets fresh IDs for its activities, every remaining day
// cell up to the max declared week is backfilled empty, and an empty week
// list falls back to DefaultWeeks. Decode never fails; schema errors belong
// to Parse.
func Decode(doc Document) State {
	weeks := 0
	days := map[DayKey][]model.Activity{}

	for _, w := range doc.Weeks {
		num := *w.Week
		if num > weeks {
			weeks = num
		}
		for _, d := range Days {
			key := NewDayKey(num, d)
			bucket := *w.day(d)
			if bucket == nil {
				if _, ok := days[key]; !ok {
					days[key] = []model.Activity{}
				}
				continue
			}
			acts := make([]model.Activity, 0, len(bucket.Activities))
			for _, ad := range bucket.Activities {
				acts = append(acts, model.Activity{
					ID:           model.NewID(),
					Pillar:       ad.Pillar,
					Name:         ad.Name,
					Description:  ad.Description,
					Skills:       append([]string(nil), ad.Skills...),
					IsFieldTrip:  ad.IsFieldTrip,
					GuestSpeaker: ad.GuestSpeaker,
				})
			}
			days[key] = acts
		}
	}

	if weeks == 0 {
		weeks = DefaultWeeks
	}
	s := State{Days: days, Weeks: weeks}
	s.backfill()
	return s
}

// Encode produces the persisted form of a schedule. Day keys are grouped by
// week, weeks are emitted in ascending order (a contract of the format, not
// an iteration accident), activity IDs are stripped, and every key present
// in the map is emitted, an empty list as {"activities": []}. Keys that do
// not parse as W<n>-<day> are skipped; the schedule's own mutations cannot
// produce them.
func Encode(s State) Document {
	byWeek := map[int]*WeekDoc{}
	for key, acts := range s.Days {
		if key.Week < 1 || !key.Day.Valid() {
			continue
		}
		w, ok := byWeek[key.Week]
		if !ok {
			num := key.Week
			w = &WeekDoc{Week: &num}
			byWeek[key.Week] = w
		}
		docs := make([]ActivityDoc, 0, len(acts))
		for _, a := range acts {
			docs = append(docs, ActivityDoc{
				Pillar:       a.Pillar,
				Name:         a.Name,
				Description:  a.Description,
				Skills:       append([]string(nil), a.Skills...),
				IsFieldTrip:  a.IsFieldTrip,
				GuestSpeaker: a.GuestSpeaker,
			})
		}
		*w.day(key.Day) = &DayDoc{Activities: docs}
	}

	nums := make([]int, 0, len(byWeek))
	for num := range byWeek {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	doc := Document{Weeks: make([]WeekDoc, 0, len(nums))}
	for _, num := range nums {
		doc.Weeks = append(doc.Weeks, *byWeek[num])
	}
	return doc
}

// Marshal renders a Document as the pretty-printed JSON used for the file
// mirror and for exports.
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
