package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Day is a canonical day-of-week abbreviation. The planner runs Monday
// through Saturday; there is no Sunday column.
type Day string

const (
	Mon Day = "Mon"
	Tue Day = "Tue"
	Wed Day = "Wed"
	Thu Day = "Thu"
	Fri Day = "Fri"
	Sat Day = "Sat"
)

// Days lists the canonical days in display order.
var Days = []Day{Mon, Tue, Wed, Thu, Fri, Sat}

func (d Day) Valid() bool {
	switch d {
	case Mon, Tue, Wed, Thu, Fri, Sat:
		return true
	}
	return false
}

// DayKey addresses a single cell of the schedule grid, e.g. W3-Tue.
// It is the sole addressing scheme into the schedule map.
type DayKey struct {
	Week int
	Day  Day
}

func NewDayKey(week int, day Day) DayKey {
	return DayKey{Week: week, Day: day}
}

// ParseDayKey parses the string form W<week>-<day>. The week number must be
// positive and the day one of the six canonical abbreviations.
func ParseDayKey(s string) (DayKey, bool) {
	rest, ok := strings.CutPrefix(s, "W")
	if !ok {
		return DayKey{}, false
	}
	num, dayPart, ok := strings.Cut(rest, "-")
	if !ok {
		return DayKey{}, false
	}
	week, err := strconv.Atoi(num)
	if err != nil || week < 1 {
		return DayKey{}, false
	}
	day := Day(dayPart)
	if !day.Valid() {
		return DayKey{}, false
	}
	return DayKey{Week: week, Day: day}, true
}

func (k DayKey) String() string {
	return fmt.Sprintf("W%d-%s", k.Week, k.Day)
}

// MarshalText lets a map[DayKey][]Activity serialize with W<n>-<day> object
// keys, which is the form the API and the UI speak.
func (k DayKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *DayKey) UnmarshalText(text []byte) error {
	parsed, ok := ParseDayKey(string(text))
	if !ok {
		return fmt.Errorf("invalid day key: %q", text)
	}
	*k = parsed
	return nil
}
