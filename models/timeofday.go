package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// DateInputLayout is the layout of date answers, e.g. "Mar 6, 2024".
	DateInputLayout = "Jan 2, 2006"
	// TimeInputLayout is the layout of time answers, e.g. "10:30 AM".
	TimeInputLayout = "3:04 PM"
	// TimeDisplayLayout is used when a time is shown back to people.
	TimeDisplayLayout = "03:04 PM"
)

// TimeOfDay is a wall-clock time with minute resolution, stored as minutes
// since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour (0-23) and minute (0-59).
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// TimeOfDayOf drops the date and timezone of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseTimeOfDay accepts "3:04 PM" (case-insensitive) or 24-hour "15:04".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range []string{TimeInputLayout, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q", s)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < 24*60
}

// Format renders t using a time layout.
func (t TimeOfDay) Format(layout string) string {
	return time.Date(2000, 1, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format(layout)
}

func (t TimeOfDay) String() string {
	return t.Format(TimeDisplayLayout)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format("15:04"))
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DayCode returns the lower-case three letter weekday code of d ("mon".."sun").
func DayCode(d time.Time) string {
	return strings.ToLower(d.Weekday().String()[:3])
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
