package event

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the wire format for event timestamps (YYYY-MM-DDTHH:mm:ss).
// There is no zone designator; values are interpreted in the caller's local zone.
const TimestampLayout = "2006-01-02T15:04:05"

// Event represents a single calendar entry.
//
// EndTime is conventionally at or after StartTime, but nothing enforces it;
// the model occasionally emits inverted ranges and the calendar keeps them.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
}

// ParseTimestamp parses a wire-format timestamp in the local time zone.
func ParseTimestamp(value string) (time.Time, error) {
	t, err := time.ParseInLocation(TimestampLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (want YYYY-MM-DDTHH:mm:ss)", value)
	}
	return t, nil
}

// MatchesTitle reports whether the event's title contains query,
// case-insensitively.
func (e *Event) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(e.Title), strings.ToLower(query))
}

// OccursOn reports whether the event starts on the same calendar day as date,
// compared in date's location. Time of day is ignored.
func (e *Event) OccursOn(date time.Time) bool {
	y1, m1, d1 := e.StartTime.In(date.Location()).Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
