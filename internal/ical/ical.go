// Package ical exports calendar events as an iCalendar (.ics) document so
// they can be imported into other calendar applications.
package ical

import (
	"fmt"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/cnaples79/ai-calendar/internal/event"
)

// Generate serializes the given events into a single VCALENDAR document.
func Generate(events []event.Event) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//AI Calendar//ai-calendar//EN")

	now := time.Now().UTC()
	for _, evt := range events {
		ve := cal.AddEvent(fmt.Sprintf("%s@ai-calendar", evt.ID))
		ve.SetDtStampTime(now)
		ve.SetStartAt(evt.StartTime)
		ve.SetEndAt(evt.EndTime)
		ve.SetSummary(evt.Title)
		if evt.Description != "" {
			ve.SetDescription(evt.Description)
		}
	}

	return cal.Serialize()
}

// WriteFile writes the events to path as an .ics file.
func WriteFile(path string, events []event.Event) error {
	if err := os.WriteFile(path, []byte(Generate(events)), 0o644); err != nil {
		return fmt.Errorf("writing calendar file: %w", err)
	}
	return nil
}
