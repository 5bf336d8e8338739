package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cnaples79/ai-calendar/internal/assistant"
	"github.com/cnaples79/ai-calendar/internal/event"
	"github.com/cnaples79/ai-calendar/internal/ical"
	"github.com/cnaples79/ai-calendar/internal/store"
)

const dateLayout = "2006-01-02"

func printReply(w io.Writer, reply assistant.Reply) {
	fmt.Fprintf(w, "assistant> %s\n", reply.Text)
	printEvents(w, reply.Events)
}

func printEvents(w io.Writer, events []event.Event) {
	for _, evt := range events {
		fmt.Fprintf(w, "  %s\n", FormatEvent(evt))
	}
}

// FormatEvent renders one event as a single list line.
func FormatEvent(evt event.Event) string {
	s := fmt.Sprintf("[%s] %s: %s to %s",
		evt.ID,
		evt.Title,
		evt.StartTime.Format(event.TimestampLayout),
		evt.EndTime.Format(event.TimestampLayout))
	if evt.Description != "" {
		s += fmt.Sprintf(" (%s)", evt.Description)
	}
	return s
}

// runLocalCommand handles a "/" command against the store directly, without
// a model call. It returns true when the session should end.
func runLocalCommand(w io.Writer, st *store.Store, line string) bool {
	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]

	switch command {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Fprintln(w, `Commands:
  /events [YYYY-MM-DD]  List all events, or the events on a given day
  /export [path]        Write the calendar to an .ics file (default calendar.ics)
  /quit                 Exit
Anything else is sent to the assistant.`)

	case "/events":
		events := st.All()
		if len(args) > 0 {
			date, err := time.ParseInLocation(dateLayout, args[0], time.Local)
			if err != nil {
				fmt.Fprintf(w, "I didn't understand %q; dates look like 2025-07-28.\n", args[0])
				return false
			}
			events = st.ForDate(date)
		}
		if len(events) == 0 {
			fmt.Fprintln(w, "No events.")
			return false
		}
		printEvents(w, events)

	case "/export":
		path := "calendar.ics"
		if len(args) > 0 {
			path = args[0]
		}
		if err := ical.WriteFile(path, st.All()); err != nil {
			fmt.Fprintf(w, "Export failed: %v\n", err)
			return false
		}
		fmt.Fprintf(w, "Wrote %d events to %s\n", len(st.All()), path)

	default:
		fmt.Fprintf(w, "Unknown command %s; try /help.\n", command)
	}
	return false
}
