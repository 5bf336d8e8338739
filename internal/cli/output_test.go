package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cnaples79/ai-calendar/internal/assistant"
	"github.com/cnaples79/ai-calendar/internal/event"
	"github.com/cnaples79/ai-calendar/internal/store"
)

func TestFormatEvent(t *testing.T) {
	start := time.Date(2025, time.July, 28, 10, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		evt  event.Event
		want string
	}{
		{
			name: "with description",
			evt: event.Event{
				ID:          "1",
				Title:       "Team Meeting",
				Description: "Discuss project progress.",
				StartTime:   start,
				EndTime:     start.Add(time.Hour),
			},
			want: "[1] Team Meeting: 2025-07-28T10:00:00 to 2025-07-28T11:00:00 (Discuss project progress.)",
		},
		{
			name: "without description",
			evt: event.Event{
				ID:        "2",
				Title:     "Dentist",
				StartTime: start,
				EndTime:   start.Add(30 * time.Minute),
			},
			want: "[2] Dentist: 2025-07-28T10:00:00 to 2025-07-28T10:30:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatEvent(tt.evt); got != tt.want {
				t.Errorf("FormatEvent() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintReply(t *testing.T) {
	var buf bytes.Buffer
	printReply(&buf, assistant.Reply{
		Text: "Here's what I found (1):",
		Events: []event.Event{
			{ID: "1", Title: "Team Meeting",
				StartTime: time.Date(2025, time.July, 28, 10, 0, 0, 0, time.Local),
				EndTime:   time.Date(2025, time.July, 28, 11, 0, 0, 0, time.Local)},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "assistant> Here's what I found (1):") {
		t.Errorf("missing reply line: %s", out)
	}
	if !strings.Contains(out, "[1] Team Meeting") {
		t.Errorf("missing event line: %s", out)
	}
}

func seededStore() *store.Store {
	st := store.New()
	day := time.Date(2025, time.July, 28, 10, 0, 0, 0, time.Local)
	st.Create("Team Meeting", "", day, day.Add(time.Hour))
	st.Create("Dentist", "", day.AddDate(0, 0, 1), day.AddDate(0, 0, 1).Add(time.Hour))
	return st
}

func TestRunLocalCommand_Events(t *testing.T) {
	st := seededStore()

	var buf bytes.Buffer
	if quit := runLocalCommand(&buf, st, "/events"); quit {
		t.Fatal("/events requested quit")
	}
	out := buf.String()
	if !strings.Contains(out, "Team Meeting") || !strings.Contains(out, "Dentist") {
		t.Errorf("/events output = %s", out)
	}
}

func TestRunLocalCommand_EventsForDate(t *testing.T) {
	st := seededStore()

	var buf bytes.Buffer
	runLocalCommand(&buf, st, "/events 2025-07-28")
	out := buf.String()
	if !strings.Contains(out, "Team Meeting") {
		t.Errorf("missing same-day event: %s", out)
	}
	if strings.Contains(out, "Dentist") {
		t.Errorf("event from another day leaked in: %s", out)
	}

	buf.Reset()
	runLocalCommand(&buf, st, "/events 2025-01-01")
	if !strings.Contains(buf.String(), "No events.") {
		t.Errorf("empty day output = %s", buf.String())
	}

	buf.Reset()
	runLocalCommand(&buf, st, "/events someday")
	if !strings.Contains(buf.String(), "didn't understand") {
		t.Errorf("bad date output = %s", buf.String())
	}
}

func TestRunLocalCommand_Export(t *testing.T) {
	st := seededStore()
	path := filepath.Join(t.TempDir(), "out.ics")

	var buf bytes.Buffer
	runLocalCommand(&buf, st, "/export "+path)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("export did not write a file: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:Team Meeting") {
		t.Error("exported file missing event")
	}
}

func TestRunLocalCommand_QuitAndUnknown(t *testing.T) {
	st := store.New()

	var buf bytes.Buffer
	if !runLocalCommand(&buf, st, "/quit") {
		t.Error("/quit did not request quit")
	}
	if !runLocalCommand(&buf, st, "/exit") {
		t.Error("/exit did not request quit")
	}

	buf.Reset()
	if runLocalCommand(&buf, st, "/frobnicate") {
		t.Error("unknown command requested quit")
	}
	if !strings.Contains(buf.String(), "/help") {
		t.Errorf("unknown command output = %s", buf.String())
	}
}
