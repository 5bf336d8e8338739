package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/cnaples79/ai-calendar/internal/event"
)

// Op identifies the kind of mutation a Change describes.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change is the notification delivered to subscribers after a successful
// mutation. Event is a copy of the affected event as of the mutation
// (for deletes, its last state before removal).
type Change struct {
	Op    Op
	Event event.Event
}

// Patch describes a partial update. Nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	StartTime   *time.Time
	EndTime     *time.Time
}

// Store holds the event collection. Safe for concurrent use, though the
// chat pipeline only ever drives it from one goroutine at a time.
type Store struct {
	mu     sync.Mutex
	nextID int64
	events []*event.Event
	subs   map[int64]func(Change)
	subSeq int64
}

// New creates an empty store.
func New() *Store {
	return &Store{
		subs: make(map[int64]func(Change)),
	}
}

// Create adds a new event, assigns it a fresh id, and notifies subscribers.
// It returns a copy of the stored event.
func (s *Store) Create(title, description string, start, end time.Time) event.Event {
	s.mu.Lock()
	s.nextID++
	e := &event.Event{
		ID:          strconv.FormatInt(s.nextID, 10),
		Title:       title,
		Description: description,
		StartTime:   start,
		EndTime:     end,
	}
	s.events = append(s.events, e)
	out := *e
	s.mu.Unlock()

	s.notify(OpCreate, out)
	return out
}

// GetByID returns the event with the given id, if present.
func (s *Store) GetByID(id string) (event.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.events {
		if e.ID == id {
			return *e, true
		}
	}
	return event.Event{}, false
}

// All returns copies of every event in insertion order.
func (s *Store) All() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]event.Event, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, *e)
	}
	return out
}

// FindByTitle returns every event whose title contains query
// (case-insensitive), in insertion order.
func (s *Store) FindByTitle(query string) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []event.Event
	for _, e := range s.events {
		if e.MatchesTitle(query) {
			out = append(out, *e)
		}
	}
	return out
}

// ForDate returns every event starting on the same calendar day as date,
// compared in date's location, in insertion order.
func (s *Store) ForDate(date time.Time) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []event.Event
	for _, e := range s.events {
		if e.OccursOn(date) {
			out = append(out, *e)
		}
	}
	return out
}

// UpdateByID merges the patch into the event with the given id.
// Fields not set in the patch are left unchanged. Subscribers are
// notified only when an event was found.
func (s *Store) UpdateByID(id string, p Patch) (event.Event, bool) {
	return s.update(func(e *event.Event) bool { return e.ID == id }, p)
}

// UpdateByTitle merges the patch into the first event whose title contains
// query, case-insensitively, in insertion order.
func (s *Store) UpdateByTitle(query string, p Patch) (event.Event, bool) {
	return s.update(func(e *event.Event) bool { return e.MatchesTitle(query) }, p)
}

func (s *Store) update(match func(*event.Event) bool, p Patch) (event.Event, bool) {
	s.mu.Lock()
	var updated *event.Event
	for _, e := range s.events {
		if match(e) {
			if p.Title != nil {
				e.Title = *p.Title
			}
			if p.Description != nil {
				e.Description = *p.Description
			}
			if p.StartTime != nil {
				e.StartTime = *p.StartTime
			}
			if p.EndTime != nil {
				e.EndTime = *p.EndTime
			}
			updated = e
			break
		}
	}
	if updated == nil {
		s.mu.Unlock()
		return event.Event{}, false
	}
	out := *updated
	s.mu.Unlock()

	s.notify(OpUpdate, out)
	return out, true
}

// DeleteByID removes the event with the given id. Ids are never reused.
func (s *Store) DeleteByID(id string) (event.Event, bool) {
	return s.delete(func(e *event.Event) bool { return e.ID == id })
}

// DeleteByTitle removes the first event whose title contains query,
// case-insensitively, in insertion order. It returns the removed event.
func (s *Store) DeleteByTitle(query string) (event.Event, bool) {
	return s.delete(func(e *event.Event) bool { return e.MatchesTitle(query) })
}

func (s *Store) delete(match func(*event.Event) bool) (event.Event, bool) {
	s.mu.Lock()
	idx := -1
	for i, e := range s.events {
		if match(e) {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return event.Event{}, false
	}
	out := *s.events[idx]
	s.events = append(s.events[:idx], s.events[idx+1:]...)
	s.mu.Unlock()

	s.notify(OpDelete, out)
	return out, true
}

// Subscription is a handle to a registered change listener.
type Subscription struct {
	store *Store
	id    int64
}

// Cancel removes the listener. It is safe to call more than once.
func (sub *Subscription) Cancel() {
	sub.store.mu.Lock()
	delete(sub.store.subs, sub.id)
	sub.store.mu.Unlock()
}

// Subscribe registers fn to be called synchronously after every successful
// mutation, exactly once per mutation. No invocation-order guarantee is made
// among multiple subscribers.
func (s *Store) Subscribe(fn func(Change)) *Subscription {
	s.mu.Lock()
	s.subSeq++
	id := s.subSeq
	s.subs[id] = fn
	s.mu.Unlock()
	return &Subscription{store: s, id: id}
}

// notify delivers the change to all current subscribers. Callbacks run
// outside the store lock so they may call back into the store.
func (s *Store) notify(op Op, e event.Event) {
	s.mu.Lock()
	fns := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	c := Change{Op: op, Event: e}
	for _, fn := range fns {
		fn(c)
	}
}
