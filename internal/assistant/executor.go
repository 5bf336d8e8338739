package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/cnaples79/ai-calendar/internal/directive"
	"github.com/cnaples79/ai-calendar/internal/event"
	"github.com/cnaples79/ai-calendar/internal/store"
)

// ValidationError reports a directive whose parameters are missing or
// malformed. Its message is written for the end user, not the developer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ResultKind classifies what Execute produced.
type ResultKind int

const (
	// ResultConfirmation carries a plain confirmation message.
	ResultConfirmation ResultKind = iota
	// ResultEvents carries one or more matched events.
	ResultEvents
	// ResultNoMatches is a successful read that matched nothing.
	ResultNoMatches
	// ResultNotFound means an update or delete resolved no target.
	ResultNotFound
)

// Result is the outcome of executing one directive.
type Result struct {
	Kind    ResultKind
	Message string
	Events  []event.Event
}

// Executor validates directives and applies them to the store.
//
// Validation runs in full before any mutation: a directive either fails
// cleanly with a *ValidationError or executes atomically. Target resolution
// failures are not errors; they come back as ResultNotFound so callers can
// tell "bad request" from "nothing matched".
type Executor struct {
	store *store.Store
}

// NewExecutor creates an executor bound to the given store.
func NewExecutor(st *store.Store) *Executor {
	return &Executor{store: st}
}

// Execute applies a recognized directive and returns its result.
func (x *Executor) Execute(d *directive.Directive) (Result, error) {
	switch d.Kind {
	case directive.KindCreateEvent:
		return x.executeCreate(d.Params)
	case directive.KindReadEvents:
		return x.executeRead(d.Params)
	case directive.KindUpdateEvent:
		return x.executeUpdate(d.Params)
	case directive.KindDeleteEvent:
		return x.executeDelete(d.Params)
	default:
		return Result{}, validationErrorf("Sorry, I can't perform that action.")
	}
}

// createParams is the typed form of CREATE_EVENT parameters.
type createParams struct {
	title       string
	description string
	start       time.Time
	end         time.Time
}

func parseCreateParams(params map[string]string) (createParams, error) {
	p := createParams{
		title:       params["title"],
		description: params["description"],
	}
	if p.title == "" || params["startTime"] == "" || params["endTime"] == "" {
		return p, validationErrorf("I need a title, start time, and end time to create an event.")
	}

	var err error
	if p.start, err = event.ParseTimestamp(params["startTime"]); err != nil {
		return p, validationErrorf("I couldn't read the start time: %v.", err)
	}
	if p.end, err = event.ParseTimestamp(params["endTime"]); err != nil {
		return p, validationErrorf("I couldn't read the end time: %v.", err)
	}
	return p, nil
}

func (x *Executor) executeCreate(params map[string]string) (Result, error) {
	p, err := parseCreateParams(params)
	if err != nil {
		return Result{}, err
	}

	evt := x.store.Create(p.title, p.description, p.start, p.end)
	return Result{
		Kind:    ResultConfirmation,
		Message: fmt.Sprintf("OK, I've added %q to your calendar.", evt.Title),
	}, nil
}

func (x *Executor) executeRead(params map[string]string) (Result, error) {
	query := params["title"]
	if query == "" {
		return Result{}, validationErrorf("I need a title to look for.")
	}

	matches := x.store.FindByTitle(query)
	if len(matches) == 0 {
		return Result{
			Kind:    ResultNoMatches,
			Message: fmt.Sprintf("I couldn't find any events matching %q.", query),
		}, nil
	}
	return Result{Kind: ResultEvents, Events: matches}, nil
}

// parseUpdatePayload converts the updates JSON object into a store patch.
// Keys outside title/description/startTime/endTime are ignored.
func parseUpdatePayload(payload string) (store.Patch, error) {
	var fields map[string]string
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return store.Patch{}, validationErrorf("I couldn't read the updates; they must be a JSON object of field names to new values.")
	}

	var p store.Patch
	for key, value := range fields {
		switch key {
		case "title":
			if value == "" {
				return store.Patch{}, validationErrorf("An event title can't be empty.")
			}
			v := value
			p.Title = &v
		case "description":
			v := value
			p.Description = &v
		case "startTime":
			t, err := event.ParseTimestamp(value)
			if err != nil {
				return store.Patch{}, validationErrorf("I couldn't read the new start time: %v.", err)
			}
			p.StartTime = &t
		case "endTime":
			t, err := event.ParseTimestamp(value)
			if err != nil {
				return store.Patch{}, validationErrorf("I couldn't read the new end time: %v.", err)
			}
			p.EndTime = &t
		}
	}
	return p, nil
}

func (x *Executor) executeUpdate(params map[string]string) (Result, error) {
	query := params["title"]
	if query == "" {
		return Result{}, validationErrorf("I need a title to know which event to update.")
	}
	payload := params["updates"]
	if payload == "" {
		return Result{}, validationErrorf("I need to know what to change about %q.", query)
	}

	patch, err := parseUpdatePayload(payload)
	if err != nil {
		return Result{}, err
	}

	evt, ok := x.store.UpdateByTitle(query, patch)
	if !ok {
		return Result{
			Kind:    ResultNotFound,
			Message: fmt.Sprintf("I couldn't find an event matching %q to update.", query),
		}, nil
	}
	return Result{
		Kind:    ResultConfirmation,
		Message: fmt.Sprintf("OK, I've updated %q.", evt.Title),
	}, nil
}

func (x *Executor) executeDelete(params map[string]string) (Result, error) {
	query := params["title"]
	if query == "" {
		return Result{}, validationErrorf("I need a title to know which event to delete.")
	}

	evt, ok := x.store.DeleteByTitle(query)
	if !ok {
		return Result{
			Kind:    ResultNotFound,
			Message: fmt.Sprintf("I couldn't find an event matching %q to delete.", query),
		}, nil
	}
	return Result{
		Kind:    ResultConfirmation,
		Message: fmt.Sprintf("OK, I've deleted %q from your calendar.", evt.Title),
	}, nil
}
