// Package assistant turns free-form chat messages into calendar operations.
//
// A message goes to the language model, whose reply either is conversational
// text or encodes a directive (see the directive package). The Assistant
// parses the reply, executes any directive against the store, and renders
// every outcome, including failures, as something the user can read. No
// failure here is ever fatal to the session.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cnaples79/ai-calendar/internal/directive"
	"github.com/cnaples79/ai-calendar/internal/event"
	"github.com/cnaples79/ai-calendar/internal/logger"
	"github.com/cnaples79/ai-calendar/internal/store"
)

// ModelClient is the language-model collaborator. Prompt sends one user
// message and returns the model's reply text.
type ModelClient interface {
	Prompt(ctx context.Context, message string) (string, error)
}

// Reply is what the chat surface renders for one user message: a text line
// and, for read results, the matched events.
type Reply struct {
	Text   string
	Events []event.Event
}

// Assistant wires the model client, the directive parser, and the executor.
type Assistant struct {
	model ModelClient
	exec  *Executor
}

// New creates an assistant operating on the given store.
func New(model ModelClient, st *store.Store) *Assistant {
	return &Assistant{
		model: model,
		exec:  NewExecutor(st),
	}
}

// HandleMessage runs one chat turn. It never returns an error; every failure
// class becomes a user-visible reply.
func (a *Assistant) HandleMessage(ctx context.Context, message string) Reply {
	start := time.Now()
	raw, err := a.model.Prompt(ctx, message)
	logger.RecordTiming("model.prompt", time.Since(start))
	if err != nil {
		logger.Error("model call failed", nil, err)
		logger.IncrCounter("model.errors")
		return Reply{Text: "Sorry, I couldn't reach the assistant service. Please try again."}
	}

	text := strings.TrimSpace(raw)
	res := directive.Parse(text)
	switch res.Outcome {
	case directive.NoDirective:
		// Conversational reply; pass it through as-is.
		return Reply{Text: text}
	case directive.UnknownDirective:
		logger.Warn("model emitted an unsupported action", logger.Fields{"name": res.Name})
		logger.IncrCounter("directives.unknown")
		return Reply{Text: fmt.Sprintf("Sorry, I don't know how to %s yet.", res.Name)}
	}

	logger.IncrCounter("directives." + strings.ToLower(string(res.Directive.Kind)))
	logger.Debug("executing directive", logger.Fields{"kind": string(res.Directive.Kind)})

	result, err := a.exec.Execute(res.Directive)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			logger.IncrCounter("directives.invalid")
			return Reply{Text: verr.Message}
		}
		logger.Error("directive execution failed", logger.Fields{"kind": string(res.Directive.Kind)}, err)
		return Reply{Text: "Sorry, I couldn't complete that request."}
	}

	if result.Kind == ResultEvents {
		return Reply{
			Text:   fmt.Sprintf("Here's what I found (%d):", len(result.Events)),
			Events: result.Events,
		}
	}
	return Reply{Text: result.Message}
}
