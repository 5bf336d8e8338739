// Package directive recognizes structured commands in model output.
//
// The assistant model is instructed to reply either conversationally or with
// a single-line command in the envelope
//
//	ACTION:<NAME>(<param>=<value>, <param>=<value>, ...)
//
// Parse classifies a reply as no directive, an unknown directive (envelope
// matched but the name is not one we support), or a recognized Directive.
// Parameter values stay raw strings here; the executor coerces and validates
// them, so a shape mismatch and a bad value are distinguishable failures.
package directive

// Kind identifies a supported directive.
type Kind string

const (
	KindCreateEvent Kind = "CREATE_EVENT"
	KindReadEvents  Kind = "READ_EVENTS"
	KindUpdateEvent Kind = "UPDATE_EVENT"
	KindDeleteEvent Kind = "DELETE_EVENT"
)

// Directive is a recognized command with its raw parameters.
type Directive struct {
	Kind   Kind
	Params map[string]string
}

// Outcome classifies what Parse found in a reply.
type Outcome int

const (
	// NoDirective means the reply is ordinary conversational text.
	NoDirective Outcome = iota
	// UnknownDirective means the envelope matched but the action name is
	// not one we support. Callers decide how loudly to treat this; it
	// usually indicates the model drifted from its prompt.
	UnknownDirective
	// Recognized means a well-formed, supported directive was found.
	Recognized
)

// ParseResult is the three-way outcome of parsing one reply.
type ParseResult struct {
	Outcome   Outcome
	Name      string     // action name as written; set unless Outcome is NoDirective
	Directive *Directive // set only when Outcome is Recognized
}
