package directive

import (
	"regexp"
	"strings"
)

// envelopeRe matches the whole input or nothing: commands embedded in prose
// are not extracted. The action name is case-sensitive.
var envelopeRe = regexp.MustCompile(`^ACTION:([A-Z_]+)\((.*)\)$`)

var kinds = map[string]Kind{
	"CREATE_EVENT": KindCreateEvent,
	"READ_EVENTS":  KindReadEvents,
	"UPDATE_EVENT": KindUpdateEvent,
	"DELETE_EVENT": KindDeleteEvent,
}

// Parse classifies a single line of model output.
func Parse(text string) ParseResult {
	m := envelopeRe.FindStringSubmatch(text)
	if m == nil {
		return ParseResult{Outcome: NoDirective}
	}

	name := m[1]
	kind, ok := kinds[name]
	if !ok {
		return ParseResult{Outcome: UnknownDirective, Name: name}
	}

	return ParseResult{
		Outcome: Recognized,
		Name:    name,
		Directive: &Directive{
			Kind:   kind,
			Params: parseParams(m[2]),
		},
	}
}

// parseParams extracts the raw parameter map from the text between the
// envelope's parentheses. Pairs split on the first '='; segments without one
// are dropped; duplicate names keep the last occurrence.
func parseParams(s string) map[string]string {
	params := make(map[string]string)
	if strings.TrimSpace(s) == "" {
		return params
	}

	for _, pair := range splitPairs(s) {
		eq := strings.Index(pair, "=")
		if eq <= 0 {
			continue
		}
		key := strings.TrimSpace(pair[:eq])
		if key == "" {
			continue
		}
		value := strings.TrimSpace(pair[eq+1:])
		params[key] = unquote(value)
	}
	return params
}

// splitPairs splits the parameter list on commas, except commas inside
// double quotes: the updates parameter carries a JSON object that may
// contain its own commas.
func splitPairs(s string) []string {
	var pairs []string
	start := 0
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				pairs = append(pairs, s[start:i])
				start = i + 1
			}
		}
	}
	return append(pairs, s[start:])
}

// unquote strips exactly one pair of surrounding double quotes.
// No escape-sequence decoding is performed.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
