package sim

import "strings"

// ConfigError is a fatal, load-time configuration or wiring error (§7):
// an unknown node type, a missing required field, an ill-formed predicate,
// or an edge referencing a non-existent label. Label identifies the
// offending node (or "" for a description-wide problem); Hint is an
// actionable remediation message.
type ConfigError struct {
	Label string
	Hint  string
}

func (e *ConfigError) Error() string {
	if e.Label == "" {
		return e.Hint
	}
	return e.Label + ": " + e.Hint
}

// ConfigErrors collects every ConfigError found in one loader pass, so the
// loader can report all problems instead of failing on the first one (§7
// "list actionable remediation").
type ConfigErrors struct {
	Errors []*ConfigError
}

func (e *ConfigErrors) Error() string {
	parts := make([]string, len(e.Errors))
	for i, ce := range e.Errors {
		parts[i] = ce.Error()
	}
	return strings.Join(parts, "\n")
}

// Add appends a new ConfigError.
func (e *ConfigErrors) Add(label, hint string) {
	e.Errors = append(e.Errors, &ConfigError{Label: label, Hint: hint})
}

// Empty reports whether no errors were collected.
func (e *ConfigErrors) Empty() bool {
	return len(e.Errors) == 0
}

// AsError returns e as an error if it holds any ConfigError, else nil —
// the usual "return errs.AsError()" tail of a loader pass.
func (e *ConfigErrors) AsError() error {
	if e.Empty() {
		return nil
	}
	return e
}
