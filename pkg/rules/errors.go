package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownRule is returned when a rule spec references a rule name
	// that is neither built in nor registered via WithRule.
	ErrUnknownRule = errors.New("unknown validation rule")

	// ErrBadRuleParams is returned when a rule's parameter list cannot be
	// parsed, e.g. "max:abc" or "between:1".
	ErrBadRuleParams = errors.New("invalid rule parameters")

	// ErrBadCatalog is returned by New when a message catalog cannot be
	// parsed or overrides reference an empty locale.
	ErrBadCatalog = errors.New("invalid message catalog")
)

// ConfigError describes a malformed rule spec: the field and rule expression
// that could not be evaluated. It wraps one of the sentinel errors above so
// callers can branch with errors.Is while keeping the location information.
//
// ConfigError is a fault, not a validation outcome — it propagates out of
// Evaluate and must not be confused with the per-field messages in Result.
type ConfigError struct {
	Field string
	Rule  string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rule spec error on field %q, rule %q: %v", e.Field, e.Rule, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
