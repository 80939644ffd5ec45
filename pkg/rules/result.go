package rules

import (
	"slices"
)

// Result is an immutable snapshot of one evaluation pass: the ordered error
// messages per field and the total error count. The zero value is a valid,
// empty result.
//
// Accessors return copies, so a Result handed to a caller can never be used
// to corrupt evaluator or engine state.
type Result struct {
	errors map[string][]string
	count  int
}

func newResult(errs map[string][]string, count int) Result {
	return Result{errors: errs, count: count}
}

// Count returns the total number of error messages across all fields.
func (r Result) Count() int { return r.count }

// Empty reports whether the pass produced no errors.
func (r Result) Empty() bool { return r.count == 0 }

// Has reports whether the field has at least one error.
func (r Result) Has(field string) bool {
	return len(r.errors[field]) > 0
}

// Get returns the error messages for a field in rule-declaration order.
// The returned slice is a copy; it is nil when the field has no errors.
func (r Result) Get(field string) []string {
	msgs := r.errors[field]
	if len(msgs) == 0 {
		return nil
	}
	return slices.Clone(msgs)
}

// First returns the first error message for a field, or "" when it has none.
func (r Result) First(field string) string {
	if msgs := r.errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the sorted names of all fields that have errors.
func (r Result) Fields() []string {
	fields := make([]string, 0, len(r.errors))
	for field, msgs := range r.errors {
		if len(msgs) > 0 {
			fields = append(fields, field)
		}
	}
	slices.Sort(fields)
	return fields
}

// All returns a field→messages copy of every error in the result.
func (r Result) All() map[string][]string {
	out := make(map[string][]string, len(r.errors))
	for field, msgs := range r.errors {
		out[field] = slices.Clone(msgs)
	}
	return out
}
