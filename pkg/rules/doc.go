// Package rules implements a declarative, Laravel-flavoured rule evaluator
// for flat field→value maps. A rule spec maps each field name to a
// pipe-separated expression such as "required|numeric|max:99" or
// "date|required_without:age"; Evaluate checks every field against its
// expression and returns an immutable Result holding the ordered error
// messages per field plus a total count.
//
// The evaluator is deliberately narrow: it knows nothing about models,
// observation, or display state. Callers (typically pkg/form) own when to
// re-evaluate and which errors to surface.
//
// # Semantics
//
//   - Rules for a field run in declared order; the first failing rule stops
//     the remaining rules for that field.
//   - Absent values (missing key, nil, or a blank string) pass every rule
//     except the required family, so "date|required_without:age" on a nil
//     birthday reports only the required_without failure.
//   - Cross-field rules (same, different, confirmed, required_if,
//     required_with, required_without) read their counterpart from the full
//     value map, which is why callers always evaluate the whole model.
//
// # Errors
//
// A rule that fails produces an error message in the Result — that is the
// normal outcome of validation, never a Go error. An unknown rule name or a
// malformed parameter list is a spec-authoring bug and surfaces as a
// *ConfigError from Evaluate; it is never folded into the Result.
//
// # Localization
//
// Message templates live in per-locale YAML catalogs embedded in the package
// (en, de, es). The locale is an explicit argument on every Evaluate call;
// the evaluator holds no mutable locale state, so instances are safe to share.
// Custom message overrides and attribute display names are passed per call
// through EvalOptions.
//
// # Usage
//
//	ev, err := rules.New()
//	if err != nil { ... }
//
//	res, err := ev.Evaluate(
//	    map[string]any{"name": "", "age": 12},
//	    rules.Spec{"name": "required", "age": "numeric|max:99"},
//	    rules.EvalOptions{Locale: "en"},
//	)
//	if err != nil { ... }           // spec bug
//	if !res.Empty() {
//	    for _, msg := range res.Get("name") { ... }
//	}
package rules
