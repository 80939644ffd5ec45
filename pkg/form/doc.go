// Package form binds a declarative rule spec to a mutable observable model
// and keeps derived validity state correct without callers re-triggering
// checks on every mutation path.
//
// An Engine subscribes to its model's mutation events and synchronously
// re-evaluates the entire model on each one — cross-field rules such as
// required_without depend on full-model context, so there is no per-field
// evaluation shortcut. What is tracked per field is display eligibility: the
// dirty-field ledger records which fields have been touched (mutated or
// explicitly validated) and are therefore allowed to surface their errors.
// A field can be invalid yet silent while the user has not reached it.
//
// Derived state is projected from the latest evaluation result and the
// ledger:
//
//	Valid()                  ⇔ ErrorCount() == 0, continuously
//	ShowErrorsOnField(f)     ⇔ f has been touched (regardless of errors)
//	Errors(), FieldErrors()  — defensive copies of the latest result
//
// SetModel always returns the engine to the pristine state (empty ledger),
// even when the new model carries identical errors; Reset does the same for
// the current model. SetRules swaps the spec and also forces a reset. The
// engine is reusable indefinitely across model replacements; Close only
// removes the model subscription.
//
// Everything runs synchronously on the calling goroutine: a Set on the model
// re-enters the validation path before it returns, so mutation latency
// includes one full evaluation pass. The engine is not safe for concurrent
// use from multiple goroutines.
//
// Rule evaluation stays behind the Evaluator interface; the engine never
// parses rule expressions itself. Spec-authoring faults (unknown rule names,
// malformed parameters) propagate as errors from ValidateField, ValidateForm,
// SetModel, SetRules and Reset rather than being masked as "valid".
//
// # Usage
//
//	model := observable.NewMap(map[string]any{"name": "", "age": 12})
//	eng, err := form.New(
//	    rules.Spec{"name": "required", "age": "numeric|max:99"},
//	    form.WithModel(model),
//	)
//	if err != nil { ... }
//	defer eng.Close()
//
//	model.Set("age", "x")        // triggers re-validation synchronously
//	eng.Valid()                  // false
//	eng.ShowErrorsOnField("age") // true: the mutation touched the field
//	eng.ShowErrorsOnField("name")// false: invalid but untouched
package form
