package form

import (
	"io"
	"log/slog"

	"github.com/formwatch/formwatch/pkg/locale"
	"github.com/formwatch/formwatch/pkg/observable"
	"github.com/formwatch/formwatch/pkg/rules"
)

// Evaluator is the rule-evaluation contract the engine consumes. Rule
// parsing and checking stay entirely behind it; the engine only decides when
// to evaluate and which errors may be displayed.
type Evaluator interface {
	Evaluate(values map[string]any, spec rules.Spec, opts rules.EvalOptions) (rules.Result, error)
}

// Engine orchestrates reactive validation of one model against one rule
// spec. It is single-threaded by design: all operations run to completion on
// the calling goroutine (see the package documentation).
type Engine struct {
	spec       rules.Spec
	model      *observable.Map
	evaluator  Evaluator
	provider   locale.Provider
	messages   map[string]string
	attributes map[string]string
	manual     bool
	logger     *slog.Logger

	ledger      *ledger
	result      rules.Result
	unsubscribe observable.UnsubscribeFunc
}

// New creates an Engine for the given rule spec, runs an initial evaluation
// pass, and — unless WithManual is set — subscribes to the model's mutation
// events. A malformed spec surfaces as an error here.
func New(spec rules.Spec, opts ...Option) (*Engine, error) {
	e := &Engine{
		spec:     spec.Clone(),
		provider: locale.Identity{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ledger:   newLedger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.evaluator == nil {
		ev, err := rules.New()
		if err != nil {
			return nil, err
		}
		e.evaluator = ev
	}

	e.bind()
	if err := e.revalidate(); err != nil {
		e.unbind()
		return nil, err
	}
	return e, nil
}

// Valid reports whether the latest evaluation produced zero errors. It holds
// continuously, not only after an explicit ValidateForm.
func (e *Engine) Valid() bool { return e.result.Empty() }

// ErrorCount returns the total error count of the latest evaluation.
func (e *Engine) ErrorCount() int { return e.result.Count() }

// Errors returns a field→messages copy of the latest evaluation's errors.
func (e *Engine) Errors() map[string][]string { return e.result.All() }

// FieldErrors returns the ordered error messages for one field, nil when the
// field is valid.
func (e *Engine) FieldErrors(field string) []string { return e.result.Get(field) }

// ShowErrorsOnField reports whether a field has been touched and may display
// its errors. It does not imply the field currently has any.
func (e *Engine) ShowErrorsOnField(field string) bool { return e.ledger.has(field) }

// FieldsThatMayShowErrors returns a sorted copy of the touched-field set.
// Mutating the returned slice has no effect on the engine.
func (e *Engine) FieldsThatMayShowErrors() []string { return e.ledger.fields() }

// Pristine reports whether no field has been touched yet.
func (e *Engine) Pristine() bool { return e.ledger.empty() }

// Model returns the currently bound model, nil when none is set.
func (e *Engine) Model() *observable.Map { return e.model }

// SetModel replaces the bound model, clears the touched-field ledger — even
// when the new model yields identical errors — and re-evaluates. Passing nil
// detaches the model; validation then runs against absent values.
func (e *Engine) SetModel(m *observable.Map) error {
	e.unbind()
	e.model = m
	e.ledger.clear()
	e.bind()
	return e.revalidate()
}

// SetRules replaces the rule spec and forces a reset: ledger cleared, result
// recomputed against the unchanged model.
func (e *Engine) SetRules(spec rules.Spec) error {
	e.spec = spec.Clone()
	e.logger.Debug("rule spec replaced", "fields", len(e.spec))
	e.ledger.clear()
	return e.revalidate()
}

// Reset clears the touched-field ledger and re-evaluates the current model.
// It is idempotent and keeps the model subscription.
func (e *Engine) Reset() error {
	e.ledger.clear()
	return e.revalidate()
}

// ValidateForm re-evaluates the whole model, marks every erroring field as
// touched — whether or not it was individually mutated — and reports overall
// validity.
func (e *Engine) ValidateForm() (bool, error) {
	if err := e.revalidate(); err != nil {
		return false, err
	}
	for _, field := range e.result.Fields() {
		e.ledger.markDirty(field)
	}
	return e.result.Empty(), nil
}

// ValidateField re-evaluates the whole model — cross-field rules need full
// context — marks the field as touched, and reports whether that field is
// valid. Display of other fields' errors is unaffected.
func (e *Engine) ValidateField(field string) (bool, error) {
	if err := e.revalidate(); err != nil {
		return false, err
	}
	e.ledger.markDirty(field)
	return !e.result.Has(field), nil
}

// Close removes the model subscription. It is idempotent, never mutates the
// model, and leaves the engine usable: SetModel re-binds.
func (e *Engine) Close() { e.unbind() }

// revalidate runs one evaluation pass against the current model snapshot and
// replaces the latest result. On a spec fault the previous result is kept —
// stale errors are safer than reporting a broken spec as "valid" — and the
// error propagates to the caller.
func (e *Engine) revalidate() error {
	var values map[string]any
	if e.model != nil {
		values = e.model.Snapshot()
	}

	res, err := e.evaluator.Evaluate(values, e.spec, rules.EvalOptions{
		Messages:   e.translated(e.messages),
		Attributes: e.translated(e.attributes),
		Locale:     shortLang(e.provider.Language()),
	})
	if err != nil {
		e.logger.Error("rule evaluation failed", "error", err)
		return err
	}
	e.result = res
	e.logger.Debug("model evaluated", "errors", res.Count())
	return nil
}

// translated resolves every value of a key map through the locale provider.
// Providers fall back to the key itself, so untranslated maps pass through
// unchanged.
func (e *Engine) translated(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = e.provider.Translate(v)
	}
	return out
}

// bind subscribes to model mutations: events naming a field route to
// field-level validation, wholesale replacements to whole-form validation.
func (e *Engine) bind() {
	if e.model == nil || e.manual {
		return
	}
	e.unsubscribe = e.model.Subscribe(func(ev observable.Event) {
		var err error
		if ev.Field != "" {
			_, err = e.ValidateField(ev.Field)
		} else {
			_, err = e.ValidateForm()
		}
		if err != nil {
			// Mutation-triggered passes have no caller to return to;
			// the fault is logged and the previous result stays in
			// place so validity is never over-reported.
			e.logger.Error("mutation-triggered validation failed", "field", ev.Field, "error", err)
		}
	})
	e.logger.Debug("model bound")
}

// unbind disposes the model subscription. Safe to call repeatedly.
func (e *Engine) unbind() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
		e.logger.Debug("model unbound")
	}
}

// shortLang reduces a language tag to the two-letter code the rule engine's
// catalogs are keyed by: "de-AT" → "de".
func shortLang(lang string) string {
	if len(lang) > 2 {
		return lang[:2]
	}
	return lang
}
