package rules

import (
	"slices"
)

// EvalOptions carries the per-call inputs of an evaluation pass.
type EvalOptions struct {
	// Messages overrides message templates, keyed "field.rule" (most
	// specific) or "rule". Values are final template strings; translation
	// of message keys happens before they reach the evaluator.
	Messages map[string]string

	// Attributes maps field names to display names substituted for
	// {{field}} in templates.
	Attributes map[string]string

	// Locale selects the message catalog ("en", "de", ...). Unknown or
	// empty locales fall back to en. Locale is call-scoped on purpose:
	// the evaluator keeps no ambient locale state.
	Locale string
}

// Evaluator checks value maps against rule specs. Instances are immutable
// after New and safe for concurrent use.
type Evaluator struct {
	checks   map[string]CheckFunc
	catalogs map[string]map[string]string
}

// Option configures an Evaluator instance.
type Option func(*Evaluator)

// WithRule registers a custom rule or replaces a built-in one.
func WithRule(name string, check CheckFunc) Option {
	return func(e *Evaluator) {
		if name != "" && check != nil {
			e.checks[name] = check
		}
	}
}

// WithCatalog merges message templates into the catalog for a locale,
// creating the locale when it does not exist yet.
func WithCatalog(locale string, templates map[string]string) Option {
	return func(e *Evaluator) {
		if locale == "" {
			return
		}
		if e.catalogs[locale] == nil {
			e.catalogs[locale] = make(map[string]string, len(templates))
		}
		for rule, template := range templates {
			e.catalogs[locale][rule] = template
		}
	}
}

// New creates an Evaluator with the built-in rules and embedded catalogs.
func New(opts ...Option) (*Evaluator, error) {
	catalogs, err := loadCatalogs()
	if err != nil {
		return nil, err
	}
	e := &Evaluator{
		checks:   builtinChecks(),
		catalogs: catalogs,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Evaluate checks every field of the spec against the values and returns the
// collected errors. Fields are processed in sorted order and each field's
// rules in declared order; the first failing rule for a field suppresses the
// rest of that field's rules.
//
// A failing rule is a validation outcome recorded in the Result. A rule the
// evaluator cannot run — unknown name, malformed parameters — aborts the pass
// with a *ConfigError instead.
func (e *Evaluator) Evaluate(values map[string]any, spec Spec, opts EvalOptions) (Result, error) {
	if values == nil {
		values = map[string]any{}
	}

	fields := make([]string, 0, len(spec))
	for field := range spec {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	errs := make(map[string][]string)
	count := 0

	for _, field := range fields {
		exprs := parseExpr(spec[field])
		numeric := numericField(exprs)
		value, present := values[field]

		for _, re := range exprs {
			ok, err := e.runCheck(field, value, present, re, numeric, values)
			if err != nil {
				return Result{}, &ConfigError{Field: field, Rule: re.name, Err: err}
			}
			if !ok {
				errs[field] = append(errs[field], e.message(field, re.name, re.params, opts))
				count++
				break
			}
		}
	}

	return newResult(errs, count), nil
}

func (e *Evaluator) runCheck(field string, value any, present bool, re ruleExpr, numeric bool, values map[string]any) (bool, error) {
	// Absent values satisfy everything except the required family, so a
	// rule like "date|required_without:age" on a nil birthday reports only
	// the conditional-required failure.
	if absent(value, present) && !requiredFamily[re.name] {
		return true, nil
	}
	if check, ok := e.checks[re.name]; ok {
		return check(field, value, re.params, values)
	}
	if isSizeRule(re.name) {
		return sizeCheck(re.name, value, re.params, numeric)
	}
	return false, ErrUnknownRule
}
