package form

import (
	"log/slog"
	"maps"

	"github.com/formwatch/formwatch/pkg/locale"
	"github.com/formwatch/formwatch/pkg/observable"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithModel attaches the initial model. Equivalent to calling SetModel right
// after New, except configuration errors surface from New itself.
func WithModel(m *observable.Map) Option {
	return func(e *Engine) {
		e.model = m
	}
}

// WithManual disables automatic re-validation: no model subscription is
// installed and validity only changes when ValidateField or ValidateForm is
// called explicitly.
func WithManual() Option {
	return func(e *Engine) {
		e.manual = true
	}
}

// WithMessages sets custom error-message templates, keyed "field.rule" or
// "rule". Values are translation keys resolved through the locale provider
// on every pass.
func WithMessages(messages map[string]string) Option {
	return func(e *Engine) {
		e.messages = maps.Clone(messages)
	}
}

// WithAttributes sets display-name keys per field, resolved through the
// locale provider and substituted for {{field}} in messages.
func WithAttributes(attributes map[string]string) Option {
	return func(e *Engine) {
		e.attributes = maps.Clone(attributes)
	}
}

// WithProvider sets the localization provider. Default is locale.Identity{},
// which passes keys through and detects the language from the environment.
func WithProvider(p locale.Provider) Option {
	return func(e *Engine) {
		if p != nil {
			e.provider = p
		}
	}
}

// WithEvaluator replaces the rule evaluator. Default is a rules.Evaluator
// with the built-in rule set.
func WithEvaluator(ev Evaluator) Option {
	return func(e *Engine) {
		if ev != nil {
			e.evaluator = ev
		}
	}
}

// WithLogger provides a logger for bind/unbind and evaluation events.
// If not specified, a discard logger is used.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
