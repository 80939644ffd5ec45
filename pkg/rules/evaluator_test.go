package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwatch/formwatch/pkg/rules"
)

func mustEvaluator(t *testing.T, opts ...rules.Option) *rules.Evaluator {
	t.Helper()
	ev, err := rules.New(opts...)
	require.NoError(t, err)
	return ev
}

func TestEvaluate_Basics(t *testing.T) {
	ev := mustEvaluator(t)

	t.Run("required fails on empty string", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"name": ""},
			rules.Spec{"name": "required"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Count())
		assert.Equal(t, []string{"The name field is required."}, res.Get("name"))
	})

	t.Run("satisfied spec yields empty result", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"name": "Ada", "age": 36},
			rules.Spec{"name": "required", "age": "numeric|max:99"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.True(t, res.Empty())
		assert.Zero(t, res.Count())
	})

	t.Run("numeric rejects non-numeric string", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"age": "x"},
			rules.Spec{"age": "numeric|max:99"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"The age must be a number."}, res.Get("age"))
	})

	t.Run("numeric field compares max by value not length", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"age": 120},
			rules.Spec{"age": "numeric|max:99"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"The age may not be greater than 99."}, res.Get("age"))
	})

	t.Run("string field compares max by rune count", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"nick": "ünïcødé"},
			rules.Spec{"nick": "max:7"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.True(t, res.Empty())
	})

	t.Run("missing field with no required rule passes", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{},
			rules.Spec{"website": "url"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.True(t, res.Empty())
	})

	t.Run("missing field with required rule fails", func(t *testing.T) {
		res, err := ev.Evaluate(
			nil,
			rules.Spec{"name": "required"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.True(t, res.Has("name"))
	})
}

func TestEvaluate_ShortCircuit(t *testing.T) {
	ev := mustEvaluator(t)

	t.Run("first failing rule suppresses the rest of the field", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"age": "x"},
			rules.Spec{"age": "numeric|integer|max:9"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		require.Len(t, res.Get("age"), 1)
		assert.Equal(t, "The age must be a number.", res.First("age"))
	})

	t.Run("error order follows declared rule order", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"code": "abc"},
			rules.Spec{"code": "alpha|size:5"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"The code must be 5."}, res.Get("code"))
	})
}

func TestEvaluate_CrossField(t *testing.T) {
	ev := mustEvaluator(t)

	t.Run("required_without fires when counterpart is nil", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"age": nil, "birthday": nil},
			rules.Spec{"birthday": "date|required_without:age"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"The birthday field is required when age is not present."},
			res.Get("birthday"))
	})

	t.Run("required_without clears when counterpart is set", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"age": 30, "birthday": nil},
			rules.Spec{"birthday": "date|required_without:age"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.True(t, res.Empty())
	})

	t.Run("required_if only fires on matching counterpart value", func(t *testing.T) {
		spec := rules.Spec{"company": "required_if:kind,business"}

		res, err := ev.Evaluate(map[string]any{"kind": "personal"}, spec, rules.EvalOptions{})
		require.NoError(t, err)
		assert.True(t, res.Empty())

		res, err = ev.Evaluate(map[string]any{"kind": "business"}, spec, rules.EvalOptions{})
		require.NoError(t, err)
		assert.True(t, res.Has("company"))
	})

	t.Run("confirmed reads the _confirmation counterpart", func(t *testing.T) {
		spec := rules.Spec{"password": "required|confirmed"}

		res, err := ev.Evaluate(
			map[string]any{"password": "s3cret", "password_confirmation": "s3cret"},
			spec, rules.EvalOptions{})
		require.NoError(t, err)
		assert.True(t, res.Empty())

		res, err = ev.Evaluate(
			map[string]any{"password": "s3cret", "password_confirmation": "typo"},
			spec, rules.EvalOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"The password confirmation does not match."}, res.Get("password"))
	})
}

func TestEvaluate_ConfigErrors(t *testing.T) {
	ev := mustEvaluator(t)

	t.Run("unknown rule name aborts the pass", func(t *testing.T) {
		_, err := ev.Evaluate(
			map[string]any{"name": "Ada"},
			rules.Spec{"name": "bogus"},
			rules.EvalOptions{},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, rules.ErrUnknownRule)

		var cfgErr *rules.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "name", cfgErr.Field)
		assert.Equal(t, "bogus", cfgErr.Rule)
	})

	t.Run("non-numeric bound aborts the pass", func(t *testing.T) {
		_, err := ev.Evaluate(
			map[string]any{"age": 5},
			rules.Spec{"age": "max:abc"},
			rules.EvalOptions{},
		)
		assert.ErrorIs(t, err, rules.ErrBadRuleParams)
	})

	t.Run("between demands two bounds", func(t *testing.T) {
		_, err := ev.Evaluate(
			map[string]any{"age": 5},
			rules.Spec{"age": "between:1"},
			rules.EvalOptions{},
		)
		assert.ErrorIs(t, err, rules.ErrBadRuleParams)
	})

	t.Run("invalid regex pattern aborts the pass", func(t *testing.T) {
		_, err := ev.Evaluate(
			map[string]any{"code": "a"},
			rules.Spec{"code": "regex:["},
			rules.EvalOptions{},
		)
		assert.ErrorIs(t, err, rules.ErrBadRuleParams)
	})
}

func TestEvaluate_Messages(t *testing.T) {
	ev := mustEvaluator(t)

	t.Run("field-scoped override wins over rule override", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"name": "", "city": ""},
			rules.Spec{"name": "required", "city": "required"},
			rules.EvalOptions{Messages: map[string]string{
				"required":      "{{field}} is mandatory",
				"name.required": "tell us your name",
			}},
		)
		require.NoError(t, err)
		assert.Equal(t, "tell us your name", res.First("name"))
		assert.Equal(t, "city is mandatory", res.First("city"))
	})

	t.Run("attribute replaces the field token", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"dob": ""},
			rules.Spec{"dob": "required"},
			rules.EvalOptions{Attributes: map[string]string{"dob": "date of birth"}},
		)
		require.NoError(t, err)
		assert.Equal(t, "The date of birth field is required.", res.First("dob"))
	})

	t.Run("locale selects the catalog", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"name": ""},
			rules.Spec{"name": "required"},
			rules.EvalOptions{Locale: "de"},
		)
		require.NoError(t, err)
		assert.Equal(t, "Das Feld name ist erforderlich.", res.First("name"))
	})

	t.Run("unknown locale falls back to en", func(t *testing.T) {
		res, err := ev.Evaluate(
			map[string]any{"name": ""},
			rules.Spec{"name": "required"},
			rules.EvalOptions{Locale: "xx"},
		)
		require.NoError(t, err)
		assert.Equal(t, "The name field is required.", res.First("name"))
	})
}

func TestEvaluate_Extensibility(t *testing.T) {
	t.Run("custom rule participates like a built-in", func(t *testing.T) {
		ev := mustEvaluator(t,
			rules.WithRule("even", func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
				n, ok := value.(int)
				return ok && n%2 == 0, nil
			}),
			rules.WithCatalog("en", map[string]string{"even": "The {{field}} must be even."}),
		)

		res, err := ev.Evaluate(
			map[string]any{"count": 3},
			rules.Spec{"count": "even"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t, "The count must be even.", res.First("count"))
	})

	t.Run("catalog override replaces a built-in template", func(t *testing.T) {
		ev := mustEvaluator(t,
			rules.WithCatalog("en", map[string]string{"required": "{{field}}?!"}),
		)

		res, err := ev.Evaluate(
			map[string]any{"name": ""},
			rules.Spec{"name": "required"},
			rules.EvalOptions{},
		)
		require.NoError(t, err)
		assert.Equal(t, "name?!", res.First("name"))
	})
}

func TestEvaluate_Deterministic(t *testing.T) {
	ev := mustEvaluator(t)

	values := map[string]any{"name": "", "age": "x", "email": "nope"}
	spec := rules.Spec{"name": "required", "age": "numeric", "email": "email"}

	first, err := ev.Evaluate(values, spec, rules.EvalOptions{})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		res, err := ev.Evaluate(values, spec, rules.EvalOptions{})
		require.NoError(t, err)
		assert.Equal(t, first.All(), res.All())
		assert.Equal(t, first.Count(), res.Count())
	}
}
