package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwatch/formwatch/pkg/rules"
)

func TestResult(t *testing.T) {
	ev := mustEvaluator(t)

	res, err := ev.Evaluate(
		map[string]any{"name": "", "age": "x", "ok": "fine"},
		rules.Spec{"name": "required", "age": "numeric", "ok": "required"},
		rules.EvalOptions{},
	)
	require.NoError(t, err)

	t.Run("count and membership", func(t *testing.T) {
		assert.Equal(t, 2, res.Count())
		assert.False(t, res.Empty())
		assert.True(t, res.Has("name"))
		assert.True(t, res.Has("age"))
		assert.False(t, res.Has("ok"))
		assert.False(t, res.Has("unknown"))
	})

	t.Run("fields are sorted", func(t *testing.T) {
		assert.Equal(t, []string{"age", "name"}, res.Fields())
	})

	t.Run("first on a clean field is empty", func(t *testing.T) {
		assert.Equal(t, "", res.First("ok"))
		assert.NotEmpty(t, res.First("name"))
	})

	t.Run("get returns an independent copy", func(t *testing.T) {
		msgs := res.Get("name")
		require.NotEmpty(t, msgs)
		msgs[0] = "tampered"
		assert.NotEqual(t, "tampered", res.First("name"))
	})

	t.Run("all returns an independent copy", func(t *testing.T) {
		all := res.All()
		all["name"][0] = "tampered"
		delete(all, "age")
		assert.NotEqual(t, "tampered", res.First("name"))
		assert.True(t, res.Has("age"))
	})

	t.Run("zero value is a valid empty result", func(t *testing.T) {
		var zero rules.Result
		assert.True(t, zero.Empty())
		assert.Zero(t, zero.Count())
		assert.Nil(t, zero.Get("anything"))
		assert.Empty(t, zero.Fields())
	})
}
