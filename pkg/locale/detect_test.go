package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formwatch/formwatch/pkg/locale"
)

func TestDetect(t *testing.T) {
	clearLocaleEnv := func(t *testing.T) {
		t.Helper()
		t.Setenv("FORMWATCH_LANG", "")
		t.Setenv("LC_ALL", "")
		t.Setenv("LANG", "")
	}

	t.Run("package override wins", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("FORMWATCH_LANG", "es")
		t.Setenv("LC_ALL", "de_DE.UTF-8")
		assert.Equal(t, "es", locale.Detect())
	})

	t.Run("LC_ALL wins over LANG", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LC_ALL", "de_DE.UTF-8")
		t.Setenv("LANG", "fr_FR.UTF-8")
		assert.Equal(t, "de", locale.Detect())
	})

	t.Run("POSIX locale strings normalize to base tags", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANG", "pt_BR.UTF-8")
		assert.Equal(t, "pt", locale.Detect())
	})

	t.Run("C locale falls through to the default", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANG", "C")
		assert.Equal(t, locale.DefaultLanguage, locale.Detect())
	})

	t.Run("garbage falls through to the default", func(t *testing.T) {
		clearLocaleEnv(t)
		t.Setenv("LANG", "!!nope!!")
		assert.Equal(t, locale.DefaultLanguage, locale.Detect())
	})

	t.Run("empty environment yields the default", func(t *testing.T) {
		clearLocaleEnv(t)
		assert.Equal(t, locale.DefaultLanguage, locale.Detect())
	})
}
