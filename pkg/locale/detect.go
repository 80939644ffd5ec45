package locale

import (
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// DefaultLanguage is returned when no usable language is found in the
// environment.
const DefaultLanguage = "en"

// envConfig mirrors the POSIX locale variables plus a package-specific
// override that wins over both.
type envConfig struct {
	Override string `env:"FORMWATCH_LANG"`
	LCAll    string `env:"LC_ALL"`
	Lang     string `env:"LANG"`
}

var loadDotEnv sync.Once

// Detect resolves the process language from the environment. Values like
// "de_DE.UTF-8" normalize to their base tag "de". Detection reads the
// environment on every call so tests can vary it with t.Setenv; only the
// optional .env file is loaded once.
func Detect() string {
	loadDotEnv.Do(func() {
		// The .env file is optional; a missing file is not an error.
		_ = godotenv.Load()
	})

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return DefaultLanguage
	}

	for _, raw := range []string{cfg.Override, cfg.LCAll, cfg.Lang} {
		if lang := normalize(raw); lang != "" {
			return lang
		}
	}
	return DefaultLanguage
}

// normalize turns a POSIX locale string into a BCP 47 base tag: "de_DE.UTF-8"
// → "de". Unparseable or C/POSIX values yield "".
func normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "" || raw == "C" || raw == "POSIX" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(raw, "_", "-"))
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}
