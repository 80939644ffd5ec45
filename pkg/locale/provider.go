package locale

// Provider is the localization contract the form engine consumes: key
// translation for custom messages and attribute names, plus the current
// language whose first two characters select the rule-engine locale.
type Provider interface {
	// Translate maps a message key to a display string. Implementations
	// must fall back to returning the key itself for unknown keys.
	Translate(key string) string

	// Language returns the current language code, e.g. "en" or "de-AT".
	Language() string
}

// Identity is the no-op Provider: keys translate to themselves and the
// language comes from Lang or, when empty, the process environment.
type Identity struct {
	// Lang overrides environment detection when non-empty.
	Lang string
}

func (p Identity) Translate(key string) string { return key }

func (p Identity) Language() string {
	if p.Lang != "" {
		return p.Lang
	}
	return Detect()
}

// MapProvider serves translations from an in-memory catalog.
type MapProvider struct {
	lang    string
	catalog map[string]string
}

// NewMapProvider creates a catalog-backed provider. An empty lang falls back
// to the detected environment language.
func NewMapProvider(lang string, catalog map[string]string) *MapProvider {
	if lang == "" {
		lang = Detect()
	}
	return &MapProvider{lang: lang, catalog: catalog}
}

// Translate returns the catalog entry for key, or the key itself when the
// catalog has no entry.
func (p *MapProvider) Translate(key string) string {
	if v, ok := p.catalog[key]; ok && v != "" {
		return v
	}
	return key
}

func (p *MapProvider) Language() string { return p.lang }
