package rules

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalogs/*.yaml
var catalogFS embed.FS

// fallbackLocale is used when the requested locale has no catalog and as the
// per-rule fallback when a catalog is missing an entry.
const fallbackLocale = "en"

// loadCatalogs parses every embedded YAML catalog into locale→rule→template.
func loadCatalogs() (map[string]map[string]string, error) {
	entries, err := fs.ReadDir(catalogFS, "catalogs")
	if err != nil {
		return nil, errors.Join(ErrBadCatalog, err)
	}

	catalogs := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		locale := strings.TrimSuffix(entry.Name(), ".yaml")
		raw, err := catalogFS.ReadFile(path.Join("catalogs", entry.Name()))
		if err != nil {
			return nil, errors.Join(ErrBadCatalog, err)
		}
		templates := make(map[string]string)
		if err := yaml.Unmarshal(raw, &templates); err != nil {
			return nil, errors.Join(ErrBadCatalog, fmt.Errorf("catalog %s: %w", entry.Name(), err))
		}
		catalogs[locale] = templates
	}

	if _, ok := catalogs[fallbackLocale]; !ok {
		return nil, errors.Join(ErrBadCatalog, fmt.Errorf("missing %s catalog", fallbackLocale))
	}
	return catalogs, nil
}

// message resolves the template for a failed rule. Custom overrides win, keyed
// "field.rule" then "rule"; then the locale catalog; then the en catalog.
func (e *Evaluator) message(field, rule string, params []string, opts EvalOptions) string {
	template := ""
	if opts.Messages != nil {
		if t, ok := opts.Messages[field+"."+rule]; ok {
			template = t
		} else if t, ok := opts.Messages[rule]; ok {
			template = t
		}
	}
	if template == "" {
		locale := opts.Locale
		if _, ok := e.catalogs[locale]; !ok {
			locale = fallbackLocale
		}
		if t, ok := e.catalogs[locale][rule]; ok {
			template = t
		} else if t, ok := e.catalogs[fallbackLocale][rule]; ok {
			template = t
		} else {
			template = "The {{field}} is invalid."
		}
	}

	display := field
	if opts.Attributes != nil {
		if a, ok := opts.Attributes[field]; ok && a != "" {
			display = a
		}
	}

	pairs := []string{"{{field}}", display}
	for key, val := range placeholders(rule, params) {
		pairs = append(pairs, "{{"+key+"}}", val)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// placeholders maps a rule's parameters to the template tokens its catalog
// entries use.
func placeholders(rule string, params []string) map[string]string {
	ph := make(map[string]string, 2)
	switch rule {
	case "min":
		ph["min"] = params[0]
	case "max":
		ph["max"] = params[0]
	case "size":
		ph["size"] = params[0]
	case "between":
		ph["min"], ph["max"] = params[0], params[1]
	case "in", "not_in":
		ph["values"] = strings.Join(params, ", ")
	case "same", "different", "required_with", "required_without":
		ph["other"] = strings.Join(params, ", ")
	case "required_if":
		ph["other"], ph["value"] = params[0], params[1]
	case "phone":
		if len(params) > 0 {
			ph["region"] = params[0]
		}
	}
	return ph
}
