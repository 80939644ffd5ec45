package rules

import (
	"net/mail"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
)

// CheckFunc is a single rule check. It receives the field name, the field's
// value, the rule's parameters, and the full value map for cross-field rules.
// It returns false when the value violates the rule, and a non-nil error only
// for malformed parameters (wrapped into a *ConfigError by the evaluator).
type CheckFunc func(field string, value any, params []string, values map[string]any) (bool, error)

var (
	alphaRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

// dateLayouts are tried in order by the date rule for string values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
}

// requiredFamily rules run even on absent values; everything else skips them.
var requiredFamily = map[string]bool{
	"required":         true,
	"required_if":      true,
	"required_with":    true,
	"required_without": true,
}

// hasValue is the required-rule predicate: non-nil, non-blank string,
// non-empty collection.
func hasValue(value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	}
	return true
}

func builtinChecks() map[string]CheckFunc {
	return map[string]CheckFunc{
		"required": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			return hasValue(value), nil
		},
		"required_if": func(_ string, value any, params []string, values map[string]any) (bool, error) {
			if len(params) != 2 {
				return false, ErrBadRuleParams
			}
			if stringify(values[params[0]]) != params[1] {
				return true, nil
			}
			return hasValue(value), nil
		},
		"required_with": func(_ string, value any, params []string, values map[string]any) (bool, error) {
			if len(params) == 0 {
				return false, ErrBadRuleParams
			}
			for _, other := range params {
				if hasValue(values[other]) {
					return hasValue(value), nil
				}
			}
			return true, nil
		},
		"required_without": func(_ string, value any, params []string, values map[string]any) (bool, error) {
			if len(params) == 0 {
				return false, ErrBadRuleParams
			}
			for _, other := range params {
				if !hasValue(values[other]) {
					return hasValue(value), nil
				}
			}
			return true, nil
		},
		"nullable": func(string, any, []string, map[string]any) (bool, error) {
			return true, nil
		},
		"string": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			_, ok := value.(string)
			return ok, nil
		},
		"numeric": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			_, ok := toFloat(value)
			return ok, nil
		},
		"integer": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			return isInteger(value), nil
		},
		"boolean": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			switch v := value.(type) {
			case bool:
				return true, nil
			case string:
				switch strings.ToLower(v) {
				case "true", "false", "1", "0":
					return true, nil
				}
				return false, nil
			}
			if f, ok := toFloat(value); ok {
				return f == 0 || f == 1, nil
			}
			return false, nil
		},
		"email": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			if !ok {
				return false, nil
			}
			addr, err := mail.ParseAddress(s)
			// Reject "Name <a@b>" forms: the whole value must be the address.
			return err == nil && addr.Address == s, nil
		},
		"url": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			if !ok {
				return false, nil
			}
			u, err := url.Parse(s)
			if err != nil {
				return false, nil
			}
			return (u.Scheme == "http" || u.Scheme == "https") && u.Host != "", nil
		},
		"alpha": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			return ok && alphaRe.MatchString(s), nil
		},
		"alpha_num": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			return ok && alphaNumRe.MatchString(s), nil
		},
		"alpha_dash": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			return ok && alphaDashRe.MatchString(s), nil
		},
		"regex": func(_ string, value any, params []string, _ map[string]any) (bool, error) {
			if len(params) == 0 {
				return false, ErrBadRuleParams
			}
			// Commas are legal inside patterns; undo the parameter split.
			re, err := regexp.Compile(strings.Join(params, ","))
			if err != nil {
				return false, ErrBadRuleParams
			}
			return re.MatchString(stringify(value)), nil
		},
		"in": func(_ string, value any, params []string, _ map[string]any) (bool, error) {
			if len(params) == 0 {
				return false, ErrBadRuleParams
			}
			s := stringify(value)
			for _, p := range params {
				if p == s {
					return true, nil
				}
			}
			return false, nil
		},
		"not_in": func(_ string, value any, params []string, _ map[string]any) (bool, error) {
			if len(params) == 0 {
				return false, ErrBadRuleParams
			}
			s := stringify(value)
			for _, p := range params {
				if p == s {
					return false, nil
				}
			}
			return true, nil
		},
		"same": func(_ string, value any, params []string, values map[string]any) (bool, error) {
			if len(params) != 1 {
				return false, ErrBadRuleParams
			}
			return stringify(value) == stringify(values[params[0]]), nil
		},
		"different": func(_ string, value any, params []string, values map[string]any) (bool, error) {
			if len(params) != 1 {
				return false, ErrBadRuleParams
			}
			return stringify(value) != stringify(values[params[0]]), nil
		},
		"confirmed": func(field string, value any, _ []string, values map[string]any) (bool, error) {
			return stringify(value) == stringify(values[field+"_confirmation"]), nil
		},
		"date": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			switch v := value.(type) {
			case time.Time:
				return true, nil
			case string:
				for _, layout := range dateLayouts {
					if _, err := time.Parse(layout, v); err == nil {
						return true, nil
					}
				}
			}
			return false, nil
		},
		"uuid": func(_ string, value any, _ []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			if !ok {
				return false, nil
			}
			// Fast rejection before parsing: canonical length and hyphens.
			if len(s) != 36 || s[8] != '-' || s[13] != '-' || s[18] != '-' || s[23] != '-' {
				return false, nil
			}
			_, err := uuid.Parse(s)
			return err == nil, nil
		},
		"phone": func(_ string, value any, params []string, _ map[string]any) (bool, error) {
			s, ok := value.(string)
			if !ok {
				return false, nil
			}
			region := "US"
			if len(params) > 0 && params[0] != "" {
				region = strings.ToUpper(params[0])
			}
			num, err := phonenumbers.Parse(s, region)
			if err != nil {
				return false, nil
			}
			return phonenumbers.IsValidNumber(num), nil
		},
	}
}

// sizeCheck covers min/max/size/between, which need the numeric-field flag
// and therefore run outside the CheckFunc registry.
func sizeCheck(rule string, value any, params []string, numeric bool) (bool, error) {
	bounds, err := parseBounds(rule, params)
	if err != nil {
		return false, err
	}
	size, ok := sizeOf(value, numeric)
	if !ok {
		return false, nil
	}
	switch rule {
	case "min":
		return size >= bounds[0], nil
	case "max":
		return size <= bounds[0], nil
	case "size":
		return size == bounds[0], nil
	default: // between
		return size >= bounds[0] && size <= bounds[1], nil
	}
}

func isSizeRule(name string) bool {
	switch name {
	case "min", "max", "size", "between":
		return true
	}
	return false
}

func parseBounds(rule string, params []string) ([]float64, error) {
	want := 1
	if rule == "between" {
		want = 2
	}
	if len(params) != want {
		return nil, ErrBadRuleParams
	}
	out := make([]float64, want)
	for i, p := range params {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, ErrBadRuleParams
		}
		out[i] = f
	}
	return out, nil
}
