package rules

import (
	"strings"
)

// Spec maps field names to pipe-separated rule expressions, e.g.
//
//	rules.Spec{
//	    "email": "required|email",
//	    "age":   "numeric|max:99",
//	}
type Spec map[string]string

// Clone returns an independent copy of the spec. A nil spec clones to nil.
func (s Spec) Clone() Spec {
	if s == nil {
		return nil
	}
	out := make(Spec, len(s))
	for field, expr := range s {
		out[field] = expr
	}
	return out
}

// ruleExpr is one parsed segment of a field expression: "max:99" becomes
// {name: "max", params: ["99"]}.
type ruleExpr struct {
	name   string
	params []string
}

// parseExpr splits a pipe-separated expression into ordered rule segments.
// Empty segments are skipped so "required||email" is tolerated.
func parseExpr(expr string) []ruleExpr {
	parts := strings.Split(expr, "|")
	out := make([]ruleExpr, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawParams, _ := strings.Cut(part, ":")
		re := ruleExpr{name: strings.TrimSpace(name)}
		if rawParams != "" {
			for _, p := range strings.Split(rawParams, ",") {
				re.params = append(re.params, strings.TrimSpace(p))
			}
		}
		out = append(out, re)
	}
	return out
}

// numericField reports whether the expression declares the field numeric,
// which switches min/max/size/between from length to value comparison.
func numericField(exprs []ruleExpr) bool {
	for _, re := range exprs {
		if re.name == "numeric" || re.name == "integer" {
			return true
		}
	}
	return false
}
