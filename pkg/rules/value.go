package rules

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// absent reports whether a value should be skipped by non-required rules:
// the field is missing, nil, or a blank string.
func absent(value any, present bool) bool {
	if !present || value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// stringify renders a value the way cross-field comparisons (same, in,
// required_if) see it. Numbers format without an exponent so 12 and "12"
// compare equal.
func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return strconv.FormatInt(rv.Int(), 10)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return strconv.FormatUint(rv.Uint(), 10)
		}
		return fmt.Sprintf("%v", value)
	}
}

// toFloat converts numeric Go types and numeric strings to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// isInteger reports whether a value is an integer: any Go integer type, an
// integral float (JSON numbers decode as float64), or an integer string.
func isInteger(value any) bool {
	switch v := value.(type) {
	case float32:
		return v == float32(int64(v))
	case float64:
		return v == float64(int64(v))
	case string:
		_, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return err == nil
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// sizeOf measures a value for the min/max/size/between rules: numeric value
// when the field is declared numeric (or the value is a Go number), rune
// count for strings, element count for slices, arrays and maps.
func sizeOf(value any, numeric bool) (float64, bool) {
	if numeric {
		if f, ok := toFloat(value); ok {
			return f, true
		}
	}
	switch v := value.(type) {
	case string:
		return float64(len([]rune(v))), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len()), true
	}
	if f, ok := toFloat(value); ok {
		return f, true
	}
	return 0, false
}
