package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Args are the decoded arguments of one call.
type Args map[string]any

// decodeArgs accepts an absent, empty, or null payload as {}. Anything but an object is an error.
func decodeArgs(raw json.RawMessage) (Args, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return Args{}, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrInvalidArguments)
	}
	return Args(m), nil
}

// String coerces the named argument to a string; absent and null become "".
func (a Args) String(name string) string {
	return toString(a[name])
}

// Has reports whether the argument is present, even when null.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

// coordinate reads obj[key] as a number. Null, blank strings and false read as 0, true as 1.
// An absent key or a value that does not parse reports false.
func coordinate(obj map[string]any, key string) (float64, bool) {
	v, present := obj[key]
	if !present {
		return 0, false
	}
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, true
	case float64:
		f = t
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
	if math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// step is the unit move along one axis from self toward a landmark. An unreadable self
// coordinate counts as 0; an unreadable landmark coordinate holds that axis still.
func step(self, landmark map[string]any, key string) int {
	to, ok := coordinate(landmark, key)
	if !ok {
		return 0
	}
	from, _ := coordinate(self, key)
	switch {
	case to > from:
		return 1
	case to < from:
		return -1
	default:
		return 0
	}
}

// clamp keeps the first n characters of s.
func clamp(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
