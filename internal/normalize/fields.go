package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The helpers below read one untrusted field each. A missing or mistyped
// field yields the zero value for that field only.

func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func str(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringField(raw json.RawMessage) string {
	s, _ := str(raw)
	return s
}

// stringList accepts an array of strings, skipping other elements, or a lone string.
func stringList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) == 0 {
		return out
	}

	if s, ok := str(raw); ok {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		if s, ok := str(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func boolField(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	if s, ok := str(raw); ok {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

// number accepts JSON numbers and numeric strings. Anything else is unknown.
func number(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		s, ok := str(raw)
		if !ok {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		v = parsed
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
