package world

import (
	"encoding/json"
)

const nonJSONPreview = 400

// SafeJSON decodes a response body, tolerating empty and non-JSON bodies with a placeholder
// object that carries the status.
func SafeJSON(resp *Response) any {
	if len(resp.Body) == 0 {
		return map[string]any{"error": "empty_response", "status": resp.Status}
	}
	var v any
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return map[string]any{
			"error":  "non_json_response",
			"status": resp.Status,
			"text":   preview(string(resp.Body), nonJSONPreview),
		}
	}
	return v
}

// SafeObject is SafeJSON narrowed to objects; anything else yields nil.
func SafeObject(resp *Response) map[string]any {
	m, _ := SafeJSON(resp).(map[string]any)
	return m
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
