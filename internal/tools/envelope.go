package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TextContent is one content item of an Envelope.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is what every tool returns, success or failure.
type Envelope struct {
	Content []TextContent `json:"content"`
}

// NewEnvelope renders payload as JSON indented by two spaces. HTML characters are not escaped.
func NewEnvelope(payload any) Envelope {
	text, err := encodePayload(payload)
	if err != nil {
		text, _ = encodePayload(map[string]any{"error": fmt.Sprintf("encode result: %v", err), "ok": false})
	}
	return Envelope{Content: []TextContent{{Type: "text", Text: text}}}
}

// Text returns the text of the first content item.
func (e Envelope) Text() string {
	if len(e.Content) == 0 {
		return ""
	}
	return e.Content[0].Text
}

// Payload decodes the envelope text back into a generic value.
func (e Envelope) Payload() (any, error) {
	var v any
	if err := json.Unmarshal([]byte(e.Text()), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func encodePayload(payload any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func failure(msg string) map[string]any {
	return map[string]any{"error": msg, "ok": false}
}
