package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type jsonLoader struct {
	source []byte
}

// NewJSONLoader creates a new JSON configuration loader
func NewJSONLoader(source []byte) *jsonLoader {
	return &jsonLoader{source: source}
}

func (l *jsonLoader) Decode(into any) error {
	dec := json.NewDecoder(bytes.NewReader(l.source))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return fmt.Errorf("%w: json: %w", ErrDecode, err)
	}
	return nil
}

func (l *jsonLoader) Format() string { return "json" }
