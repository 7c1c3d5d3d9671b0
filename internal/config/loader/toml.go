package loader

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

type tomlLoader struct {
	source []byte
}

// NewTomlLoader creates a new TOML configuration loader
func NewTomlLoader(source []byte) *tomlLoader {
	return &tomlLoader{source: source}
}

// Decode rejects keys that do not map onto the target so typos in a settings file surface early.
func (l *tomlLoader) Decode(into any) error {
	dec := toml.NewDecoder(bytes.NewReader(l.source))
	dec.DisallowUnknownFields()
	if err := dec.Decode(into); err != nil {
		return fmt.Errorf("%w: toml: %w", ErrDecode, err)
	}
	return nil
}

func (l *tomlLoader) Format() string { return "toml" }
