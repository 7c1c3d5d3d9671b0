package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlLoader struct {
	source []byte
}

// NewYamlLoader creates a new YAML configuration loader
func NewYamlLoader(source []byte) *yamlLoader {
	return &yamlLoader{source: source}
}

func (l *yamlLoader) Decode(into any) error {
	dec := yaml.NewDecoder(bytes.NewReader(l.source))
	dec.KnownFields(true)
	if err := dec.Decode(into); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: yaml: %w", ErrDecode, err)
	}
	return nil
}

func (l *yamlLoader) Format() string { return "yaml" }
