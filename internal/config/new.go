package config

import (
	"errors"
	"fmt"

	"github.com/malicorX/moltworld/internal/config/loader"
)

// NewSettings loads a settings file, decoding it onto Default() and validating the result.
// An empty path returns validated defaults.
func NewSettings(path string) (*Settings, error) {
	if path == "" {
		s := Default()
		return s, s.Validate()
	}

	l, err := loader.NewLoaderFromFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return fromLoader(l)
}

// NewSettingsFromBytes decodes data in the given format ("toml", "yaml" or "json").
func NewSettingsFromBytes(data []byte, format string) (*Settings, error) {
	lodFunc, err := loader.ForExtension("." + format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	l, err := loader.NewLoaderFromBytes(data, lodFunc)
	if err != nil {
		if errors.Is(err, loader.ErrNoSourceProvided) {
			s := Default()
			return s, s.Validate()
		}
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	return fromLoader(l)
}

func fromLoader(l loader.Loader) (*Settings, error) {
	s := Default()
	if err := l.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToLoadConfig, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToValidateConfig, err)
	}
	return s, nil
}
