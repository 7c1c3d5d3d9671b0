package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/malicorX/moltworld/internal/interpolation"
)

// Validate expands environment references and checks every section, collecting all problems.
func (s *Settings) Validate() error {
	if s.Version == "" {
		s.Version = VersionLatest
	}
	if s.Version != VersionLatest {
		return fmt.Errorf("%w: %s", ErrUnsupportedConfigVer, s.Version)
	}

	var errs []error
	if err := interpolation.InterpolateStruct(s); err != nil {
		errs = append(errs, fmt.Errorf("interpolation failed: %w", err))
	}

	errs = append(errs, s.World.validate()...)
	errs = append(errs, s.Server.validate()...)
	errs = append(errs, s.Fetch.validate()...)

	if !s.Logging.Format.IsValid() {
		errs = append(errs, fmt.Errorf("%w: logging.format %q", ErrInvalidValue, s.Logging.Format))
	}
	if !s.Logging.Level.IsValid() {
		errs = append(errs, fmt.Errorf("%w: logging.level %q", ErrInvalidValue, s.Logging.Level))
	}

	return errors.Join(errs...)
}

func (w *WorldSettings) validate() []error {
	if w.BaseURL == "" {
		return nil
	}
	if err := checkHTTPURL(w.BaseURL); err != nil {
		return []error{fmt.Errorf("world.base_url: %w", err)}
	}
	w.BaseURL = strings.TrimRight(w.BaseURL, "/")
	return nil
}

func (s *ServerSettings) validate() []error {
	var errs []error
	switch s.Transport {
	case TransportStdio:
	case TransportHTTP:
		if s.Listen == "" {
			errs = append(errs, fmt.Errorf("%w: server.listen is required for the http transport", ErrMissingRequiredField))
		}
		if !strings.HasPrefix(s.Path, "/") {
			errs = append(errs, fmt.Errorf("%w: server.path %q must start with /", ErrInvalidValue, s.Path))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: server.transport %q", ErrInvalidValue, s.Transport))
	}
	return errs
}

func (f *FetchSettings) validate() []error {
	var errs []error
	if f.MaxChars <= 0 {
		errs = append(errs, fmt.Errorf("%w: fetch.max_chars must be positive", ErrInvalidValue))
	}
	if f.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: fetch.timeout must be positive", ErrInvalidValue))
	}
	return errs
}

func checkHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q must be an http or https URL", ErrInvalidValue, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q has no host", ErrInvalidValue, raw)
	}
	return nil
}
