package resolver

import "log/slog"

// Option configures a Resolver
type Option func(*Resolver)

// WithSources sets the ordered source chain.
func WithSources(sources ...Source) Option {
	return func(r *Resolver) {
		r.sources = append(r.sources[:0:0], sources...)
	}
}

// WithLogger sets the logger used to trace which source won each field.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithLogHandler builds the logger from a handler.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Resolver) {
		if handler != nil {
			r.logger = slog.New(handler)
		}
	}
}
