package server

import (
	"fmt"
	"log/slog"

	"github.com/malicorX/moltworld/internal/config"
	"github.com/malicorX/moltworld/internal/diag"
	"github.com/malicorX/moltworld/internal/fetch"
	"github.com/malicorX/moltworld/internal/journal"
	"github.com/malicorX/moltworld/internal/resolver"
	"github.com/malicorX/moltworld/internal/tools"
	"github.com/malicorX/moltworld/internal/world"
)

// NewRegistry wires the tool registry from settings. The returned journal may be nil and must
// be closed by the caller.
func NewRegistry(settings *config.Settings, logger *slog.Logger) (*tools.Registry, *journal.Journal, error) {
	if logger == nil {
		logger = slog.Default()
	}
	handler := logger.Handler()

	res := resolver.New(
		resolver.WithSources(resolver.DefaultSources(settings.World)...),
		resolver.WithLogHandler(handler),
	)
	gateway := world.NewGateway(world.NewSession(), world.WithLogHandler(handler))
	fetcher := fetch.New(
		fetch.WithMaxChars(settings.Fetch.MaxChars),
		fetch.WithTimeout(settings.Fetch.Timeout.AsDuration()),
		fetch.WithUserAgent(settings.Fetch.UserAgent),
		fetch.WithLogger(logger.WithGroup("fetch")),
	)

	opts := []tools.Option{
		tools.WithResolver(res),
		tools.WithAPI(world.NewAPI(gateway)),
		tools.WithFetcher(fetcher),
		tools.WithDirectChat(resolver.NewDirectChat(settings.DirectChat)),
		tools.WithLogHandler(handler),
	}

	if settings.Diagnostics.Enabled {
		dirs := make([]string, 0, len(settings.Diagnostics.Dirs))
		for _, d := range settings.Diagnostics.Dirs {
			dirs = append(dirs, resolver.ExpandHome(d))
		}
		opts = append(opts, tools.WithDiagnostics(
			diag.New(dirs, logger.WithGroup("diag")),
			settings.Diagnostics.FileName,
		))
	}

	var j *journal.Journal
	if settings.Journal.Path != "" {
		var err error
		j, err = journal.Open(resolver.ExpandHome(settings.Journal.Path))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		opts = append(opts, tools.WithJournal(j))
	}

	registry, err := tools.New(opts...)
	if err != nil {
		_ = j.Close()
		return nil, nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	return registry, j, nil
}
