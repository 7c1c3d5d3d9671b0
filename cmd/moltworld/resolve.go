package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/malicorX/moltworld/internal/config"
	"github.com/malicorX/moltworld/internal/fancy"
	"github.com/malicorX/moltworld/internal/logging"
	"github.com/malicorX/moltworld/internal/resolver"
	"github.com/robbyt/go-loglater"
	"github.com/urfave/cli/v3"
)

var resolveCmd = &cli.Command{
	Name:  "resolve",
	Usage: "Show the agent configuration the tools would use, and where each value came from",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "trace",
			Usage: "Replay the resolution log after the summary",
			Value: true,
		},
	},
	Action: resolveAction,
}

func resolveAction(ctx context.Context, cmd *cli.Command) error {
	settings, _, err := prepare(cmd)
	if err != nil {
		return err
	}

	collector := loglater.NewLogCollector(
		slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	res := resolver.New(
		resolver.WithSources(resolver.DefaultSources(settings.World)...),
		resolver.WithLogHandler(collector),
	)
	resolved := res.Resolve(ctx)

	out := cmd.Root().Writer
	if _, err := fmt.Fprintln(out, renderResolved(resolved, res.Sources())); err != nil {
		return err
	}

	if !cmd.Bool("trace") {
		return nil
	}
	return collector.PlayLogs(logging.SetupHandlerText(string(config.LogLevelDebug), out))
}

func renderResolved(c resolver.Configuration, sources []string) string {
	tree := fancy.NewComponentTree(fancy.RootStyle.Render("Agent Configuration"))
	tree.AddChild("Base URL: " + fancy.URLText(c.BaseURL))
	tree.AddChild("Agent ID: " + c.AgentID)
	tree.AddChild("Agent Name: " + c.AgentName)
	tree.AddChild("Token: " + fancy.SecretText(c.Token))
	tree.AddChild("Admin Token: " + fancy.SecretText(c.AdminToken))

	chain := fancy.NewComponentTree(fancy.FormatSection("Sources", len(sources)))
	for _, s := range sources {
		chain.AddChild(fancy.SourceText(s))
	}
	tree.AddChild(chain)
	return tree.String()
}
