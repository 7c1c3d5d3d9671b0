package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/malicorX/moltworld/cmd/moltworld/server"
	"github.com/malicorX/moltworld/internal/client/mcp"
	"github.com/malicorX/moltworld/internal/fancy"
	"github.com/urfave/cli/v3"
)

var toolsCmd = &cli.Command{
	Name:  "tools",
	Usage: "List the available tools",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "remote",
			Aliases: []string{"r"},
			Usage:   "List the tools of a running moltworld server at this MCP endpoint",
		},
	},
	Action: toolsAction,
}

func toolsAction(ctx context.Context, cmd *cli.Command) error {
	var list []mcp.Tool

	if remote := cmd.String("remote"); remote != "" {
		client := mcp.NewClient(mcp.Implementation{Name: "moltworld-cli", Version: cmd.Root().Version}, &http.Client{})
		session, err := client.Dial(ctx, remote)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer func() { _ = session.Close() }()

		list, err = session.ListTools(ctx)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	} else {
		settings, logger, err := prepare(cmd)
		if err != nil {
			return err
		}
		// The journal stays closed; listing does not invoke anything.
		settings.Journal.Path = ""
		registry, _, err := server.NewRegistry(settings, logger)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		for _, t := range registry.Tools() {
			list = append(list, mcp.Tool{Name: t.Name, Description: t.Description})
		}
	}

	_, err := fmt.Fprintln(cmd.Root().Writer, renderTools(list))
	return err
}

func renderTools(list []mcp.Tool) string {
	tree := fancy.NewComponentTree(fancy.FormatSection("Tools", len(list)))
	for _, t := range list {
		tree.AddChild(fancy.ToolText(t.Name) + "  " + fancy.TruncateString(t.Description, 72))
	}
	return tree.String()
}
