package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/malicorX/moltworld/cmd/moltworld/server"
	"github.com/malicorX/moltworld/internal/client/mcp"
	"github.com/urfave/cli/v3"
)

var callCmd = &cli.Command{
	Name:      "call",
	Usage:     "Invoke one tool and print its result",
	ArgsUsage: "<tool>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "args",
			Aliases: []string{"a"},
			Usage:   "Tool arguments as a JSON object",
			Value:   "{}",
		},
		&cli.StringFlag{
			Name:    "remote",
			Aliases: []string{"r"},
			Usage:   "Call a running moltworld server at this MCP endpoint instead of in-process",
		},
		&cli.IntFlag{
			Name:  "timeout",
			Usage: "Timeout for the call in seconds",
			Value: 60,
		},
	},
	Action: callAction,
}

func callAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return cli.Exit("tool name required", 1)
	}
	name := cmd.Args().Get(0)
	rawArgs := json.RawMessage(cmd.String("args"))

	if t := int(cmd.Int("timeout")); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(t)*time.Second)
		defer cancel()
	}

	if remote := cmd.String("remote"); remote != "" {
		return callRemote(ctx, cmd, remote, name, rawArgs)
	}

	settings, logger, err := prepare(cmd)
	if err != nil {
		return err
	}
	registry, journal, err := server.NewRegistry(settings, logger)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = journal.Close() }()

	env := registry.Call(ctx, name, rawArgs)
	_, err = fmt.Fprintln(cmd.Root().Writer, env.Text())
	return err
}

func callRemote(ctx context.Context, cmd *cli.Command, endpoint, name string, rawArgs json.RawMessage) error {
	var args map[string]any
	if err := json.Unmarshal(rawArgs, &args); err != nil {
		return cli.Exit(fmt.Sprintf("--args must be a JSON object: %v", err), 1)
	}

	client := mcp.NewClient(mcp.Implementation{Name: "moltworld-cli", Version: cmd.Root().Version}, &http.Client{})
	session, err := client.Dial(ctx, endpoint)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = session.Close() }()

	result, err := session.CallTool(ctx, name, args)
	if err != nil {
		return cli.Exit(fmt.Sprintf("call %s: %v", name, err), 1)
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, result.Joined())
	return err
}
