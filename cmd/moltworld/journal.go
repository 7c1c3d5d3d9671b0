package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/malicorX/moltworld/internal/fancy"
	"github.com/malicorX/moltworld/internal/journal"
	"github.com/malicorX/moltworld/internal/resolver"
	"github.com/urfave/cli/v3"
)

var journalCmd = &cli.Command{
	Name:  "journal",
	Usage: "List recent tool invocations from the journal",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"n"},
			Usage:   "Number of invocations to show",
			Value:   20,
		},
	},
	Action: journalAction,
}

func journalAction(ctx context.Context, cmd *cli.Command) error {
	settings, _, err := prepare(cmd)
	if err != nil {
		return err
	}
	if settings.Journal.Path == "" {
		return cli.Exit("the journal is disabled; set journal.path in the settings file", 1)
	}

	j, err := journal.Open(resolver.ExpandHome(settings.Journal.Path))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer func() { _ = j.Close() }()

	entries, err := j.Recent(ctx, int(cmd.Int("limit")))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, renderJournal(entries))
	return err
}

func renderJournal(entries []journal.Entry) string {
	tree := fancy.NewComponentTree(fancy.FormatSection("Invocations", len(entries)))
	failed := 0
	for _, e := range entries {
		status := fancy.ValidText("ok")
		if !e.OK {
			status = fancy.ErrorText("failed")
			failed++
		}
		line := fmt.Sprintf("%s %s %s %s",
			fancy.PathText(e.StartedAt.Local().Format("2006-01-02 15:04:05")),
			fancy.ToolText(e.Tool),
			status,
			e.Duration.Round(time.Millisecond),
		)
		if e.Status != 0 {
			line += " http " + strconv.Itoa(e.Status)
		}
		if e.Error != "" {
			line += " " + fancy.ErrorText(fancy.TruncateString(e.Error, 60))
		}
		tree.AddChild(line)
	}
	if len(entries) > 0 {
		tree.AddChild(fancy.SummaryText("Summary: ") +
			fancy.CountText(strconv.Itoa(len(entries)-failed)) + fancy.SummaryText(" ok, ") +
			fancy.CountText(strconv.Itoa(failed)) + fancy.SummaryText(" failed"))
	}
	return tree.String()
}
