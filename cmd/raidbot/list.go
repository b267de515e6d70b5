package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/oklahomer/go-sarah-raidbot/raidhelper"
)

var errMissingURL = errors.New("a Raid-Helper URL is required")

// list prints the names of the selected statuses in alphabetical order.
// Unknown statuses are silently ignored.
func list(ctx context.Context, cmd *cli.Command) error {
	event, err := fetchArg(ctx, cmd)
	if err != nil {
		return err
	}

	var wanted []string
	for _, s := range cmd.StringSlice("status") {
		wanted = append(wanted, raidhelper.ParseStatuses(s)...)
	}

	names := raidhelper.FilterNames(raidhelper.Categorize(event.SignUps), wanted)
	return writeLines(cmd.Root().Writer, names)
}

// categories prints every status present in the event.
func categories(ctx context.Context, cmd *cli.Command) error {
	event, err := fetchArg(ctx, cmd)
	if err != nil {
		return err
	}

	return writeLines(cmd.Root().Writer, raidhelper.Categories(raidhelper.Categorize(event.SignUps)))
}

func fetchArg(ctx context.Context, cmd *cli.Command) (*raidhelper.Event, error) {
	initLog(cmd.Bool("debug"))

	rawURL := cmd.Args().First()
	if rawURL == "" {
		return nil, errMissingURL
	}

	settings := newFetchSettings(cmd)
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	return settings.newFetcher().FetchEvent(ctx, rawURL)
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
