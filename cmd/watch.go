package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

const retryHint = "Press Enter to refresh, q to quit."

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "display the dashboard and refresh it on demand" }
func (*watchCmd) Usage() string {
	return `cft watch

  Displays the dashboard, then waits for input: Enter refreshes the data,
  'q' quits.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tr := NewTracker(cryptofolio.Punters())
	err := watchLoop(ctx, tr, os.Stdin, func(v *cryptofolio.Valuation) {
		printMarkdown(renderer.RenderDashboard(v, renderer.RenderOptions{RetryHint: retryHint}))
		if v.Status == cryptofolio.Ready {
			fmt.Println(retryHint)
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// watchLoop renders the Loading view, runs a first fetch and renders its
// outcome. Then every line read from in triggers a new cycle, until "q",
// the end of in or ctx is done.
func watchLoop(ctx context.Context, tr *cryptofolio.Tracker, in io.Reader, render func(*cryptofolio.Valuation)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- scanner.Err()
	}()

	refresh := func() {
		done := tr.RefreshAsync(ctx)
		render(tr.Portfolio().Valuate(cryptofolio.LoadingState()))
		s := <-done
		render(tr.Portfolio().Valuate(s))
	}

	refresh()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-errc
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "q", "quit", "exit":
				return nil
			default:
				refresh()
			}
		}
	}
}
