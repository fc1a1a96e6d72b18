package cmd

import (
	"context"
	"flag"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "fetch live prices and display the portfolio dashboard" }
func (*showCmd) Usage() string {
	return `cft show

  Fetches the current prices and the USD/GBP rate once, then displays the
  portfolio value, profit/loss, holdings and price milestones.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tr := NewTracker(cryptofolio.Punters())
	s := tr.Refresh(ctx)
	if failed(s) {
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderDashboard(tr.Portfolio().Valuate(s), renderer.RenderOptions{}))
	return subcommands.ExitSuccess
}
