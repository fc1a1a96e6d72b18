package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/renderer"
	"github.com/google/subcommands"
)

type milestonesCmd struct {
	offline bool
	asset   string
}

func (*milestonesCmd) Name() string     { return "milestones" }
func (*milestonesCmd) Synopsis() string { return "display the portfolio value at price milestones" }
func (*milestonesCmd) Usage() string {
	return `cft milestones [-offline] [-asset <asset>]

  Displays what each holding would be worth at its price milestones. USD
  values only depend on the holdings; GBP values need the current USD/GBP
  rate and are not available with -offline.
`
}

func (c *milestonesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Do not fetch the exchange rate, GBP values are not available")
	f.StringVar(&c.asset, "asset", "", "Only display the milestones of this asset (bitcoin, BTC, ethereum, ETH, theta, THETA)")
}

func (c *milestonesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p := cryptofolio.Punters()
	if c.asset != "" {
		a, err := cryptofolio.ParseAsset(c.asset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if p, err = onlyAsset(p, a); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	tr := NewTracker(p)
	s := tr.State()
	if !c.offline {
		// a failed fetch still leaves the USD values worth displaying
		s = tr.Refresh(ctx)
		if s.Status() == cryptofolio.Failed {
			fmt.Fprintln(os.Stderr, s.Message())
		}
	}
	printMarkdown(renderer.RenderMilestones(p.Valuate(s)))
	return subcommands.ExitSuccess
}

// onlyAsset returns a portfolio restricted to the holding and milestones of a.
func onlyAsset(p *cryptofolio.Portfolio, a cryptofolio.Asset) (*cryptofolio.Portfolio, error) {
	q := p.Quantity(a)
	return cryptofolio.NewPortfolio(p.Name(), p.Initial(), []cryptofolio.Holding{{Asset: a, Quantity: q}}, p.MilestonesOf(a))
}
