package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptofolio"
	"github.com/google/subcommands"
)

type pricesCmd struct{}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "fetch live prices and print them as JSON" }
func (*pricesCmd) Usage() string {
	return `cft prices

  Fetches the current prices and the USD/GBP rate once, then prints the
  resulting state as JSON, defaults applied.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {}

func (c *pricesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := NewTracker(cryptofolio.Punters()).Refresh(ctx)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding prices: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(data))
	if s.Status() == cryptofolio.Failed {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
