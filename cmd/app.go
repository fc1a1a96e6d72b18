// Package cmd implements the cft command line application.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/cryptofolio"
	"github.com/etnz/cryptofolio/coingecko"
	"github.com/etnz/cryptofolio/exchangerate"
	"github.com/etnz/cryptofolio/logger"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// Commands are the cft subcommands, in help order.
var Commands = []subcommands.Command{
	&showCmd{},
	&watchCmd{},
	&milestonesCmd{},
	&pricesCmd{},
	&serveCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var pricesURL = flag.String("prices-url", coingecko.DefaultBaseURL, "Base URL of the CoinGecko compatible price API")
var ratesURL = flag.String("rates-url", exchangerate.DefaultBaseURL, "Base URL of the exchangerate-api.com compatible rate API")
var timeout = flag.Duration("timeout", cryptofolio.DefaultTimeout, "Timeout of each remote call, 0 to disable")
var debug = flag.Bool("debug", false, "Log diagnostics to stderr")
var plain = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal")

var log *zap.SugaredLogger

// Logger returns the application logger, built from the -debug flag on first use.
func Logger() *zap.SugaredLogger {
	if log == nil {
		log = logger.New(*debug)
	}
	return log
}

// NewTracker returns a Tracker on p using the APIs configured by the global
// flags.
func NewTracker(p *cryptofolio.Portfolio, opts ...cryptofolio.Option) *cryptofolio.Tracker {
	client := cryptofolio.NewHTTPClient(Logger())
	prices := &coingecko.Client{BaseURL: *pricesURL, HTTPClient: client}
	rates := &exchangerate.Client{BaseURL: *ratesURL, HTTPClient: client}
	opts = append([]cryptofolio.Option{
		cryptofolio.WithTimeout(*timeout),
		cryptofolio.WithLogger(Logger()),
	}, opts...)
	return cryptofolio.NewTracker(p, prices, rates, opts...)
}

// printMarkdown prints md to stdout, rendered for the terminal unless -plain is set.
func printMarkdown(md string) {
	if *plain {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// failed reports whether s is an Error state, printing the reason to stderr.
func failed(s cryptofolio.FetchState) bool {
	if s.Status() != cryptofolio.Failed {
		return false
	}
	fmt.Fprintln(os.Stderr, strings.TrimSpace(s.Message()))
	return true
}
