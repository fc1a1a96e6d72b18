// Package exchangerate fetches currency conversion rates from the
// exchangerate-api.com v4 "latest" endpoint.
package exchangerate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptofolio"
)

// DefaultBaseURL is the public exchangerate-api.com v4 API.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4"

// Client queries /latest/{base}.
type Client struct {
	BaseURL    string       // defaults to DefaultBaseURL
	HTTPClient *http.Client // defaults to http.DefaultClient
}

var _ cryptofolio.RateSource = (*Client)(nil)

// New returns a Client on the public API.
func New() *Client { return &Client{BaseURL: DefaultBaseURL} }

// URL returns the request address for the rates of base currency from.
func (c *Client) URL(from string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/") + "/latest/" + strings.ToUpper(from)
}

// Rate returns how many units of currency to are worth one unit of currency from.
//
// A response without a numeric quote for to is not an error: the returned
// rate is unknown and it is up to the caller to pick a default.
func (c *Client) Rate(ctx context.Context, from, to string) (cryptofolio.Rate, error) {
	if !isCode(from) || !isCode(to) {
		return cryptofolio.UnknownRate, fmt.Errorf("exchangerate: invalid currency pair %q/%q", from, to)
	}
	var body any
	if err := cryptofolio.GetJSON(ctx, c.HTTPClient, c.URL(from), &body); err != nil {
		return cryptofolio.UnknownRate, fmt.Errorf("exchangerate: %w", err)
	}
	return parseRate(body, strings.ToUpper(to)), nil
}

func parseRate(body any, to string) cryptofolio.Rate {
	v, err := jsonpath.Get("$.rates."+to, body)
	if err != nil {
		return cryptofolio.UnknownRate
	}
	d, ok := cryptofolio.DecimalFrom(v)
	if !ok {
		return cryptofolio.UnknownRate
	}
	return cryptofolio.R(d)
}

// isCode reports whether s looks like an ISO 4217 code.
func isCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
