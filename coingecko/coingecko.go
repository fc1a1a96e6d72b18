// Package coingecko fetches USD spot prices from the CoinGecko simple price API.
package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/cryptofolio"
)

// DefaultBaseURL is the public CoinGecko API.
const DefaultBaseURL = "https://api.coingecko.com/api/v3"

// Client queries the /simple/price endpoint.
type Client struct {
	BaseURL    string       // defaults to DefaultBaseURL
	HTTPClient *http.Client // defaults to http.DefaultClient
}

var _ cryptofolio.PriceSource = (*Client)(nil)

// New returns a Client on the public API.
func New() *Client { return &Client{BaseURL: DefaultBaseURL} }

// URL returns the request address for assets.
func (c *Client) URL(assets []cryptofolio.Asset) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.APIID())
	}
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")
	// keep the comma list readable, the API accepts both forms.
	return strings.TrimSuffix(base, "/") + "/simple/price?" + strings.ReplaceAll(q.Encode(), "%2C", ",")
}

// USDPrices returns the USD price of each asset found in the response.
//
// Assets absent from the response, or whose price is not a non-negative
// number, are left out of the result.
func (c *Client) USDPrices(ctx context.Context, assets []cryptofolio.Asset) (map[cryptofolio.Asset]cryptofolio.Money, error) {
	var body any
	if err := cryptofolio.GetJSON(ctx, c.HTTPClient, c.URL(assets), &body); err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}
	return parsePrices(assets, body), nil
}

// parsePrices reads {"<api id>": {"usd": <number>}} entries out of body.
func parsePrices(assets []cryptofolio.Asset, body any) map[cryptofolio.Asset]cryptofolio.Money {
	res := make(map[cryptofolio.Asset]cryptofolio.Money)
	entries, ok := body.(map[string]any)
	if !ok {
		return res
	}
	for _, a := range assets {
		entry, ok := entries[a.APIID()].(map[string]any)
		if !ok {
			continue
		}
		d, ok := cryptofolio.DecimalFrom(entry["usd"])
		if !ok || d.IsNegative() {
			continue
		}
		res[a] = cryptofolio.M(d, "USD")
	}
	return res
}
