package cryptofolio

import (
	"fmt"
	"strings"
)

// Asset identifies one of the tracked cryptocurrencies.
type Asset string

const (
	Bitcoin  Asset = "bitcoin"
	Ethereum Asset = "ethereum"
	Theta    Asset = "theta"
)

type assetInfo struct {
	name   string // display name
	symbol string // ticker symbol
	apiID  string // identifier used by the price API
}

var assets = map[Asset]assetInfo{
	Bitcoin:  {name: "Bitcoin", symbol: "BTC", apiID: "bitcoin"},
	Ethereum: {name: "Ethereum", symbol: "ETH", apiID: "ethereum"},
	Theta:    {name: "Theta", symbol: "THETA", apiID: "theta-token"},
}

// Assets returns all the tracked assets, in display order.
func Assets() []Asset { return []Asset{Bitcoin, Ethereum, Theta} }

// Name returns the display name of the asset, e.g. "Bitcoin".
func (a Asset) Name() string { return assets[a].name }

// Symbol returns the ticker symbol of the asset, e.g. "BTC".
func (a Asset) Symbol() string { return assets[a].symbol }

// APIID returns the identifier of the asset in the price API, e.g. "theta-token".
func (a Asset) APIID() string { return assets[a].apiID }

func (a Asset) IsValid() bool {
	_, ok := assets[a]
	return ok
}

// ParseAsset resolves s, case-insensitively, as an asset identifier, a ticker
// symbol or a price API identifier.
func ParseAsset(s string) (Asset, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Assets() {
		info := assets[a]
		if s == string(a) || s == strings.ToLower(info.symbol) || s == info.apiID {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown asset %q", s)
}
