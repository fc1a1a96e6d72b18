package cryptofolio

import "context"

// PriceSource provides current unit prices in USD.
type PriceSource interface {
	// USDPrices returns the prices of the requested assets. Assets absent from
	// the source's response are absent from the map.
	USDPrices(ctx context.Context, assets []Asset) (map[Asset]Money, error)
}

// RateSource provides currency exchange rates.
type RateSource interface {
	// Rate returns the multiplier converting an amount in currency from into
	// currency to. It returns UnknownRate when the source has no such quote.
	Rate(ctx context.Context, from, to string) (Rate, error)
}
