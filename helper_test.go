package cryptofolio

import (
	"context"
	"errors"
	"sync"
)

var errNotFound = errors.New("404 Not Found")

// GBP is a helper for test to create pound money from const
func GBP(v float64) Money { return M(v, "GBP") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// fakePrices is a PriceSource answering with fixed quotes or a fixed error.
// If gate is not nil, calls block until it is closed.
type fakePrices struct {
	quotes map[Asset]Money
	err    error
	gate   chan struct{}

	mu    sync.Mutex
	calls int
}

func (f *fakePrices) USDPrices(ctx context.Context, assets []Asset) (map[Asset]Money, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	res := make(map[Asset]Money)
	for _, a := range assets {
		if q, ok := f.quotes[a]; ok {
			res[a] = q
		}
	}
	return res, nil
}

// fakeRates is a RateSource answering with a fixed rate or a fixed error.
type fakeRates struct {
	rate Rate
	err  error
	gate chan struct{}
}

func (f *fakeRates) Rate(ctx context.Context, from, to string) (Rate, error) {
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return UnknownRate, ctx.Err()
		}
	}
	if f.err != nil {
		return UnknownRate, f.err
	}
	return f.rate, nil
}

// referenceQuotes are the quotes of the worked example.
func referenceQuotes() map[Asset]Money {
	return map[Asset]Money{
		Bitcoin:  USD(50000),
		Ethereum: USD(3000),
		Theta:    USD(5),
	}
}
