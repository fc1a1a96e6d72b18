package cryptofolio

import "maps"

// PriceSnapshot holds the USD unit price of each tracked asset, as fetched
// during a single fetch cycle.
//
// The zero value is an empty snapshot where every price is unknown.
type PriceSnapshot struct {
	prices  map[Asset]Money
	missing []Asset
}

// NewPriceSnapshot builds the snapshot of assets from quotes. Assets without a
// known quote are priced at 0 and reported by Missing.
func NewPriceSnapshot(assets []Asset, quotes map[Asset]Money) PriceSnapshot {
	s := PriceSnapshot{prices: make(map[Asset]Money, len(assets))}
	for _, a := range assets {
		q, ok := quotes[a]
		if !ok || !q.IsKnown() {
			s.prices[a] = M(0, "USD")
			s.missing = append(s.missing, a)
			continue
		}
		s.prices[a] = q
	}
	return s
}

// Price returns the USD price of a, unknown if a is not part of the snapshot.
func (s PriceSnapshot) Price(a Asset) Money {
	p, ok := s.prices[a]
	if !ok {
		return UnknownMoney("USD")
	}
	return p
}

// IsEmpty reports whether the snapshot holds no price at all.
func (s PriceSnapshot) IsEmpty() bool { return len(s.prices) == 0 }

// Missing returns the assets that were absent from the price response.
func (s PriceSnapshot) Missing() []Asset { return append([]Asset(nil), s.missing...) }

// IsMissing reports whether a was absent from the price response.
func (s PriceSnapshot) IsMissing(a Asset) bool {
	for _, m := range s.missing {
		if m == a {
			return true
		}
	}
	return false
}

// Prices returns a copy of all the prices.
func (s PriceSnapshot) Prices() map[Asset]Money { return maps.Clone(s.prices) }

func (s PriceSnapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	for _, a := range Assets() {
		if p, ok := s.prices[a]; ok {
			w.Append(string(a), p)
		}
	}
	return w.MarshalJSON()
}
