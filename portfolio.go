package cryptofolio

import (
	"errors"
	"fmt"
	"slices"
)

// Holding is the quantity owned of an asset.
type Holding struct {
	Asset    Asset
	Quantity Quantity
}

// Milestone is a hypothetical unit price for an asset, in USD.
type Milestone struct {
	Asset Asset
	Price Money
}

// Portfolio is the fixed configuration being tracked: what is held, what was
// initially invested and the milestones worth displaying.
//
// A Portfolio is immutable.
type Portfolio struct {
	name       string
	initial    Money
	holdings   []Holding
	milestones []Milestone
}

// NewPortfolio validates and returns a new Portfolio.
//
// The initial investment must be a non-negative GBP amount, quantities must be
// non-negative, milestones must be USD prices of held assets, and an asset can
// only be held once.
func NewPortfolio(name string, initial Money, holdings []Holding, milestones []Milestone) (*Portfolio, error) {
	var errs error
	if !initial.IsKnown() || initial.Currency() != "GBP" || initial.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("initial investment must be a non-negative GBP amount, got %v %s", initial, initial.Currency()))
	}
	held := make(map[Asset]bool)
	for _, h := range holdings {
		if !h.Asset.IsValid() {
			errs = errors.Join(errs, fmt.Errorf("unknown asset %q", h.Asset))
		}
		if held[h.Asset] {
			errs = errors.Join(errs, fmt.Errorf("asset %q is held twice", h.Asset))
		}
		if h.Quantity.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("quantity of %q must be non-negative, got %v", h.Asset, h.Quantity))
		}
		held[h.Asset] = true
	}
	for _, m := range milestones {
		if !held[m.Asset] {
			errs = errors.Join(errs, fmt.Errorf("milestone on %q which is not held", m.Asset))
		}
		if !m.Price.IsKnown() || m.Price.Currency() != "USD" || m.Price.IsNegative() {
			errs = errors.Join(errs, fmt.Errorf("milestone on %q must be a non-negative USD price, got %v", m.Asset, m.Price))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return &Portfolio{
		name:       name,
		initial:    initial,
		holdings:   slices.Clone(holdings),
		milestones: slices.Clone(milestones),
	}, nil
}

// Punters returns the Punters Group portfolio.
func Punters() *Portfolio {
	p, err := NewPortfolio("Punters Group Crypto", M(2760, "GBP"),
		[]Holding{
			{Bitcoin, Q(0.03112216)},
			{Ethereum, Q(0.455434)},
			{Theta, Q(167.03130317)},
		},
		[]Milestone{
			{Bitcoin, M(500000, "USD")},
			{Bitcoin, M(1000000, "USD")},
			{Ethereum, M(5000, "USD")},
			{Ethereum, M(10000, "USD")},
			{Theta, M(20, "USD")},
			{Theta, M(100, "USD")},
		},
	)
	if err != nil {
		panic(err)
	}
	return p
}

// Name returns the display name of the portfolio.
func (p *Portfolio) Name() string { return p.name }

// Initial returns the initial investment, in GBP.
func (p *Portfolio) Initial() Money { return p.initial }

// Holdings returns a copy of the holdings, in configuration order.
func (p *Portfolio) Holdings() []Holding { return slices.Clone(p.holdings) }

// Milestones returns a copy of all the milestones, in configuration order.
func (p *Portfolio) Milestones() []Milestone { return slices.Clone(p.milestones) }

// MilestonesOf returns the milestones set on asset a.
func (p *Portfolio) MilestonesOf(a Asset) []Milestone {
	var res []Milestone
	for _, m := range p.milestones {
		if m.Asset == a {
			res = append(res, m)
		}
	}
	return res
}

// Assets returns the held assets, in configuration order.
func (p *Portfolio) Assets() []Asset {
	res := make([]Asset, 0, len(p.holdings))
	for _, h := range p.holdings {
		res = append(res, h.Asset)
	}
	return res
}

// Quantity returns the quantity held of a, zero if a is not held.
func (p *Portfolio) Quantity(a Asset) Quantity {
	for _, h := range p.holdings {
		if h.Asset == a {
			return h.Quantity
		}
	}
	return Q(0)
}
