package cryptofolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// HoldingValue returns the USD value of the quantity held of a at unit price.
func (p *Portfolio) HoldingValue(a Asset, price Money) Money {
	return price.Mul(p.Quantity(a))
}

// MilestoneValue returns the hypothetical USD value of the quantity held of a
// if its unit price reached milestone.
func (p *Portfolio) MilestoneValue(a Asset, milestone Money) Money {
	return milestone.Mul(p.Quantity(a))
}

// TotalValue returns the GBP value of all holdings at prices, converted at
// rate. It is unknown if any price or the rate is unknown.
func (p *Portfolio) TotalValue(prices PriceSnapshot, rate Rate) Money {
	total := M(0, "USD")
	for _, h := range p.holdings {
		total = total.Add(p.HoldingValue(h.Asset, prices.Price(h.Asset)))
	}
	return total.Convert(rate, "GBP")
}

// ProfitLoss returns total minus the initial investment.
func (p *Portfolio) ProfitLoss(total Money) Money {
	return total.Sub(p.initial)
}

// ProfitLossPercent returns the profit or loss of total relative to the
// initial investment, in percent. It is unknown if total is unknown, and fails
// with ErrDivisionByZero if the initial investment is zero.
func (p *Portfolio) ProfitLossPercent(total Money) (Percent, error) {
	if p.initial.IsZero() {
		return UnknownPercent, ErrDivisionByZero
	}
	pl := p.ProfitLoss(total)
	if !pl.IsKnown() {
		return UnknownPercent, nil
	}
	pct := pl.Decimal().Div(p.initial.Decimal()).Mul(decimal.NewFromInt(100))
	return Percent(pct.InexactFloat64()), nil
}

// HoldingValuation is the valuation of a single holding.
type HoldingValuation struct {
	Asset        Asset    `json:"asset"`
	Name         string   `json:"name"`
	Symbol       string   `json:"symbol"`
	Quantity     Quantity `json:"quantity"`
	Price        Money    `json:"price"`
	Value        Money    `json:"value"`
	ValueGBP     Money    `json:"value_gbp"`
	PriceMissing bool     `json:"price_missing,omitempty"`
}

// MilestoneValuation is the hypothetical valuation of a holding at a milestone price.
type MilestoneValuation struct {
	Asset    Asset  `json:"asset"`
	Symbol   string `json:"symbol"`
	Price    Money  `json:"price"`
	Value    Money  `json:"value"`
	ValueGBP Money  `json:"value_gbp"`
}

// Valuation is everything there is to display about a portfolio in a given
// FetchState.
type Valuation struct {
	Portfolio         string               `json:"portfolio"`
	Status            Status               `json:"status"`
	Message           string               `json:"message,omitempty"`
	FetchedAt         time.Time            `json:"fetched_at,omitzero"`
	Rate              Rate                 `json:"usd_gbp"`
	RateDefaulted     bool                 `json:"rate_defaulted,omitempty"`
	Holdings          []HoldingValuation   `json:"holdings"`
	Milestones        []MilestoneValuation `json:"milestones"`
	Total             Money                `json:"total"`
	Initial           Money                `json:"initial"`
	ProfitLoss        Money                `json:"profit_loss"`
	ProfitLossPercent Percent              `json:"profit_loss_percent"`
}

// Valuate derives the Valuation of p in state s.
//
// Outside of the Ready state every value depending on prices or rate is
// unknown. Milestone USD values only depend on p and are always known.
func (p *Portfolio) Valuate(s FetchState) *Valuation {
	prices, rate := s.Prices(), s.Rate()
	v := &Valuation{
		Portfolio:     p.name,
		Status:        s.Status(),
		Message:       s.Message(),
		FetchedAt:     s.FetchedAt(),
		Rate:          rate,
		RateDefaulted: s.RateDefaulted(),
		Initial:       p.initial,
	}
	for _, h := range p.holdings {
		price := prices.Price(h.Asset)
		value := p.HoldingValue(h.Asset, price)
		v.Holdings = append(v.Holdings, HoldingValuation{
			Asset:        h.Asset,
			Name:         h.Asset.Name(),
			Symbol:       h.Asset.Symbol(),
			Quantity:     h.Quantity,
			Price:        price,
			Value:        value,
			ValueGBP:     value.Convert(rate, "GBP"),
			PriceMissing: prices.IsMissing(h.Asset),
		})
	}
	for _, m := range p.milestones {
		value := p.MilestoneValue(m.Asset, m.Price)
		v.Milestones = append(v.Milestones, MilestoneValuation{
			Asset:    m.Asset,
			Symbol:   m.Asset.Symbol(),
			Price:    m.Price,
			Value:    value,
			ValueGBP: value.Convert(rate, "GBP"),
		})
	}
	v.Total = p.TotalValue(prices, rate)
	v.ProfitLoss = p.ProfitLoss(v.Total)
	// a zero initial investment leaves the percentage unknown
	v.ProfitLossPercent, _ = p.ProfitLossPercent(v.Total)
	return v
}

// MilestonesOf returns the milestone valuations of asset a.
func (v *Valuation) MilestonesOf(a Asset) []MilestoneValuation {
	var res []MilestoneValuation
	for _, m := range v.Milestones {
		if m.Asset == a {
			res = append(res, m)
		}
	}
	return res
}
