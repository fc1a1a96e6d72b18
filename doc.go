// Package cryptofolio values a fixed crypto portfolio from live market data.
//
// A Portfolio holds quantities of bitcoin, ethereum and theta, the GBP amount
// initially invested and a set of price milestones. A Tracker fetches, at the
// same time, the USD price of each asset from a PriceSource and the USD/GBP
// rate from a RateSource, and stores the outcome in a FetchState: Loading,
// Ready with both values, or Error with a generic message.
//
// Valuations are derived from a FetchState and never stored:
//   - the value of a holding is its quantity times its USD price;
//   - the total value is the sum of the holdings values, converted to GBP;
//   - the profit or loss compares the total to the initial investment;
//   - a milestone value is the quantity times the milestone price.
//
// Amounts use exact decimal arithmetic and are only rounded for display.
// Values that cannot be computed yet are unknown, and render as Placeholder.
//
// This package serves as the foundational logic for the `cft` command-line
// tool and its HTTP view.
package cryptofolio
