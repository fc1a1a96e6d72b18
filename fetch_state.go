package cryptofolio

import (
	"fmt"
	"time"
)

// Status is the lifecycle stage of a FetchState.
type Status int

const (
	Loading Status = iota
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// GenericErrorMessage is the only failure message shown to end users.
const GenericErrorMessage = "Failed to fetch data. Please try again later."

// FetchState is the outcome of the latest fetch cycle: Loading, Ready with a
// consistent pair of prices and exchange rate, or Failed.
//
// Prices and Rate are only known in the Ready state.
type FetchState struct {
	status        Status
	prices        PriceSnapshot
	rate          Rate
	rateDefaulted bool
	fetchedAt     time.Time
	cause         error
}

// LoadingState returns the state of a fetch cycle in progress.
func LoadingState() FetchState { return FetchState{status: Loading} }

// ReadyState returns the state of a successful fetch cycle. rateDefaulted
// records that rate is the fallback rate rather than a quote.
func ReadyState(prices PriceSnapshot, rate Rate, rateDefaulted bool, fetchedAt time.Time) FetchState {
	return FetchState{
		status:        Ready,
		prices:        prices,
		rate:          rate,
		rateDefaulted: rateDefaulted,
		fetchedAt:     fetchedAt,
	}
}

// ErrorState returns the state of a failed fetch cycle.
func ErrorState(cause error) FetchState { return FetchState{status: Failed, cause: cause} }

func (s FetchState) Status() Status { return s.status }

// Prices returns the price snapshot, empty unless the state is Ready.
func (s FetchState) Prices() PriceSnapshot {
	if s.status != Ready {
		return PriceSnapshot{}
	}
	return s.prices
}

// Rate returns the USD to GBP rate, unknown unless the state is Ready.
func (s FetchState) Rate() Rate {
	if s.status != Ready {
		return UnknownRate
	}
	return s.rate
}

// RateDefaulted reports whether the rate is the fallback rate.
func (s FetchState) RateDefaulted() bool { return s.status == Ready && s.rateDefaulted }

// FetchedAt returns when the Ready state was reached.
func (s FetchState) FetchedAt() time.Time { return s.fetchedAt }

// Message returns the user facing message of a Failed state, "" otherwise.
func (s FetchState) Message() string {
	if s.status != Failed {
		return ""
	}
	return GenericErrorMessage
}

// Cause returns the underlying failure of a Failed state. It is meant for
// diagnostics and must not be shown to end users.
func (s FetchState) Cause() error { return s.cause }

// MarshalJSON never includes the cause.
func (s FetchState) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("status", s.status)
	switch s.status {
	case Ready:
		w.Append("fetched_at", s.fetchedAt)
		w.Append("prices", s.prices)
		w.Append("usd_gbp", s.rate)
		w.Append("rate_defaulted", s.rateDefaulted)
		w.Optional("missing", s.prices.missing)
	case Failed:
		w.Append("message", s.Message())
	}
	return w.MarshalJSON()
}
