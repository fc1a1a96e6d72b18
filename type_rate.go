package cryptofolio

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Rate is an exchange rate multiplier from one currency to another.
//
// The zero value is an unknown rate.
type Rate struct {
	value decimal.Decimal
	known bool
}

// UnknownRate is the rate returned when no quote is available.
var UnknownRate = Rate{}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value), known: true}
}

func (r Rate) IsKnown() bool            { return r.known }
func (r Rate) IsPositive() bool         { return r.known && r.value.IsPositive() }
func (r Rate) Decimal() decimal.Decimal { return r.value }
func (r Rate) Equal(s Rate) bool        { return r.known == s.known && r.value.Equal(s.value) }

// String renders the rate with four decimals.
func (r Rate) String() string {
	if !r.known {
		return Placeholder
	}
	return r.value.StringFixed(4)
}

func (r Rate) MarshalJSON() ([]byte, error) {
	if !r.known {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}
