package cryptofolio

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
//
// The zero value is a known zero amount without currency. An unknown amount,
// one that could not be computed because an input is missing, is created with
// UnknownMoney and propagates through every arithmetic operation.
type Money struct {
	value   decimal.Decimal // as major unit value
	cur     string
	unknown bool
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// UnknownMoney returns an amount in currency whose value is not known.
func UnknownMoney(currency string) Money {
	return Money{cur: currency, unknown: true}
}

// String returns the string representation of the money value, rounded to the
// currency fraction. Unknown values are rendered as the Placeholder.
func (m Money) String() string {
	if m.unknown {
		return Placeholder
	}
	return formatDecimal(m.value, m.cur)
}

// SignedString returns the string representation of the money value with a
// '+' sign for strictly positive values.
func (m Money) SignedString() string {
	if !m.unknown && m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string         { return m.cur }
func (m Money) IsKnown() bool            { return !m.unknown }
func (m Money) Decimal() decimal.Decimal { return m.value }
func (m Money) IsZero() bool             { return !m.unknown && m.value.IsZero() }
func (m Money) IsPositive() bool         { return !m.unknown && m.value.IsPositive() }
func (m Money) IsNegative() bool         { return !m.unknown && m.value.IsNegative() }
func (m Money) LessThan(n Money) bool    { return m.value.LessThan(n.value) }
func (m Money) Neg() Money               { return Money{value: m.value.Neg(), cur: m.cur, unknown: m.unknown} }
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(q.value), cur: m.cur, unknown: m.unknown}
}

// Equal reports whether m and n are the same known amount in the same
// currency, or are both unknown in the same currency.
func (m Money) Equal(n Money) bool {
	if m.unknown || n.unknown {
		return m.unknown == n.unknown && m.cur == n.cur
	}
	return m.value.Equal(n.value) && m.cur == n.cur
}

// binary operators.
func (m Money) Add(n Money) Money {
	return Money{value: m.value.Add(n.value), cur: cur(m, n), unknown: m.unknown || n.unknown}
}
func (m Money) Sub(n Money) Money {
	return Money{value: m.value.Sub(n.value), cur: cur(m, n), unknown: m.unknown || n.unknown}
}

// Convert returns m converted into currency using rate. The result is unknown
// if either m or rate is unknown.
func (m Money) Convert(rate Rate, currency string) Money {
	if m.unknown || !rate.known {
		return UnknownMoney(currency)
	}
	return Money{value: m.value.Mul(rate.value), cur: currency}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// MarshalJSON writes the exact amount, a null amount when unknown, and the
// formatted display string.
func (m Money) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("currency", m.cur)
	if m.unknown {
		w.Append("amount", nil)
	} else {
		w.Append("amount", m.value)
	}
	w.Append("display", m.String())
	return w.MarshalJSON()
}
