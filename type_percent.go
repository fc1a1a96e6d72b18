package cryptofolio

import (
	"fmt"
	"math"
)

// Percent is a percentage. NaN means the percentage is not known.
type Percent float64

// UnknownPercent is the Percent used when an input is missing.
var UnknownPercent = Percent(math.NaN())

func (p Percent) IsKnown() bool {
	return !math.IsNaN(float64(p)) && !math.IsInf(float64(p), 0)
}

func (p Percent) Equal(q Percent) bool {
	if !p.IsKnown() || !q.IsKnown() {
		return p.IsKnown() == q.IsKnown()
	}
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if !p.IsKnown() {
		return Placeholder
	}
	return fmt.Sprintf("%.2f%%", p)
}

// SignedString prefixes strictly positive percentages with '+'.
func (p Percent) SignedString() string {
	if p.IsKnown() && p > 0 {
		return "+" + p.String()
	}
	return p.String()
}

// MarshalJSON writes unknown percentages as null.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.IsKnown() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%g", float64(p))), nil
}
