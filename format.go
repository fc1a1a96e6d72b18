package cryptofolio

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Placeholder is rendered in place of an amount that cannot be displayed.
const Placeholder = "N/A"

// Format renders amount as a currency string with exactly two fraction
// digits, using go-money's symbol and placement for currencyCode
// (e.g. "$1,234.50", "£1,234.50", "-£12.00").
//
// Non-finite amounts render as the Placeholder.
func Format(amount float64, currencyCode string) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Placeholder
	}
	return formatDecimal(decimal.NewFromFloat(amount), currencyCode)
}

// formatDecimal rounds v to the currency fraction and formats it.
// Currencies unknown to go-money are rendered as "1234.50 XXX".
func formatDecimal(v decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return v.StringFixed(2)
		}
		return v.StringFixed(2) + " " + code
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0)
	if minor.Abs().GreaterThan(maxMinor) {
		return formatBig(minor, cur.Formatter())
	}
	return cur.Formatter().Format(minor.IntPart())
}

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// formatBig applies f to an amount of minor units that does not fit in an
// int64, the same way f.Format does.
func formatBig(minor decimal.Decimal, f *money.Formatter) string {
	sa := minor.Abs().String()
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}
