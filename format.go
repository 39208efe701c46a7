package peers

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used to format monetary fields when none is configured.
const DefaultCurrency = "USD"

// currency returns a never nil currency for code.
func currency(code string) *money.Currency {
	if c := money.GetCurrency(code); c != nil {
		return c
	}
	return money.GetCurrency(DefaultCurrency)
}

// FormatMoney formats v as a whole amount of the given currency, such as
// "$666,667".
func FormatMoney(v Value, code string) string {
	if v.IsAbsent() {
		return "-"
	}
	c := currency(code)
	f := money.NewFormatter(0, c.Decimal, c.Thousand, c.Grapheme, c.Template)
	return f.Format(v.Decimal().Round(0).IntPart())
}

// FormatValue formats v for display: monetary fields as whole amounts of
// money, other fields as plain numbers with at most two decimals.
func FormatValue(f Field, v Value, code string) string {
	if v.IsAbsent() {
		return "-"
	}
	if f.Monetary() {
		return FormatMoney(v, code)
	}
	d := v.Decimal()
	if d.Equal(d.Truncate(0)) {
		return d.StringFixed(0)
	}
	return d.Round(2).String()
}

var magnitudes = []struct {
	shift  int32
	suffix string
}{{12, "T"}, {9, "B"}, {6, "M"}, {3, "K"}}

// Compact formats a number with a magnitude suffix, such as "20M" or "1.5B".
// It is meant for axis ticks, where space is short.
func Compact(x float64) string {
	d := decimal.NewFromFloat(x)
	for _, m := range magnitudes {
		if d.Abs().GreaterThanOrEqual(decimal.New(1, m.shift)) {
			return fmt.Sprintf("%s%s", d.Shift(-m.shift).Round(1).String(), m.suffix)
		}
	}
	return d.Round(1).String()
}
