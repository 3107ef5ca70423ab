package money

import (
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

type displayFormat struct {
	prefix    string
	suffix    string
	thousands string
	point     string
	digits    int32
}

// id-ID, en-US, de-DE, en-GB and en-AU conventions respectively.
var displayFormats = map[Currency]displayFormat{
	IDR: {prefix: "Rp ", thousands: ".", point: ",", digits: 0},
	USD: {prefix: "$", thousands: ",", point: ".", digits: 2},
	EUR: {suffix: " €", thousands: ".", point: ",", digits: 2},
	GBP: {prefix: "£", thousands: ",", point: ".", digits: 2},
	AUD: {prefix: "A$", thousands: ",", point: ".", digits: 2},
}

// FormatCurrency renders amount using the display convention of code.
// Unknown codes fall back to "<grouped amount> <code>".
func FormatCurrency(amount decimal.Decimal, code string) string {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	f, ok := displayFormats[c]
	if !ok {
		return Group(amount) + " " + strings.TrimSpace(code)
	}
	rounded := amount.Round(f.digits)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + f.prefix + group(rounded.StringFixed(f.digits), f.thousands, f.point) + f.suffix
}

// Group renders amount with comma thousands separators and no forced fraction digits.
func Group(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + group(amount.Neg().String(), ",", ".")
	}
	return group(amount.String(), ",", ".")
}

// Label renders a base-currency amount for calculation strings, e.g. "IDR 100,000".
func Label(amount decimal.Decimal) string {
	return string(Base) + " " + Group(amount)
}

// group inserts separators into a non-negative plain decimal string.
func group(plain, thousands, point string) string {
	whole, frac, _ := strings.Cut(plain, ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return plain
	}
	out := humanize.BigComma(n)
	if thousands != "," {
		out = strings.ReplaceAll(out, ",", thousands)
	}
	if frac != "" {
		out += point + frac
	}
	return out
}
