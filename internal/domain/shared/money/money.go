package money

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCurrency     = errors.New("money: invalid currency code")
	ErrUnsupportedCurrency = errors.New("money: unsupported currency")
)

// Currency is an ISO 4217 code.
type Currency string

const (
	IDR Currency = "IDR"
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	AUD Currency = "AUD"
)

// Base is the currency every price is computed in.
const Base = IDR

var supported = []Currency{IDR, USD, EUR, GBP, AUD}

// Supported returns the display currencies in their canonical order.
func Supported() []Currency {
	return append([]Currency(nil), supported...)
}

// IsSupported reports whether c belongs to the supported display set.
func (c Currency) IsSupported() bool {
	for _, s := range supported {
		if s == c {
			return true
		}
	}
	return false
}

func (c Currency) String() string { return string(c) }

// ParseCurrency normalizes raw and checks it against the supported set.
func ParseCurrency(raw string) (Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", ErrInvalidCurrency
	}
	c := Currency(code)
	if !c.IsSupported() {
		return "", ErrUnsupportedCurrency
	}
	return c, nil
}

// ParseCurrencies parses a list of codes, keeping input order and dropping blanks.
func ParseCurrencies(raw []string) ([]Currency, error) {
	out := make([]Currency, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		c, err := ParseCurrency(r)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
