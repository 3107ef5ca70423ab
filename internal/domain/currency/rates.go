package currency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"balilove/internal/domain/shared/money"
)

var (
	// ErrRateUnavailable is returned when a table lacks a usable rate for a currency.
	ErrRateUnavailable = errors.New("currency: exchange rate unavailable")
	// ErrUnsupportedCurrency is returned for codes outside the supported set.
	ErrUnsupportedCurrency = errors.New("currency: unsupported currency")
	// ErrInvalidAmount is returned for NaN or infinite amounts.
	ErrInvalidAmount = errors.New("currency: amount must be finite")
	// ErrMalformedRates is returned by providers for payloads without usable rates.
	ErrMalformedRates = errors.New("currency: malformed rates payload")
)

const (
	// DefaultTTL is how long a fetched table stays fresh.
	DefaultTTL = 4 * time.Hour

	SourceFallback = "fallback"
	SourceNone     = "none"
)

// ExchangeRateTable maps a currency to the IDR needed for one unit of it.
type ExchangeRateTable struct {
	Rates       map[money.Currency]decimal.Decimal
	LastUpdated time.Time
	Source      string
}

// Rate returns the IDR-per-unit rate for c.
func (t ExchangeRateTable) Rate(c money.Currency) (decimal.Decimal, error) {
	if c == money.Base {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := t.Rates[c]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateUnavailable, c)
	}
	return rate, nil
}

// Clone returns a copy whose map can be handed to callers.
func (t ExchangeRateTable) Clone() ExchangeRateTable {
	rates := make(map[money.Currency]decimal.Decimal, len(t.Rates))
	for k, v := range t.Rates {
		rates[k] = v
	}
	t.Rates = rates
	return t
}

// IsFallback reports whether the table came from the static constants.
func (t ExchangeRateTable) IsFallback() bool {
	return t.Source == SourceFallback
}

var fallbackRates = map[money.Currency]int64{
	money.IDR: 1,
	money.USD: 15_800,
	money.EUR: 17_200,
	money.GBP: 20_100,
	money.AUD: 10_400,
}

// FallbackTable is the approximate table served when the provider fails.
func FallbackTable(now time.Time) ExchangeRateTable {
	rates := make(map[money.Currency]decimal.Decimal, len(fallbackRates))
	for c, v := range fallbackRates {
		rates[c] = decimal.NewFromInt(v)
	}
	return ExchangeRateTable{
		Rates:       rates,
		LastUpdated: now,
		Source:      SourceFallback,
	}
}

// RateProvider fetches a live table quoted against IDR.
type RateProvider interface {
	Fetch(ctx context.Context) (ExchangeRateTable, error)
}

// RateProviderFunc adapts a function to RateProvider.
type RateProviderFunc func(ctx context.Context) (ExchangeRateTable, error)

func (f RateProviderFunc) Fetch(ctx context.Context) (ExchangeRateTable, error) {
	return f(ctx)
}
