package currency

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"balilove/internal/domain/shared/money"
)

// ConversionResult is one display amount derived from an IDR amount.
type ConversionResult struct {
	Amount    decimal.Decimal
	Currency  money.Currency
	IDR       decimal.Decimal
	Formatted string
}

// Convert divides an IDR amount by the table's rate for target.
// The IDR amount is returned untouched in the result.
func Convert(table ExchangeRateTable, amount decimal.Decimal, target money.Currency) (ConversionResult, error) {
	if !target.IsSupported() {
		return ConversionResult{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, target)
	}
	if target == money.Base {
		return ConversionResult{
			Amount:    amount,
			Currency:  money.Base,
			IDR:       amount,
			Formatted: money.FormatCurrency(amount, string(money.Base)),
		}, nil
	}
	rate, err := table.Rate(target)
	if err != nil {
		return ConversionResult{}, err
	}
	converted := amount.Div(rate)
	return ConversionResult{
		Amount:    converted,
		Currency:  target,
		IDR:       amount,
		Formatted: money.FormatCurrency(converted, string(target)),
	}, nil
}

// RateInfo describes the cached table for display.
type RateInfo struct {
	LastUpdated time.Time
	Source      string
	Age         string
	IsStale     bool
}

// AgeLabel buckets an age into whole hours.
func AgeLabel(age time.Duration) string {
	hours := int(age / time.Hour)
	switch {
	case hours < 1:
		return "Less than 1 hour ago"
	case hours == 1:
		return "1 hour ago"
	default:
		return fmt.Sprintf("%d hours ago", hours)
	}
}

// DescribeTable derives RateInfo for table at now.
func DescribeTable(table ExchangeRateTable, now time.Time, ttl time.Duration) RateInfo {
	age := now.Sub(table.LastUpdated)
	if age < 0 {
		age = 0
	}
	return RateInfo{
		LastUpdated: table.LastUpdated,
		Source:      table.Source,
		Age:         AgeLabel(age),
		IsStale:     age > ttl,
	}
}

// EmptyRateInfo describes a converter that has not cached a live table yet.
func EmptyRateInfo() RateInfo {
	return RateInfo{Source: SourceNone, Age: "Never", IsStale: true}
}

// AmountFromFloat rejects NaN and infinities before they reach arithmetic.
func AmountFromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, ErrInvalidAmount
	}
	return decimal.NewFromFloat(v), nil
}
