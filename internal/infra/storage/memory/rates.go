package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

// StaticRateProvider serves a fixed rate table for local demos without network access.
type StaticRateProvider struct {
	Rates  map[money.Currency]decimal.Decimal
	Source string
}

// NewStaticRateProvider seeds the provider with the fallback constants.
func NewStaticRateProvider() *StaticRateProvider {
	table := domaincurrency.FallbackTable(time.Time{})
	return &StaticRateProvider{Rates: table.Rates, Source: "static"}
}

func (p *StaticRateProvider) Fetch(ctx context.Context) (domaincurrency.ExchangeRateTable, error) {
	if err := ctx.Err(); err != nil {
		return domaincurrency.ExchangeRateTable{}, err
	}
	table := domaincurrency.ExchangeRateTable{
		Rates:  p.Rates,
		Source: p.Source,
	}
	return table.Clone(), nil
}

var _ domaincurrency.RateProvider = (*StaticRateProvider)(nil)
