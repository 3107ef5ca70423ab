package policies

import (
	"context"

	"github.com/shopspring/decimal"

	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

// CurrencyPort is the slice of the rate converter application handlers need.
type CurrencyPort interface {
	Rates(ctx context.Context) (domaincurrency.ExchangeRateTable, error)
	ConvertMany(ctx context.Context, amount decimal.Decimal, targets []money.Currency) ([]domaincurrency.ConversionResult, error)
	RateInfo(ctx context.Context) (domaincurrency.RateInfo, error)
	ForceRefresh(ctx context.Context) (domaincurrency.ExchangeRateTable, error)
}
