package rates

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"balilove/internal/app/dto"
	"balilove/internal/app/policies"
	"balilove/internal/app/queries"
	"balilove/internal/domain/shared/money"
)

const convertKey = "rates.convert"

var ErrNoCurrencies = errors.New("at least one target currency is required")

// ConvertQuery converts an IDR amount into display currencies.
type ConvertQuery struct {
	Amount     decimal.Decimal
	Currencies []money.Currency
}

func (q ConvertQuery) Key() string { return convertKey }

func (q ConvertQuery) Validate() error {
	if len(q.Currencies) == 0 {
		return ErrNoCurrencies
	}
	for _, c := range q.Currencies {
		if !c.IsSupported() {
			return fmt.Errorf("%w: %s", money.ErrUnsupportedCurrency, c)
		}
	}
	return nil
}

type ConvertHandler struct {
	Currency policies.CurrencyPort
}

func (h *ConvertHandler) Handle(ctx context.Context, q ConvertQuery) (dto.ConversionSet, error) {
	results, err := h.Currency.ConvertMany(ctx, q.Amount, q.Currencies)
	if err != nil {
		return dto.ConversionSet{}, err
	}
	return dto.ConversionSet{
		IDR:         q.Amount.InexactFloat64(),
		Conversions: dto.MapConversions(results),
	}, nil
}

var _ queries.Handler[ConvertQuery, dto.ConversionSet] = (*ConvertHandler)(nil)
