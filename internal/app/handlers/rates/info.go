package rates

import (
	"context"

	"balilove/internal/app/dto"
	"balilove/internal/app/policies"
	"balilove/internal/app/queries"
)

const (
	rateInfoKey   = "rates.info"
	ratesTableKey = "rates.table"
)

// RateInfoQuery reports the age and source of the cached rate table.
type RateInfoQuery struct{}

func (RateInfoQuery) Key() string { return rateInfoKey }

type RateInfoHandler struct {
	Currency policies.CurrencyPort
}

func (h *RateInfoHandler) Handle(ctx context.Context, _ RateInfoQuery) (dto.RateInfo, error) {
	info, err := h.Currency.RateInfo(ctx)
	if err != nil {
		return dto.RateInfo{}, err
	}
	return dto.MapRateInfo(info), nil
}

// RatesTableQuery returns the rate table currently in use.
type RatesTableQuery struct{}

func (RatesTableQuery) Key() string { return ratesTableKey }

type RatesTableHandler struct {
	Currency policies.CurrencyPort
}

func (h *RatesTableHandler) Handle(ctx context.Context, _ RatesTableQuery) (dto.RatesTable, error) {
	table, err := h.Currency.Rates(ctx)
	if err != nil {
		return dto.RatesTable{}, err
	}
	return dto.MapRatesTable(table), nil
}

var (
	_ queries.Handler[RateInfoQuery, dto.RateInfo]     = (*RateInfoHandler)(nil)
	_ queries.Handler[RatesTableQuery, dto.RatesTable] = (*RatesTableHandler)(nil)
)
