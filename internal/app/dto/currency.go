package dto

import (
	"time"

	domaincurrency "balilove/internal/domain/currency"
)

type Conversion struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	IDR       float64 `json:"idr"`
	Formatted string  `json:"formatted"`
}

type ConversionSet struct {
	IDR         float64      `json:"idr"`
	Conversions []Conversion `json:"conversions"`
}

type RateInfo struct {
	LastUpdated time.Time `json:"last_updated"`
	Source      string    `json:"source"`
	Age         string    `json:"age"`
	IsStale     bool      `json:"is_stale"`
}

type RatesTable struct {
	Source      string             `json:"source"`
	LastUpdated time.Time          `json:"last_updated"`
	Rates       map[string]float64 `json:"rates"`
}

func MapConversions(results []domaincurrency.ConversionResult) []Conversion {
	out := make([]Conversion, 0, len(results))
	for _, r := range results {
		out = append(out, Conversion{
			Amount:    r.Amount.InexactFloat64(),
			Currency:  string(r.Currency),
			IDR:       r.IDR.InexactFloat64(),
			Formatted: r.Formatted,
		})
	}
	return out
}

func MapRateInfo(info domaincurrency.RateInfo) RateInfo {
	return RateInfo{
		LastUpdated: info.LastUpdated,
		Source:      info.Source,
		Age:         info.Age,
		IsStale:     info.IsStale,
	}
}

func MapRatesTable(table domaincurrency.ExchangeRateTable) RatesTable {
	rates := make(map[string]float64, len(table.Rates))
	for c, r := range table.Rates {
		rates[string(c)] = r.InexactFloat64()
	}
	return RatesTable{
		Source:      table.Source,
		LastUpdated: table.LastUpdated,
		Rates:       rates,
	}
}
