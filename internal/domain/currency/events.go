package currency

import "time"

// RatesRefreshedEvent is emitted after an explicit refresh.
type RatesRefreshedEvent struct {
	Source     string            `json:"source"`
	Rates      map[string]string `json:"rates"`
	IsFallback bool              `json:"is_fallback"`
	At         time.Time         `json:"at"`
}

func (e RatesRefreshedEvent) EventName() string     { return "rates.refreshed" }
func (e RatesRefreshedEvent) AggregateID() string   { return e.Source }
func (e RatesRefreshedEvent) OccurredAt() time.Time { return e.At }

func NewRatesRefreshedEvent(table ExchangeRateTable, at time.Time) RatesRefreshedEvent {
	rates := make(map[string]string, len(table.Rates))
	for c, rate := range table.Rates {
		rates[string(c)] = rate.String()
	}
	return RatesRefreshedEvent{
		Source:     table.Source,
		Rates:      rates,
		IsFallback: table.IsFallback(),
		At:         at,
	}
}
