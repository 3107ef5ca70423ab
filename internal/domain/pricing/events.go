package pricing

import "time"

// QuoteCalculatedEvent is emitted whenever a package estimate is produced.
type QuoteCalculatedEvent struct {
	QuoteID    string    `json:"quote_id"`
	TemplateID string    `json:"template_id,omitempty"`
	TotalIDR   string    `json:"total_idr"`
	Lines      int       `json:"lines"`
	Adults     int       `json:"adults"`
	Children   int       `json:"children"`
	Nights     int       `json:"nights"`
	At         time.Time `json:"at"`
}

func (e QuoteCalculatedEvent) EventName() string     { return "quote.calculated" }
func (e QuoteCalculatedEvent) AggregateID() string   { return e.QuoteID }
func (e QuoteCalculatedEvent) OccurredAt() time.Time { return e.At }

// NewQuoteCalculatedEvent summarizes quote for publishing.
func NewQuoteCalculatedEvent(quoteID, templateID string, quote PackageQuote, in Inputs, at time.Time) QuoteCalculatedEvent {
	return QuoteCalculatedEvent{
		QuoteID:    quoteID,
		TemplateID: templateID,
		TotalIDR:   quote.TotalPrice.String(),
		Lines:      len(quote.Breakdown),
		Adults:     in.Adults,
		Children:   in.Children,
		Nights:     in.EffectiveNights(),
		At:         at,
	}
}
