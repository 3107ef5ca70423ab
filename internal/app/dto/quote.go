package dto

import (
	"time"

	"balilove/internal/domain/catalog"
	"balilove/internal/domain/pricing"
	"balilove/internal/domain/shared/money"
)

type QuoteInputs struct {
	Adults       int        `json:"adults"`
	Children     int        `json:"children"`
	Nights       int        `json:"nights"`
	SelectedDate *time.Time `json:"selected_date,omitempty"`
}

type QuoteLine struct {
	ProductID      string  `json:"product_id,omitempty"`
	Item           string  `json:"item"`
	Vendor         string  `json:"vendor,omitempty"`
	Quantity       int     `json:"quantity"`
	IsOptional     bool    `json:"is_optional"`
	PricingType    string  `json:"pricing_type"`
	Calculation    string  `json:"calculation"`
	BasePrice      float64 `json:"base_price"`
	Price          float64 `json:"price"`
	PriceFormatted string  `json:"price_formatted"`
}

type Quote struct {
	ID             string       `json:"id"`
	TemplateID     string       `json:"template_id,omitempty"`
	TemplateName   string       `json:"template_name,omitempty"`
	Inputs         QuoteInputs  `json:"inputs"`
	TotalPrice     float64      `json:"total_price"`
	TotalFormatted string       `json:"total_formatted"`
	Breakdown      []QuoteLine  `json:"breakdown"`
	Conversions    []Conversion `json:"conversions,omitempty"`
	ArchiveURL     string       `json:"archive_url,omitempty"`
	CalculatedAt   time.Time    `json:"calculated_at"`
}

type PackageTemplateSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Venue string `json:"venue,omitempty"`
	Items int    `json:"items"`
}

// MapQuote flattens a domain quote into its JSON shape.
func MapQuote(id string, quote pricing.PackageQuote, in pricing.Inputs, at time.Time) Quote {
	lines := make([]QuoteLine, 0, len(quote.Breakdown))
	for _, line := range quote.Breakdown {
		lines = append(lines, QuoteLine{
			ProductID:      string(line.Product.ID),
			Item:           line.Product.Name,
			Vendor:         line.Product.VendorName,
			Quantity:       line.Quantity,
			IsOptional:     line.IsOptional,
			PricingType:    string(line.Pricing.Type),
			Calculation:    line.Pricing.Calculation,
			BasePrice:      line.Pricing.BasePrice.InexactFloat64(),
			Price:          line.Pricing.TotalPrice.InexactFloat64(),
			PriceFormatted: money.FormatCurrency(line.Pricing.TotalPrice, string(money.Base)),
		})
	}
	return Quote{
		ID: id,
		Inputs: QuoteInputs{
			Adults:       in.Adults,
			Children:     in.Children,
			Nights:       in.EffectiveNights(),
			SelectedDate: in.SelectedDate,
		},
		TotalPrice:     quote.TotalPrice.InexactFloat64(),
		TotalFormatted: money.FormatCurrency(quote.TotalPrice, string(money.Base)),
		Breakdown:      lines,
		CalculatedAt:   at,
	}
}

func MapTemplateSummary(t *catalog.PackageTemplate) PackageTemplateSummary {
	return PackageTemplateSummary{
		ID:    string(t.ID),
		Name:  t.Name,
		Venue: t.Venue,
		Items: len(t.Items),
	}
}
