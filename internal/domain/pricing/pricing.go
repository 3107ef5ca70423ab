package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"balilove/internal/domain/catalog"
)

// DefaultNights applies when no night count is supplied.
const DefaultNights = 3

const (
	labelVenueInclusion = "Venue Inclusion"
	labelContactPricing = "Contact for pricing"
)

// PricingType describes how a line item price scales.
type PricingType string

const (
	TypeFixed     PricingType = "fixed"
	TypePerAdult  PricingType = "per-adult"
	TypePerPerson PricingType = "per-person"
	TypeSeasonal  PricingType = "seasonal"
)

// Inputs is the guest and stay context of a quote.
type Inputs struct {
	Adults       int
	Children     int
	Nights       int
	SelectedDate *time.Time
}

// Guests returns adults plus children, ignoring negative counts.
func (in Inputs) Guests() int {
	return nonNegative(in.Adults) + nonNegative(in.Children)
}

// EffectiveNights falls back to DefaultNights when Nights is unset.
func (in Inputs) EffectiveNights() int {
	if in.Nights <= 0 {
		return DefaultNights
	}
	return in.Nights
}

// ProductPricing is the priced result for one line item, in IDR.
type ProductPricing struct {
	BasePrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Calculation string
	Type        PricingType
}

// LineBreakdown keeps input order and the originating product.
type LineBreakdown struct {
	Product    catalog.Product
	Pricing    ProductPricing
	Quantity   int
	IsOptional bool
}

// BreakdownEntry is the display-ready view of a priced line.
type BreakdownEntry struct {
	Item        string
	Calculation string
	Price       decimal.Decimal
}

// PackageQuote is the aggregate of all priced lines.
type PackageQuote struct {
	TotalPrice decimal.Decimal
	Breakdown  []LineBreakdown
}

func (q PackageQuote) Entries() []BreakdownEntry {
	out := make([]BreakdownEntry, 0, len(q.Breakdown))
	for _, line := range q.Breakdown {
		out = append(out, BreakdownEntry{
			Item:        line.Product.Name,
			Calculation: line.Pricing.Calculation,
			Price:       line.Pricing.TotalPrice,
		})
	}
	return out
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
