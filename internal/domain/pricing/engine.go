package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"balilove/internal/domain/catalog"
	"balilove/internal/domain/shared/money"
)

// Engine prices line items. The zero value uses DefaultRules.
type Engine struct {
	Rules []ClassificationRule
}

// ComputeProductPrice prices one line item with the default engine.
func ComputeProductPrice(item catalog.LineItem, in Inputs) ProductPricing {
	return Engine{}.ComputeProductPrice(item, in)
}

// ComputePackageTotal prices all line items with the default engine.
func ComputePackageTotal(items []catalog.LineItem, in Inputs) PackageQuote {
	return Engine{}.ComputePackageTotal(items, in)
}

func (e Engine) ComputeProductPrice(item catalog.LineItem, in Inputs) ProductPricing {
	quantity := item.Quantity
	if quantity < 1 {
		quantity = 1
	}
	switch model := item.Product.Pricing.(type) {
	case catalog.VenueInclusion:
		return ProductPricing{
			BasePrice:   decimal.Zero,
			TotalPrice:  decimal.Zero,
			Calculation: labelVenueInclusion,
			Type:        TypeFixed,
		}
	case catalog.ConstantPricing:
		return e.constantPrice(item.Product, model, quantity, in)
	case catalog.VariablePricing:
		return variablePrice(model, quantity, in)
	default:
		return ProductPricing{
			BasePrice:   decimal.Zero,
			TotalPrice:  decimal.Zero,
			Calculation: labelContactPricing,
			Type:        TypeFixed,
		}
	}
}

func (e Engine) ComputePackageTotal(items []catalog.LineItem, in Inputs) PackageQuote {
	quote := PackageQuote{
		TotalPrice: decimal.Zero,
		Breakdown:  make([]LineBreakdown, 0, len(items)),
	}
	for _, item := range items {
		p := e.ComputeProductPrice(item, in)
		quote.TotalPrice = quote.TotalPrice.Add(p.TotalPrice)
		quote.Breakdown = append(quote.Breakdown, LineBreakdown{
			Product:    item.Product,
			Pricing:    p,
			Quantity:   item.Quantity,
			IsOptional: item.IsOptional,
		})
	}
	return quote
}

func (e Engine) rules() []ClassificationRule {
	if e.Rules == nil {
		return DefaultRules
	}
	return e.Rules
}

func (e Engine) constantPrice(product catalog.Product, model catalog.ConstantPricing, quantity int, in Inputs) ProductPricing {
	kind := ClassifyWith(e.rules(), product.Name, product.VendorName)
	base := model.SellPrice
	calc := money.Label(base)

	multiplier := 1
	switch kind {
	case TypePerPerson:
		multiplier = in.Guests()
		calc += fmt.Sprintf(" × %d guests", multiplier)
	case TypePerAdult:
		multiplier = nonNegative(in.Adults)
		calc += fmt.Sprintf(" × %d adults", multiplier)
	}
	if quantity > 1 {
		calc += fmt.Sprintf(" × %d", quantity)
	}

	total := base.Mul(decimal.NewFromInt(int64(multiplier))).Mul(decimal.NewFromInt(int64(quantity)))
	return ProductPricing{
		BasePrice:   base,
		TotalPrice:  total,
		Calculation: calc,
		Type:        kind,
	}
}

func variablePrice(model catalog.VariablePricing, quantity int, in Inputs) ProductPricing {
	base := model.BaseSellPrice
	total := base
	calc := money.Label(base)

	if model.UnitType == catalog.UnitPerNight {
		nights := in.EffectiveNights()
		total = total.Mul(decimal.NewFromInt(int64(nights)))
		calc += fmt.Sprintf(" × %d nights", nights)
	}
	if fees := model.EventFees; fees != nil {
		if fee := fees.EventFeeSell; fee != nil && !fee.IsZero() {
			total = total.Add(*fee)
			calc += " + " + money.Label(*fee) + " event fee"
		}
		if fee := fees.BanjarFee; fee != nil && !fee.IsZero() {
			total = total.Add(*fee)
			calc += " + " + money.Label(*fee) + " banjar fee"
		}
	}
	if quantity > 1 {
		total = total.Mul(decimal.NewFromInt(int64(quantity)))
		calc = fmt.Sprintf("(%s) × %d", calc, quantity)
	}

	return ProductPricing{
		BasePrice:   base,
		TotalPrice:  total,
		Calculation: calc,
		Type:        TypeSeasonal,
	}
}
