package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductDocument mirrors the content store's product shape.
type ProductDocument struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	VendorName string          `json:"vendorName"`
	Categories []string        `json:"categories,omitempty"`
	Pricing    PricingDocument `json:"pricing"`
}

type PricingDocument struct {
	IsVenueInclusion bool             `json:"isVenueInclusion,omitempty"`
	Model            string           `json:"model,omitempty"`
	SellPrice        *decimal.Decimal `json:"sellPrice,omitempty"`
	BaseSellPrice    *decimal.Decimal `json:"baseSellPrice,omitempty"`
	UnitType         string           `json:"unitType,omitempty"`
	MinimumUnits     *int             `json:"minimumUnits,omitempty"`
	MaximumUnits     *int             `json:"maximumUnits,omitempty"`
	EventFees        *EventFeesDoc    `json:"eventFees,omitempty"`
}

type EventFeesDoc struct {
	EventFeeSell *decimal.Decimal `json:"eventFeeSell,omitempty"`
	BanjarFee    *decimal.Decimal `json:"banjarFee,omitempty"`
}

// LineItemDocument references a product inside a template document.
type LineItemDocument struct {
	Product    ProductDocument `json:"product"`
	Quantity   int             `json:"quantity"`
	IsOptional bool            `json:"isOptional,omitempty"`
}

type TemplateDocument struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Venue string             `json:"venue,omitempty"`
	Items []LineItemDocument `json:"items"`
}

// ToDescriptor resolves the effective pricing model. Venue inclusion wins;
// an unknown model or missing price yields nil.
func (d PricingDocument) ToDescriptor() PricingDescriptor {
	if d.IsVenueInclusion {
		return VenueInclusion{}
	}
	switch strings.ToLower(strings.TrimSpace(d.Model)) {
	case "constant":
		if d.SellPrice == nil {
			return nil
		}
		return ConstantPricing{SellPrice: *d.SellPrice}
	case "variable":
		if d.BaseSellPrice == nil {
			return nil
		}
		v := VariablePricing{
			BaseSellPrice: *d.BaseSellPrice,
			MinimumUnits:  d.MinimumUnits,
			MaximumUnits:  d.MaximumUnits,
		}
		if unit, err := ParseUnitType(d.UnitType); err == nil {
			v.UnitType = unit
		}
		if d.EventFees != nil && (d.EventFees.EventFeeSell != nil || d.EventFees.BanjarFee != nil) {
			v.EventFees = &EventFees{
				EventFeeSell: d.EventFees.EventFeeSell,
				BanjarFee:    d.EventFees.BanjarFee,
			}
		}
		return v
	default:
		return nil
	}
}

// Validate performs ingestion-time checks so pricing can assume well-formed input.
func (d ProductDocument) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrProductNameEmpty
	}
	for _, p := range []*decimal.Decimal{d.Pricing.SellPrice, d.Pricing.BaseSellPrice} {
		if p != nil && p.IsNegative() {
			return ErrNegativePrice
		}
	}
	if fees := d.Pricing.EventFees; fees != nil {
		for _, p := range []*decimal.Decimal{fees.EventFeeSell, fees.BanjarFee} {
			if p != nil && p.IsNegative() {
				return ErrNegativePrice
			}
		}
	}
	if d.Pricing.UnitType != "" {
		if _, err := ParseUnitType(d.Pricing.UnitType); err != nil {
			return err
		}
	}
	return nil
}

func (d ProductDocument) ToProduct() Product {
	return Product{
		ID:         ProductID(d.ID),
		Name:       d.Name,
		VendorName: d.VendorName,
		Categories: append([]string(nil), d.Categories...),
		Pricing:    d.Pricing.ToDescriptor(),
	}
}

func (d LineItemDocument) ToLineItem() LineItem {
	return LineItem{
		Product:    d.Product.ToProduct(),
		Quantity:   d.Quantity,
		IsOptional: d.IsOptional,
	}
}

func (d TemplateDocument) ToTemplate() *PackageTemplate {
	items := make([]LineItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, it.ToLineItem())
	}
	return &PackageTemplate{
		ID:    TemplateID(d.ID),
		Name:  d.Name,
		Venue: d.Venue,
		Items: items,
	}
}
