package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrTemplateNotFound = errors.New("catalog: template not found")
	ErrProductNameEmpty = errors.New("catalog: product name is required")
	ErrUnknownUnitType  = errors.New("catalog: unknown unit type")
	ErrNegativePrice    = errors.New("catalog: prices cannot be negative")
)

type ProductID string

// Product is read-only reference data owned by the content store.
type Product struct {
	ID         ProductID
	Name       string
	VendorName string
	Categories []string
	Pricing    PricingDescriptor
}

// UnitType says what a variable price is charged per.
type UnitType string

const (
	UnitPerPerson UnitType = "per-person"
	UnitPerAdult  UnitType = "per-adult"
	UnitPerChild  UnitType = "per-child"
	UnitPerNight  UnitType = "per-night"
)

func ParseUnitType(raw string) (UnitType, error) {
	switch u := UnitType(raw); u {
	case UnitPerPerson, UnitPerAdult, UnitPerChild, UnitPerNight:
		return u, nil
	default:
		return "", ErrUnknownUnitType
	}
}

// PricingDescriptor is one of VenueInclusion, ConstantPricing or VariablePricing.
// A nil descriptor means the product has no recognized pricing model.
type PricingDescriptor interface {
	pricingModel() string
}

// VenueInclusion marks products bundled with the venue booking.
type VenueInclusion struct{}

// ConstantPricing is a single sell price in IDR.
type ConstantPricing struct {
	SellPrice decimal.Decimal
}

// VariablePricing is a base price per unit plus optional flat event fees.
// MinimumUnits and MaximumUnits are informational only.
type VariablePricing struct {
	BaseSellPrice decimal.Decimal
	UnitType      UnitType
	MinimumUnits  *int
	MaximumUnits  *int
	EventFees     *EventFees
}

// EventFees are flat IDR surcharges, never scaled by guests.
type EventFees struct {
	EventFeeSell *decimal.Decimal
	BanjarFee    *decimal.Decimal
}

func (VenueInclusion) pricingModel() string  { return "venue-inclusion" }
func (ConstantPricing) pricingModel() string { return "constant" }
func (VariablePricing) pricingModel() string { return "variable" }

// ModelName reports the descriptor variant, or "none" for nil.
func ModelName(d PricingDescriptor) string {
	if d == nil {
		return "none"
	}
	return d.pricingModel()
}

// LineItem is a product inside a package template.
type LineItem struct {
	Product    Product
	Quantity   int
	IsOptional bool
}

type TemplateID string

// PackageTemplate is a curated wedding package.
type PackageTemplate struct {
	ID    TemplateID
	Name  string
	Venue string
	Items []LineItem
}

// Repository exposes package templates supplied by the content store.
type Repository interface {
	Template(ctx context.Context, id TemplateID) (*PackageTemplate, error)
	Templates(ctx context.Context) ([]*PackageTemplate, error)
}
