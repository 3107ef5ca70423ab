package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"balilove/internal/domain/catalog"
)

const templatesCollection = "package_templates"

// CatalogRepository reads package templates with their embedded products.
type CatalogRepository struct {
	col *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{col: db.Collection(templatesCollection)}
}

func (r *CatalogRepository) Template(ctx context.Context, id catalog.TemplateID) (*catalog.PackageTemplate, error) {
	var doc templateDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", catalog.ErrTemplateNotFound, id)
		}
		return nil, err
	}
	return doc.toDomain().ToTemplate(), nil
}

func (r *CatalogRepository) Templates(ctx context.Context) ([]*catalog.PackageTemplate, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []*catalog.PackageTemplate
	for cur.Next(ctx) {
		var doc templateDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain().ToTemplate())
	}
	return out, cur.Err()
}

// Upsert validates every product and replaces the stored template document.
func (r *CatalogRepository) Upsert(ctx context.Context, doc catalog.TemplateDocument) error {
	for i, item := range doc.Items {
		if err := item.Product.Validate(); err != nil {
			return fmt.Errorf("mongo: template %s item %d: %w", doc.ID, i, err)
		}
	}
	stored, err := fromDomain(doc)
	if err != nil {
		return err
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": stored.ID}, stored, options.Replace().SetUpsert(true))
	return err
}

var _ catalog.Repository = (*CatalogRepository)(nil)

type templateDocument struct {
	ID    string             `bson:"_id"`
	Name  string             `bson:"name"`
	Venue string             `bson:"venue,omitempty"`
	Items []lineItemDocument `bson:"items"`
}

type lineItemDocument struct {
	Product    productDocument `bson:"product"`
	Quantity   int             `bson:"quantity"`
	IsOptional bool            `bson:"is_optional,omitempty"`
}

type productDocument struct {
	ID         string          `bson:"id"`
	Name       string          `bson:"name"`
	VendorName string          `bson:"vendor_name,omitempty"`
	Categories []string        `bson:"categories,omitempty"`
	Pricing    pricingDocument `bson:"pricing"`
}

type pricingDocument struct {
	IsVenueInclusion bool                  `bson:"is_venue_inclusion,omitempty"`
	Model            string                `bson:"model,omitempty"`
	SellPrice        *primitive.Decimal128 `bson:"sell_price,omitempty"`
	BaseSellPrice    *primitive.Decimal128 `bson:"base_sell_price,omitempty"`
	UnitType         string                `bson:"unit_type,omitempty"`
	MinimumUnits     *int                  `bson:"minimum_units,omitempty"`
	MaximumUnits     *int                  `bson:"maximum_units,omitempty"`
	EventFeeSell     *primitive.Decimal128 `bson:"event_fee_sell,omitempty"`
	BanjarFee        *primitive.Decimal128 `bson:"banjar_fee,omitempty"`
}

func (d templateDocument) toDomain() catalog.TemplateDocument {
	items := make([]catalog.LineItemDocument, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, catalog.LineItemDocument{
			Product: catalog.ProductDocument{
				ID:         it.Product.ID,
				Name:       it.Product.Name,
				VendorName: it.Product.VendorName,
				Categories: it.Product.Categories,
				Pricing:    it.Product.Pricing.toDomain(),
			},
			Quantity:   it.Quantity,
			IsOptional: it.IsOptional,
		})
	}
	return catalog.TemplateDocument{ID: d.ID, Name: d.Name, Venue: d.Venue, Items: items}
}

func (p pricingDocument) toDomain() catalog.PricingDocument {
	out := catalog.PricingDocument{
		IsVenueInclusion: p.IsVenueInclusion,
		Model:            p.Model,
		SellPrice:        fromDecimal128(p.SellPrice),
		BaseSellPrice:    fromDecimal128(p.BaseSellPrice),
		UnitType:         p.UnitType,
		MinimumUnits:     p.MinimumUnits,
		MaximumUnits:     p.MaximumUnits,
	}
	if p.EventFeeSell != nil || p.BanjarFee != nil {
		out.EventFees = &catalog.EventFeesDoc{
			EventFeeSell: fromDecimal128(p.EventFeeSell),
			BanjarFee:    fromDecimal128(p.BanjarFee),
		}
	}
	return out
}

func fromDomain(d catalog.TemplateDocument) (templateDocument, error) {
	items := make([]lineItemDocument, 0, len(d.Items))
	for _, it := range d.Items {
		pricing, err := pricingFromDomain(it.Product.Pricing)
		if err != nil {
			return templateDocument{}, fmt.Errorf("mongo: product %s: %w", it.Product.ID, err)
		}
		items = append(items, lineItemDocument{
			Product: productDocument{
				ID:         it.Product.ID,
				Name:       it.Product.Name,
				VendorName: it.Product.VendorName,
				Categories: it.Product.Categories,
				Pricing:    pricing,
			},
			Quantity:   it.Quantity,
			IsOptional: it.IsOptional,
		})
	}
	return templateDocument{ID: d.ID, Name: d.Name, Venue: d.Venue, Items: items}, nil
}

func pricingFromDomain(p catalog.PricingDocument) (pricingDocument, error) {
	out := pricingDocument{
		IsVenueInclusion: p.IsVenueInclusion,
		Model:            p.Model,
		UnitType:         p.UnitType,
		MinimumUnits:     p.MinimumUnits,
		MaximumUnits:     p.MaximumUnits,
	}
	var err error
	if out.SellPrice, err = toDecimal128(p.SellPrice); err != nil {
		return out, err
	}
	if out.BaseSellPrice, err = toDecimal128(p.BaseSellPrice); err != nil {
		return out, err
	}
	if p.EventFees != nil {
		if out.EventFeeSell, err = toDecimal128(p.EventFees.EventFeeSell); err != nil {
			return out, err
		}
		if out.BanjarFee, err = toDecimal128(p.EventFees.BanjarFee); err != nil {
			return out, err
		}
	}
	return out, nil
}

func toDecimal128(v *decimal.Decimal) (*primitive.Decimal128, error) {
	if v == nil {
		return nil, nil
	}
	d, err := primitive.ParseDecimal128(v.String())
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func fromDecimal128(v *primitive.Decimal128) *decimal.Decimal {
	if v == nil {
		return nil
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return nil
	}
	return &d
}
