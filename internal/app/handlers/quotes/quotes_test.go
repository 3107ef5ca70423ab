package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"balilove/internal/app/outbox"
	"balilove/internal/domain/catalog"
	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

type fakeCatalog struct {
	templates []*catalog.PackageTemplate
}

func (c *fakeCatalog) Template(_ context.Context, id catalog.TemplateID) (*catalog.PackageTemplate, error) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, catalog.ErrTemplateNotFound
}

func (c *fakeCatalog) Templates(context.Context) ([]*catalog.PackageTemplate, error) {
	return c.templates, nil
}

type fixedRates struct {
	table domaincurrency.ExchangeRateTable
}

func (f fixedRates) Rates(context.Context) (domaincurrency.ExchangeRateTable, error) {
	return f.table, nil
}

func (f fixedRates) ConvertMany(_ context.Context, amount decimal.Decimal, targets []money.Currency) ([]domaincurrency.ConversionResult, error) {
	out := make([]domaincurrency.ConversionResult, 0, len(targets))
	for _, c := range targets {
		res, err := domaincurrency.Convert(f.table, amount, c)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

func (f fixedRates) RateInfo(context.Context) (domaincurrency.RateInfo, error) {
	return domaincurrency.DescribeTable(f.table, f.table.LastUpdated, domaincurrency.DefaultTTL), nil
}

func (f fixedRates) ForceRefresh(context.Context) (domaincurrency.ExchangeRateTable, error) {
	return f.table, nil
}

type recordingPublisher struct {
	records []outbox.EventRecord
}

func (p *recordingPublisher) Publish(_ context.Context, rec outbox.EventRecord) error {
	p.records = append(p.records, rec)
	return nil
}

type memoryArchive struct {
	docs map[string][]byte
	err  error
}

func (a *memoryArchive) Archive(_ context.Context, key string, doc []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	if a.docs == nil {
		a.docs = map[string][]byte{}
	}
	a.docs[key] = doc
	return "s3://quotes/" + key, nil
}

var testNow = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newBuilder(pub *recordingPublisher, archive *memoryArchive) *Builder {
	b := &Builder{
		Currency: fixedRates{table: domaincurrency.ExchangeRateTable{
			Rates: map[money.Currency]decimal.Decimal{
				money.IDR: decimal.NewFromInt(1),
				money.USD: decimal.NewFromInt(16_000),
				money.EUR: decimal.NewFromInt(17_000),
			},
			LastUpdated: testNow,
			Source:      "test",
		}},
		Now:   func() time.Time { return testNow },
		NewID: func() string { return "quote-1" },
	}
	if pub != nil {
		b.Publisher = pub
	}
	if archive != nil {
		b.Archive = archive
	}
	return b
}

func villaItem() catalog.LineItemDocument {
	return catalog.LineItemDocument{Product: catalog.ProductDocument{
		ID:   "villa",
		Name: "Cliffside Villa",
		Pricing: catalog.PricingDocument{
			Model:         "variable",
			BaseSellPrice: decPtr(2_000_000),
			UnitType:      "per-night",
			EventFees:     &catalog.EventFeesDoc{EventFeeSell: decPtr(300_000), BanjarFee: decPtr(100_000)},
		},
	}, Quantity: 1}
}

func villaTemplate() *catalog.PackageTemplate {
	return catalog.TemplateDocument{
		ID:    "uluwatu-classic",
		Name:  "Uluwatu Classic",
		Venue: "Cliffside Villa",
		Items: []catalog.LineItemDocument{
			villaItem(),
			{Product: catalog.ProductDocument{
				ID:         "menu",
				Name:       "Catering Menu",
				VendorName: "Bali Kitchen",
				Pricing:    catalog.PricingDocument{Model: "constant", SellPrice: decPtr(100_000)},
			}, Quantity: 1},
			{Product: catalog.ProductDocument{
				ID:      "chairs",
				Name:    "Ceremony Chairs",
				Pricing: catalog.PricingDocument{IsVenueInclusion: true, Model: "constant", SellPrice: decPtr(50_000)},
			}, Quantity: 10},
		},
	}.ToTemplate()
}

func TestQuoteTemplateHandler(t *testing.T) {
	pub := &recordingPublisher{}
	h := &QuoteTemplateHandler{
		Catalog: &fakeCatalog{templates: []*catalog.PackageTemplate{villaTemplate()}},
		Builder: newBuilder(pub, nil),
	}

	got, err := h.Handle(context.Background(), QuoteTemplateQuery{
		TemplateID: "uluwatu-classic",
		Inputs:     Inputs{Adults: 40, Children: 10, Nights: 3},
		Currencies: []money.Currency{money.USD, money.IDR},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// villa 2,000,000 × 3 + 400,000 fees, catering 100,000 × 50, chairs free
	if got.TotalPrice != 11_400_000 {
		t.Fatalf("TotalPrice = %v", got.TotalPrice)
	}
	if got.TotalFormatted != "Rp 11.400.000" {
		t.Fatalf("TotalFormatted = %q", got.TotalFormatted)
	}
	if got.TemplateID != "uluwatu-classic" || got.TemplateName != "Uluwatu Classic" {
		t.Fatalf("template fields = %q %q", got.TemplateID, got.TemplateName)
	}
	if len(got.Breakdown) != 3 {
		t.Fatalf("breakdown has %d lines", len(got.Breakdown))
	}
	if got.Breakdown[2].Calculation != "Venue Inclusion" || got.Breakdown[2].Price != 0 {
		t.Fatalf("venue inclusion line = %+v", got.Breakdown[2])
	}
	if len(got.Conversions) != 2 {
		t.Fatalf("conversions = %+v", got.Conversions)
	}
	if got.Conversions[0].Currency != "USD" || got.Conversions[0].Amount != 712.5 {
		t.Fatalf("USD conversion = %+v", got.Conversions[0])
	}
	if got.Conversions[1].Currency != "IDR" || got.Conversions[1].Amount != 11_400_000 {
		t.Fatalf("IDR conversion = %+v", got.Conversions[1])
	}
	if len(pub.records) != 1 || pub.records[0].Name != "quote.calculated" || pub.records[0].Aggregate != "quote-1" {
		t.Fatalf("published = %+v", pub.records)
	}
}

func TestQuoteTemplateHandlerNotFound(t *testing.T) {
	h := &QuoteTemplateHandler{Catalog: &fakeCatalog{}, Builder: newBuilder(nil, nil)}
	_, err := h.Handle(context.Background(), QuoteTemplateQuery{TemplateID: "missing"})
	if !errors.Is(err, catalog.ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
}

func TestQuotePackageHandlerDefaultsNights(t *testing.T) {
	h := &QuotePackageHandler{Builder: newBuilder(nil, nil)}
	got, err := h.Handle(context.Background(), QuotePackageQuery{
		Items:  []catalog.LineItemDocument{villaItem()},
		Inputs: Inputs{Adults: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Inputs.Nights != 3 {
		t.Fatalf("Nights = %d, want default 3", got.Inputs.Nights)
	}
	if got.TotalPrice != 6_400_000 {
		t.Fatalf("TotalPrice = %v", got.TotalPrice)
	}
}

func TestQuotePackageHandlerArchives(t *testing.T) {
	archive := &memoryArchive{}
	h := &QuotePackageHandler{Builder: newBuilder(nil, archive)}
	got, err := h.Handle(context.Background(), QuotePackageQuery{
		Items: []catalog.LineItemDocument{{
			Product: catalog.ProductDocument{
				Name:    "Floral Arch",
				Pricing: catalog.PricingDocument{Model: "constant", SellPrice: decPtr(750_000)},
			},
			Quantity: 2,
		}},
		Archive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	key := "quotes/2026/06/01/quote-1.json"
	if got.ArchiveURL != "s3://quotes/"+key {
		t.Fatalf("ArchiveURL = %q", got.ArchiveURL)
	}
	var stored map[string]any
	if err := json.Unmarshal(archive.docs[key], &stored); err != nil {
		t.Fatalf("archived document: %v", err)
	}
	if stored["total_price"] != float64(1_500_000) {
		t.Fatalf("archived total = %v", stored["total_price"])
	}
}

func TestQuotePackageHandlerArchiveFailureIsNotFatal(t *testing.T) {
	h := &QuotePackageHandler{Builder: newBuilder(nil, &memoryArchive{err: errors.New("bucket gone")})}
	got, err := h.Handle(context.Background(), QuotePackageQuery{
		Items: []catalog.LineItemDocument{{
			Product: catalog.ProductDocument{Name: "Photographer", Pricing: catalog.PricingDocument{Model: "constant", SellPrice: decPtr(5_000_000)}},
		}},
		Archive: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ArchiveURL != "" || got.TotalPrice != 5_000_000 {
		t.Fatalf("quote = %+v", got)
	}
}

func TestQuoteValidation(t *testing.T) {
	item := catalog.LineItemDocument{Product: catalog.ProductDocument{Name: "Arch"}}
	tests := []struct {
		name  string
		query interface{ Validate() error }
		want  error
	}{
		{"no items", QuotePackageQuery{}, ErrNoItems},
		{"empty product name", QuotePackageQuery{Items: []catalog.LineItemDocument{{}}}, catalog.ErrProductNameEmpty},
		{"negative adults", QuotePackageQuery{Items: []catalog.LineItemDocument{item}, Inputs: Inputs{Adults: -1}}, ErrNegativeGuests},
		{"negative nights", QuotePackageQuery{Items: []catalog.LineItemDocument{item}, Inputs: Inputs{Nights: -2}}, ErrNegativeNights},
		{"unsupported currency", QuotePackageQuery{Items: []catalog.LineItemDocument{item}, Currencies: []money.Currency{"JPY"}}, money.ErrUnsupportedCurrency},
		{"template id required", QuoteTemplateQuery{TemplateID: "  "}, ErrTemplateRequired},
		{"valid template", QuoteTemplateQuery{TemplateID: "a", Inputs: Inputs{Adults: 2}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListTemplatesHandler(t *testing.T) {
	h := &ListTemplatesHandler{Catalog: &fakeCatalog{templates: []*catalog.PackageTemplate{villaTemplate()}}}
	got, err := h.Handle(context.Background(), ListTemplatesQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "uluwatu-classic" || got[0].Items != 3 {
		t.Fatalf("templates = %+v", got)
	}
}
