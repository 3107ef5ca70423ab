package quotes

import (
	"context"
	"fmt"

	"balilove/internal/app/dto"
	"balilove/internal/app/queries"
	"balilove/internal/domain/catalog"
	"balilove/internal/domain/shared/money"
)

const quotePackageKey = "quotes.package"

// QuotePackageQuery prices an ad hoc list of line items.
type QuotePackageQuery struct {
	Items      []catalog.LineItemDocument
	Inputs     Inputs
	Currencies []money.Currency
	Archive    bool
}

func (q QuotePackageQuery) Key() string { return quotePackageKey }

func (q QuotePackageQuery) Validate() error {
	if len(q.Items) == 0 {
		return ErrNoItems
	}
	for i, item := range q.Items {
		if err := item.Product.Validate(); err != nil {
			return fmt.Errorf("items[%d]: %w", i, err)
		}
	}
	for _, c := range q.Currencies {
		if !c.IsSupported() {
			return fmt.Errorf("%w: %s", money.ErrUnsupportedCurrency, c)
		}
	}
	return q.Inputs.validate()
}

type QuotePackageHandler struct {
	Builder *Builder
}

func (h *QuotePackageHandler) Handle(ctx context.Context, q QuotePackageQuery) (dto.Quote, error) {
	items := make([]catalog.LineItem, 0, len(q.Items))
	for _, doc := range q.Items {
		items = append(items, doc.ToLineItem())
	}
	return h.Builder.build(ctx, buildRequest{
		items:      items,
		inputs:     q.Inputs,
		currencies: q.Currencies,
		archive:    q.Archive,
	})
}

var _ queries.Handler[QuotePackageQuery, dto.Quote] = (*QuotePackageHandler)(nil)
