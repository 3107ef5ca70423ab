package quotes

import (
	"context"
	"fmt"
	"strings"

	"balilove/internal/app/dto"
	"balilove/internal/app/queries"
	"balilove/internal/domain/catalog"
	"balilove/internal/domain/shared/money"
)

const quoteTemplateKey = "quotes.template"

// QuoteTemplateQuery prices a stored package template.
type QuoteTemplateQuery struct {
	TemplateID string
	Inputs     Inputs
	Currencies []money.Currency
	Archive    bool
}

func (q QuoteTemplateQuery) Key() string { return quoteTemplateKey }

func (q QuoteTemplateQuery) Validate() error {
	if strings.TrimSpace(q.TemplateID) == "" {
		return ErrTemplateRequired
	}
	for _, c := range q.Currencies {
		if !c.IsSupported() {
			return fmt.Errorf("%w: %s", money.ErrUnsupportedCurrency, c)
		}
	}
	return q.Inputs.validate()
}

type QuoteTemplateHandler struct {
	Catalog catalog.Repository
	Builder *Builder
}

func (h *QuoteTemplateHandler) Handle(ctx context.Context, q QuoteTemplateQuery) (dto.Quote, error) {
	tmpl, err := h.Catalog.Template(ctx, catalog.TemplateID(strings.TrimSpace(q.TemplateID)))
	if err != nil {
		return dto.Quote{}, err
	}
	return h.Builder.build(ctx, buildRequest{
		items:      tmpl.Items,
		inputs:     q.Inputs,
		currencies: q.Currencies,
		archive:    q.Archive,
		template:   tmpl,
	})
}

var _ queries.Handler[QuoteTemplateQuery, dto.Quote] = (*QuoteTemplateHandler)(nil)
