package quotes

import (
	"context"

	"balilove/internal/app/dto"
	"balilove/internal/app/queries"
	"balilove/internal/domain/catalog"
)

const listTemplatesKey = "quotes.templates"

// ListTemplatesQuery returns summaries of every stored package template.
type ListTemplatesQuery struct{}

func (ListTemplatesQuery) Key() string { return listTemplatesKey }

type ListTemplatesHandler struct {
	Catalog catalog.Repository
}

func (h *ListTemplatesHandler) Handle(ctx context.Context, _ ListTemplatesQuery) ([]dto.PackageTemplateSummary, error) {
	templates, err := h.Catalog.Templates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackageTemplateSummary, 0, len(templates))
	for _, t := range templates {
		out = append(out, dto.MapTemplateSummary(t))
	}
	return out, nil
}

var _ queries.Handler[ListTemplatesQuery, []dto.PackageTemplateSummary] = (*ListTemplatesHandler)(nil)
