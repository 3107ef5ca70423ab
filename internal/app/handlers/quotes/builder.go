package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"balilove/internal/app/dto"
	"balilove/internal/app/outbox"
	"balilove/internal/app/policies"
	"balilove/internal/domain/catalog"
	"balilove/internal/domain/pricing"
	"balilove/internal/domain/shared/money"
)

var (
	ErrNoItems          = errors.New("quote requires at least one line item")
	ErrNegativeGuests   = errors.New("guest counts must not be negative")
	ErrNegativeNights   = errors.New("nights must not be negative")
	ErrTemplateRequired = errors.New("template id is required")
)

// Inputs is the guest context shared by quote queries.
type Inputs struct {
	Adults       int
	Children     int
	Nights       int
	SelectedDate *time.Time
}

func (in Inputs) validate() error {
	if in.Adults < 0 || in.Children < 0 {
		return ErrNegativeGuests
	}
	if in.Nights < 0 {
		return ErrNegativeNights
	}
	return nil
}

func (in Inputs) domain() pricing.Inputs {
	return pricing.Inputs{
		Adults:       in.Adults,
		Children:     in.Children,
		Nights:       in.Nights,
		SelectedDate: in.SelectedDate,
	}
}

// Builder prices line items and decorates the result with conversions,
// events and an optional archive copy. Handlers in this package share it.
type Builder struct {
	Engine    pricing.Engine
	Currency  policies.CurrencyPort
	Publisher outbox.Publisher
	Encoder   outbox.EventEncoder
	Archive   policies.QuoteArchive
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

type buildRequest struct {
	items      []catalog.LineItem
	inputs     Inputs
	currencies []money.Currency
	archive    bool
	template   *catalog.PackageTemplate
}

func (b *Builder) build(ctx context.Context, req buildRequest) (dto.Quote, error) {
	in := req.inputs.domain()
	quote := b.Engine.ComputePackageTotal(req.items, in)
	at := b.now()
	id := b.newID()

	out := dto.MapQuote(id, quote, in, at)
	templateID := ""
	if req.template != nil {
		templateID = string(req.template.ID)
		out.TemplateID = templateID
		out.TemplateName = req.template.Name
	}

	if len(req.currencies) > 0 {
		if b.Currency == nil {
			return dto.Quote{}, errors.New("currency conversion is not configured")
		}
		results, err := b.Currency.ConvertMany(ctx, quote.TotalPrice, req.currencies)
		if err != nil {
			return dto.Quote{}, err
		}
		out.Conversions = dto.MapConversions(results)
	}

	if req.archive && b.Archive != nil {
		if url, err := b.archive(ctx, out); err != nil {
			b.logger().Warn("quote archive failed", slog.String("quote_id", id), slog.Any("err", err))
		} else {
			out.ArchiveURL = url
		}
	}

	ev := pricing.NewQuoteCalculatedEvent(id, templateID, quote, in, at)
	if err := outbox.PublishDomainEvents(ctx, b.Publisher, b.Encoder, ev); err != nil {
		b.logger().Warn("quote event publish failed", slog.String("quote_id", id), slog.Any("err", err))
	}

	b.logger().Debug("quote calculated",
		slog.String("quote_id", id),
		slog.String("template_id", templateID),
		slog.Int("lines", len(out.Breakdown)),
		slog.String("total", out.TotalFormatted),
	)
	return out, nil
}

func (b *Builder) archive(ctx context.Context, q dto.Quote) (string, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("quotes/%s/%s.json", q.CalculatedAt.UTC().Format("2006/01/02"), q.ID)
	return b.Archive.Archive(ctx, key, body)
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now().UTC()
}

func (b *Builder) newID() string {
	if b.NewID != nil {
		return b.NewID()
	}
	return uuid.NewString()
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}
