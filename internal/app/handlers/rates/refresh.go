package rates

import (
	"context"
	"log/slog"
	"time"

	"balilove/internal/app/commands"
	"balilove/internal/app/dto"
	"balilove/internal/app/outbox"
	"balilove/internal/app/policies"
	domaincurrency "balilove/internal/domain/currency"
)

const refreshRatesKey = "rates.refresh"

// RefreshRatesCommand drops the cached table and fetches a new one.
type RefreshRatesCommand struct {
	Reason string
}

func (RefreshRatesCommand) Key() string { return refreshRatesKey }

type RefreshRatesHandler struct {
	Currency  policies.CurrencyPort
	Publisher outbox.Publisher
	Encoder   outbox.EventEncoder
	Logger    *slog.Logger
	Now       func() time.Time
}

func (h *RefreshRatesHandler) Handle(ctx context.Context, cmd RefreshRatesCommand) (dto.RatesTable, error) {
	table, err := h.Currency.ForceRefresh(ctx)
	if err != nil {
		return dto.RatesTable{}, err
	}
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if table.IsFallback() {
		logger.Warn("rate refresh served fallback table", slog.String("reason", cmd.Reason))
	} else {
		logger.Debug("rate refresh handled", slog.String("reason", cmd.Reason), slog.String("source", table.Source))
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now()
	}
	ev := domaincurrency.NewRatesRefreshedEvent(table, now)
	if err := outbox.PublishDomainEvents(ctx, h.Publisher, h.Encoder, ev); err != nil {
		logger.Warn("rates event publish failed", slog.Any("err", err))
	}
	return dto.MapRatesTable(table), nil
}

var _ commands.Handler[RefreshRatesCommand, dto.RatesTable] = (*RefreshRatesHandler)(nil)
