package bootstrap

import (
	"errors"
	"log/slog"
	"time"

	"balilove/internal/app/commands"
	"balilove/internal/app/dto"
	quotesapp "balilove/internal/app/handlers/quotes"
	ratesapp "balilove/internal/app/handlers/rates"
	"balilove/internal/app/middleware"
	"balilove/internal/app/outbox"
	"balilove/internal/app/policies"
	"balilove/internal/app/queries"
	"balilove/internal/domain/catalog"
	"balilove/internal/domain/pricing"
)

// Deps are the ports the application handlers are built from.
// Publisher and Archive may be nil.
type Deps struct {
	Catalog   catalog.Repository
	Currency  policies.CurrencyPort
	Publisher outbox.Publisher
	Archive   policies.QuoteArchive
	Engine    pricing.Engine
	Logger    *slog.Logger
	Now       func() time.Time
	NewID     func() string
}

// Buses are the middleware-wrapped buses the transport layer talks to.
type Buses struct {
	Queries  queries.Bus
	Commands commands.Bus
}

// Build registers every handler and wraps both buses with validation and logging.
func Build(d Deps) (Buses, error) {
	encoder := outbox.JSONEventEncoder{}
	builder := &quotesapp.Builder{
		Engine:    d.Engine,
		Currency:  d.Currency,
		Publisher: d.Publisher,
		Encoder:   encoder,
		Archive:   d.Archive,
		Logger:    d.Logger,
		Now:       d.Now,
		NewID:     d.NewID,
	}

	queryBus := queries.NewInMemoryBus()
	commandBus := commands.NewInMemoryBus()
	refresh := &ratesapp.RefreshRatesHandler{
		Currency:  d.Currency,
		Publisher: d.Publisher,
		Encoder:   encoder,
		Logger:    d.Logger,
		Now:       d.Now,
	}

	err := errors.Join(
		queries.Register[quotesapp.QuotePackageQuery, dto.Quote](queryBus, quotesapp.QuotePackageQuery{}.Key(),
			&quotesapp.QuotePackageHandler{Builder: builder}),
		queries.Register[quotesapp.QuoteTemplateQuery, dto.Quote](queryBus, quotesapp.QuoteTemplateQuery{}.Key(),
			&quotesapp.QuoteTemplateHandler{Catalog: d.Catalog, Builder: builder}),
		queries.Register[quotesapp.ListTemplatesQuery, []dto.PackageTemplateSummary](queryBus, quotesapp.ListTemplatesQuery{}.Key(),
			&quotesapp.ListTemplatesHandler{Catalog: d.Catalog}),
		queries.Register[ratesapp.ConvertQuery, dto.ConversionSet](queryBus, ratesapp.ConvertQuery{}.Key(),
			&ratesapp.ConvertHandler{Currency: d.Currency}),
		queries.Register[ratesapp.RateInfoQuery, dto.RateInfo](queryBus, ratesapp.RateInfoQuery{}.Key(),
			&ratesapp.RateInfoHandler{Currency: d.Currency}),
		queries.Register[ratesapp.RatesTableQuery, dto.RatesTable](queryBus, ratesapp.RatesTableQuery{}.Key(),
			&ratesapp.RatesTableHandler{Currency: d.Currency}),
		commands.Register[ratesapp.RefreshRatesCommand, dto.RatesTable](commandBus, ratesapp.RefreshRatesCommand{}.Key(), refresh),
	)
	if err != nil {
		return Buses{}, err
	}

	return Buses{
		Queries: middleware.ChainQueries(queryBus,
			middleware.QueryLogging(d.Logger),
			middleware.QueryValidation(),
		),
		Commands: middleware.ChainCommands(commandBus,
			middleware.Logging(d.Logger),
			middleware.Validation(),
		),
	}, nil
}
