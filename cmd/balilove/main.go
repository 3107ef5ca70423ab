package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"balilove/internal/app/bootstrap"
	"balilove/internal/app/commands"
	"balilove/internal/app/dto"
	ratesapp "balilove/internal/app/handlers/rates"
	appcurrency "balilove/internal/app/services/currency"
	"balilove/internal/domain/catalog"
	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/pricing"
	"balilove/internal/infra/broker/kafka"
	"balilove/internal/infra/config"
	mongostore "balilove/internal/infra/db/mongo"
	ginserver "balilove/internal/infra/http/gin"
	"balilove/internal/infra/obs"
	"balilove/internal/infra/outbox"
	"balilove/internal/infra/rates"
	"balilove/internal/infra/schedule"
	"balilove/internal/infra/storage/memory"
	"balilove/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env, cfg.LogLevel)
	slog.SetDefault(logger)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}
	defer app.close()

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Checks: app.checks}, app.handlers)

	if app.scheduler != nil {
		app.scheduler.Start()
		defer app.scheduler.Stop()
	}
	if app.relay != nil {
		go func() {
			if err := app.relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox relay stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers  ginserver.Handlers
	checks    map[string]obs.Check
	scheduler *schedule.Scheduler
	relay     *outbox.Relay
	mongo     *mongostore.Client
	closers   []func()
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{checks: map[string]obs.Check{}}
	deps := bootstrap.Deps{
		Engine: pricing.Engine{Rules: pricing.DefaultRules},
		Logger: logger,
	}

	catalogRepo, err := buildCatalog(ctx, cfg, logger, app, &deps)
	if err != nil {
		return nil, err
	}
	deps.Catalog = catalogRepo

	converter := appcurrency.NewConverter(buildRateProvider(cfg, logger), logger)
	converter.TTL = cfg.RatesTTL
	deps.Currency = converter

	if cfg.KafkaEnabled() {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, "balilove", nil)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = producer.Close() })
		publisher := &kafka.EventPublisher{
			Sender:      producer,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Logger:      logger,
		}
		deps.Publisher = publisher
		if app.mongo != nil {
			store, err := outbox.NewStore(ctx, app.mongo.DB)
			if err != nil {
				return nil, err
			}
			deps.Publisher = store
			app.relay = &outbox.Relay{
				Queue:     store,
				Publisher: publisher,
				Interval:  500 * time.Millisecond,
				Backoff:   []time.Duration{time.Second, 5 * time.Second, 30 * time.Second, 2 * time.Minute},
				Logger:    logger,
			}
			logger.Info("mongo outbox relay enabled")
		}
		logger.Info("kafka publisher enabled", "brokers", cfg.KafkaBrokers)
	}

	if cfg.S3Enabled() {
		archive, err := s3.NewArchive(s3.Options{
			Endpoint:      cfg.S3Endpoint,
			UseSSL:        cfg.S3UseSSL,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicEndpoint,
		}, logger)
		if err != nil {
			return nil, err
		}
		deps.Archive = archive
		logger.Info("s3 quote archive enabled", "bucket", cfg.S3Bucket)
	}

	buses, err := bootstrap.Build(deps)
	if err != nil {
		return nil, err
	}
	app.handlers = ginserver.Handlers{
		Quotes:   ginserver.QuoteHandler{Queries: buses.Queries},
		Currency: ginserver.CurrencyHandler{Queries: buses.Queries, Commands: buses.Commands},
	}

	if cfg.RatesRefreshCron != "" {
		app.scheduler = schedule.New(time.UTC, 2*cfg.RatesTimeout*time.Duration(len(cfg.RatesBackoff)+1), logger)
		err := app.scheduler.Add(cfg.RatesRefreshCron, "rates.refresh", func(ctx context.Context) error {
			_, err := commands.Dispatch[ratesapp.RefreshRatesCommand, dto.RatesTable](ctx, buses.Commands, ratesapp.RefreshRatesCommand{Reason: "schedule"})
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	return app, nil
}

// buildCatalog prefers Mongo when configured, which also provides the
// default quote archive; otherwise templates come from the fixtures file.
func buildCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger, app *application, deps *bootstrap.Deps) (catalog.Repository, error) {
	if cfg.MongoEnabled() {
		client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Close(closeCtx)
		})
		app.mongo = client
		app.checks["mongo"] = client.Ping
		store, err := mongostore.NewQuoteStore(ctx, client.DB, cfg.QuoteRetention)
		if err != nil {
			return nil, err
		}
		deps.Archive = store
		logger.Info("mongo catalog enabled", "db", cfg.MongoDB)
		return mongostore.NewCatalogRepository(client.DB), nil
	}

	repo := memory.NewCatalogRepository()
	n, err := repo.LoadFile(ctx, cfg.CatalogFixtures)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logger.Info("catalog fixtures file not found, starting empty", "path", cfg.CatalogFixtures)
	case err != nil:
		return nil, err
	default:
		logger.Info("catalog fixtures loaded", "path", cfg.CatalogFixtures, "templates", n)
	}
	return repo, nil
}

func buildRateProvider(cfg config.Config, logger *slog.Logger) domaincurrency.RateProvider {
	if cfg.RatesURL == "static" {
		logger.Info("using static exchange rates")
		return memory.NewStaticRateProvider()
	}
	return &rates.HTTPProvider{
		Endpoint: cfg.RatesURL,
		Client:   &http.Client{},
		Timeout:  cfg.RatesTimeout,
		Backoff:  cfg.RatesBackoff,
		Logger:   logger,
	}
}
