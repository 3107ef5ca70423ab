package currency

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

const refreshKey = "rates"

var ErrProviderMissing = errors.New("currency: rate provider missing")

// Converter owns the exchange-rate cache. Create one per process and share it.
type Converter struct {
	Provider domaincurrency.RateProvider
	TTL      time.Duration
	Now      func() time.Time
	Logger   *slog.Logger

	mu        sync.Mutex
	cached    *domaincurrency.ExchangeRateTable
	fetchedAt time.Time
	flight    singleflight.Group
}

// NewConverter builds a converter with the default TTL and wall clock.
func NewConverter(provider domaincurrency.RateProvider, logger *slog.Logger) *Converter {
	return &Converter{
		Provider: provider,
		TTL:      domaincurrency.DefaultTTL,
		Now:      time.Now,
		Logger:   logger,
	}
}

// Rates returns the cached table while fresh, otherwise fetches a new one.
// Fetch failures yield the fallback table, which is never cached. A caller
// whose ctx ends returns ctx.Err() without cancelling the shared fetch.
func (c *Converter) Rates(ctx context.Context) (domaincurrency.ExchangeRateTable, error) {
	if table, ok := c.fresh(); ok {
		return table, nil
	}
	// The shared fetch outlives any single caller; the provider bounds it
	// with its own per-attempt timeout.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.flight.DoChan(refreshKey, func() (any, error) {
		if table, ok := c.fresh(); ok {
			return table, nil
		}
		return c.fetch(fetchCtx)
	})
	select {
	case <-ctx.Done():
		return domaincurrency.ExchangeRateTable{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domaincurrency.ExchangeRateTable{}, res.Err
		}
		return res.Val.(domaincurrency.ExchangeRateTable).Clone(), nil
	}
}

// ForceRefresh drops the cache and performs a live fetch.
func (c *Converter) ForceRefresh(ctx context.Context) (domaincurrency.ExchangeRateTable, error) {
	c.Invalidate()
	c.flight.Forget(refreshKey)
	return c.Rates(ctx)
}

// Invalidate clears the cached table and its fetch time.
func (c *Converter) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
	c.fetchedAt = time.Time{}
}

// Convert turns an IDR amount into target. IDR targets never touch the rate table.
func (c *Converter) Convert(ctx context.Context, amount decimal.Decimal, target money.Currency) (domaincurrency.ConversionResult, error) {
	if target == money.Base {
		return domaincurrency.Convert(domaincurrency.ExchangeRateTable{}, amount, target)
	}
	table, err := c.Rates(ctx)
	if err != nil {
		return domaincurrency.ConversionResult{}, err
	}
	return domaincurrency.Convert(table, amount, target)
}

// ConvertMany converts amount into every target using a single rate lookup.
func (c *Converter) ConvertMany(ctx context.Context, amount decimal.Decimal, targets []money.Currency) ([]domaincurrency.ConversionResult, error) {
	if len(targets) == 0 {
		return []domaincurrency.ConversionResult{}, nil
	}
	table, err := c.Rates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domaincurrency.ConversionResult, 0, len(targets))
	for _, target := range targets {
		res, err := domaincurrency.Convert(table, amount, target)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, nil
}

// RateInfo describes the cached table without fetching. A stale table is
// still described; an empty cache reports source "none".
func (c *Converter) RateInfo(_ context.Context) (domaincurrency.RateInfo, error) {
	c.mu.Lock()
	cached := c.cached
	c.mu.Unlock()
	if cached == nil {
		return domaincurrency.EmptyRateInfo(), nil
	}
	return domaincurrency.DescribeTable(*cached, c.now(), c.ttl()), nil
}

func (c *Converter) fresh() (domaincurrency.ExchangeRateTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cached == nil {
		return domaincurrency.ExchangeRateTable{}, false
	}
	if c.now().Sub(c.fetchedAt) >= c.ttl() {
		return domaincurrency.ExchangeRateTable{}, false
	}
	return c.cached.Clone(), true
}

func (c *Converter) fetch(ctx context.Context) (domaincurrency.ExchangeRateTable, error) {
	if c.Provider == nil {
		return domaincurrency.ExchangeRateTable{}, ErrProviderMissing
	}
	started := c.now()
	table, err := c.Provider.Fetch(ctx)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Warn("exchange rate fetch failed, serving fallback rates", "error", err)
		}
		return domaincurrency.FallbackTable(started), nil
	}

	now := c.now()
	table = table.Clone()
	table.LastUpdated = now

	c.mu.Lock()
	c.cached = &table
	c.fetchedAt = now
	c.mu.Unlock()

	if c.Logger != nil {
		c.Logger.Info("exchange rates refreshed", "source", table.Source, "currencies", len(table.Rates))
	}
	return table, nil
}

func (c *Converter) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Converter) ttl() time.Duration {
	if c.TTL <= 0 {
		return domaincurrency.DefaultTTL
	}
	return c.TTL
}
