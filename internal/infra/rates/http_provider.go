package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/eapache/go-resiliency/retrier"
	"github.com/shopspring/decimal"

	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

const defaultTimeout = 5 * time.Second

// HTTPProvider fetches IDR-based rates from an open exchange-rate API.
type HTTPProvider struct {
	Endpoint string
	Client   *http.Client
	Timeout  time.Duration
	Backoff  []time.Duration
	Logger   *slog.Logger
}

type ratesResponse struct {
	Result string             `json:"result"`
	Base   string             `json:"base_code"`
	Rates  map[string]float64 `json:"rates"`
}

// Fetch requests {Endpoint}/IDR and inverts "units per IDR" into "IDR per unit".
func (p *HTTPProvider) Fetch(ctx context.Context) (domaincurrency.ExchangeRateTable, error) {
	var zero domaincurrency.ExchangeRateTable
	if p == nil || p.Client == nil {
		return zero, errors.New("rates: http client not configured")
	}
	if strings.TrimSpace(p.Endpoint) == "" {
		return zero, errors.New("rates: endpoint not configured")
	}

	var table domaincurrency.ExchangeRateTable
	attempts := 0
	r := retrier.New(p.Backoff, retrier.BlacklistClassifier{domaincurrency.ErrMalformedRates})
	err := r.RunCtx(ctx, func(ctx context.Context) error {
		attempts++
		var err error
		table, err = p.fetchOnce(ctx)
		return err
	})
	if err != nil {
		p.logWarn("exchange rate request failed", attempts, err)
		return zero, err
	}
	return table, nil
}

func (p *HTTPProvider) fetchOnce(ctx context.Context) (domaincurrency.ExchangeRateTable, error) {
	var zero domaincurrency.ExchangeRateTable

	ctx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	endpoint := strings.TrimRight(p.Endpoint, "/") + "/" + string(money.Base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return zero, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return zero, fmt.Errorf("rates: provider timeout (%s)", endpoint)
		}
		return zero, fmt.Errorf("rates: provider unavailable (%s): %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return zero, fmt.Errorf("rates: provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return zero, fmt.Errorf("%w: %v", domaincurrency.ErrMalformedRates, err)
	}
	return p.toTable(payload)
}

func (p *HTTPProvider) toTable(payload ratesResponse) (domaincurrency.ExchangeRateTable, error) {
	var zero domaincurrency.ExchangeRateTable
	if payload.Result != "" && !strings.EqualFold(payload.Result, "success") {
		return zero, fmt.Errorf("%w: result %q", domaincurrency.ErrMalformedRates, payload.Result)
	}
	if len(payload.Rates) == 0 {
		return zero, fmt.Errorf("%w: missing rates", domaincurrency.ErrMalformedRates)
	}

	rates := make(map[money.Currency]decimal.Decimal, len(money.Supported()))
	one := decimal.NewFromInt(1)
	// A partial table would be cached for the whole TTL, so every supported
	// currency must be present.
	for _, c := range money.Supported() {
		if c == money.Base {
			rates[c] = one
			continue
		}
		perIDR, ok := payload.Rates[string(c)]
		if !ok {
			return zero, fmt.Errorf("%w: missing rate for %s", domaincurrency.ErrMalformedRates, c)
		}
		if perIDR <= 0 {
			return zero, fmt.Errorf("%w: non-positive rate for %s", domaincurrency.ErrMalformedRates, c)
		}
		rates[c] = one.Div(decimal.NewFromFloat(perIDR))
	}
	return domaincurrency.ExchangeRateTable{
		Rates:  rates,
		Source: p.source(),
	}, nil
}

func (p *HTTPProvider) source() string {
	if u, err := url.Parse(p.Endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return "exchange-rate-api"
}

func (p *HTTPProvider) timeout() time.Duration {
	if p.Timeout <= 0 {
		return defaultTimeout
	}
	return p.Timeout
}

func (p *HTTPProvider) logWarn(msg string, attempts int, err error) {
	if p.Logger != nil {
		p.Logger.Warn(msg, "endpoint", p.Endpoint, "attempts", attempts, "error", err)
	}
}

var _ domaincurrency.RateProvider = (*HTTPProvider)(nil)
