package rates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domaincurrency "balilove/internal/domain/currency"
	"balilove/internal/domain/shared/money"
)

func TestHTTPProviderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/latest/IDR" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","base_code":"IDR","rates":{"IDR":1,"USD":0.0000625,"EUR":0.00005,"GBP":0.00005,"AUD":0.0001,"JPY":0.0095}}`))
	}))
	defer srv.Close()

	p := &HTTPProvider{Endpoint: srv.URL + "/v6/latest", Client: srv.Client()}
	table, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !table.Rates[money.USD].Equal(decimal.NewFromInt(16_000)) {
		t.Fatalf("USD rate = %s, want 16000", table.Rates[money.USD])
	}
	if !table.Rates[money.EUR].Equal(decimal.NewFromInt(20_000)) {
		t.Fatalf("EUR rate = %s, want 20000", table.Rates[money.EUR])
	}
	if !table.Rates[money.AUD].Equal(decimal.NewFromInt(10_000)) {
		t.Fatalf("AUD rate = %s, want 10000", table.Rates[money.AUD])
	}
	if _, ok := table.Rates[money.Currency("JPY")]; ok {
		t.Fatalf("unsupported currency kept in table")
	}
	if table.Source == "" || table.Source == domaincurrency.SourceFallback {
		t.Fatalf("Source = %q", table.Source)
	}
}

func TestHTTPProviderFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusBadGateway, `upstream down`, nil},
		{"malformed json", http.StatusOK, `{"rates":`, domaincurrency.ErrMalformedRates},
		{"missing rates", http.StatusOK, `{"result":"success"}`, domaincurrency.ErrMalformedRates},
		{"error result", http.StatusOK, `{"result":"error","rates":{"USD":1}}`, domaincurrency.ErrMalformedRates},
		{"zero rate", http.StatusOK, `{"rates":{"USD":0,"EUR":0.00005,"GBP":0.00005,"AUD":0.0001}}`, domaincurrency.ErrMalformedRates},
		{"missing supported currency", http.StatusOK, `{"rates":{"USD":0.0000625,"EUR":0.00005,"AUD":0.0001}}`, domaincurrency.ErrMalformedRates},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := &HTTPProvider{Endpoint: srv.URL, Client: srv.Client()}
			_, err := p.Fetch(context.Background())
			if err == nil {
				t.Fatalf("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPProviderRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"rates":{"USD":0.0000625,"EUR":0.00005,"GBP":0.00005,"AUD":0.0001}}`))
	}))
	defer srv.Close()

	p := &HTTPProvider{
		Endpoint: srv.URL,
		Client:   srv.Client(),
		Backoff:  []time.Duration{time.Millisecond, time.Millisecond},
	}
	if _, err := p.Fetch(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("calls = %d, want 2", calls.Load())
	}
}

func TestHTTPProviderDoesNotRetryMalformedPayload(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	p := &HTTPProvider{Endpoint: srv.URL, Client: srv.Client(), Backoff: []time.Duration{time.Millisecond}}
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestHTTPProviderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	p := &HTTPProvider{Endpoint: srv.URL, Client: srv.Client(), Timeout: 20 * time.Millisecond}
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Fatalf("expected timeout error")
	}
}
