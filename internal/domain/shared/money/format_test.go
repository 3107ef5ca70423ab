package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		code   string
		want   string
	}{
		{"rupiah grouping", "1000000", "IDR", "Rp 1.000.000"},
		{"rupiah rounds fraction", "1500.6", "idr", "Rp 1.501"},
		{"dollar", "1234.5", "USD", "$1,234.50"},
		{"euro", "1234.5", "EUR", "1.234,50 €"},
		{"pound", "63.29", "GBP", "£63.29"},
		{"australian dollar", "96.15", "AUD", "A$96.15"},
		{"negative", "-12.5", "USD", "-$12.50"},
		{"unsupported code", "1234.5", "JPY", "1,234.5 JPY"},
		{"large rupiah keeps every digit", "12345678901234567", "IDR", "Rp 12.345.678.901.234.567"},
		{"large dollar keeps cents", "123456789012345.67", "USD", "$123,456,789,012,345.67"},
		{"euro pads fraction", "0.5", "EUR", "0,50 €"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			if got := FormatCurrency(amount, tt.code); got != tt.want {
				t.Errorf("FormatCurrency(%s, %s) = %q, want %q", tt.amount, tt.code, got, tt.want)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	if got := Label(decimal.NewFromInt(2_000_000)); got != "IDR 2,000,000" {
		t.Fatalf("Label = %q", got)
	}
	if got := Group(decimal.RequireFromString("1500.25")); got != "1,500.25" {
		t.Fatalf("Group = %q", got)
	}
	if got := Label(decimal.RequireFromString("12345678901234567")); got != "IDR 12,345,678,901,234,567" {
		t.Fatalf("Label = %q", got)
	}
	if got := Group(decimal.RequireFromString("-1234.5")); got != "-1,234.5" {
		t.Fatalf("Group = %q", got)
	}
}

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		raw     string
		want    Currency
		wantErr error
	}{
		{"usd", USD, nil},
		{" EUR ", EUR, nil},
		{"JPY", "", ErrUnsupportedCurrency},
		{"dollars", "", ErrInvalidCurrency},
	}
	for _, tt := range tests {
		got, err := ParseCurrency(tt.raw)
		if err != tt.wantErr {
			t.Errorf("ParseCurrency(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCurrency(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestParseCurrenciesKeepsOrder(t *testing.T) {
	got, err := ParseCurrencies([]string{"gbp", "", "USD", "idr"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Currency{GBP, USD, IDR}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
