package pricing

import (
	"testing"

	"balilove/internal/domain/catalog"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		vendor string
		want   PricingType
	}{
		{"Champagne Toast", "", TypePerAdult},
		{"Free-flow BEER package", "", TypePerAdult},
		{"Signature Cocktail", "Sunset Bar", TypePerAdult},
		{"Wine and Dine Menu", "", TypePerAdult},
		{"Buffet Dinner", "", TypePerPerson},
		{"Canapes per pax", "", TypePerPerson},
		{"Dessert Table", "Ubud Catering Co", TypePerPerson},
		{"Canapes", "Daily Menu House", TypePerPerson},
		{"Sound System", "Bali Audio", TypeFixed},
		{"", "", TypeFixed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.name, tt.vendor); got != tt.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tt.name, tt.vendor, got, tt.want)
			}
		})
	}
}

func TestClassifyWithCustomRules(t *testing.T) {
	rules := []ClassificationRule{
		{Type: TypePerPerson, Matches: func(name, _ string) bool { return name == "massage" }},
	}
	if got := ClassifyWith(rules, "Massage", ""); got != TypePerPerson {
		t.Fatalf("got %q", got)
	}
	if got := ClassifyWith(rules, "Champagne", ""); got != TypeFixed {
		t.Fatalf("got %q, custom rules must replace defaults", got)
	}
}

func TestEngineUsesCustomRules(t *testing.T) {
	e := Engine{Rules: []ClassificationRule{}}
	item := cateringMenu()
	got := e.ComputeProductPrice(catalog.LineItem{Product: item, Quantity: 1}, Inputs{Adults: 10})
	if got.Type != TypeFixed {
		t.Fatalf("Type = %q, want fixed with empty rules", got.Type)
	}
}
