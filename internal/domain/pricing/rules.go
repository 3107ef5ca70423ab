package pricing

import "strings"

// ClassificationRule maps lower-cased product and vendor names to a pricing type.
type ClassificationRule struct {
	Type    PricingType
	Matches func(name, vendor string) bool
}

var (
	alcoholKeywords       = []string{"alcohol", "wine", "beer", "cocktail", "champagne", "spirits"}
	cateringNameKeywords  = []string{"menu", "meal", "catering", "buffet", "per pax", "per person"}
	cateringVendorKeyword = []string{"catering", "menu"}
)

// DefaultRules are evaluated in order; alcohol must precede catering.
var DefaultRules = []ClassificationRule{
	{
		Type: TypePerAdult,
		Matches: func(name, vendor string) bool {
			return containsAny(name, alcoholKeywords) || containsAny(vendor, alcoholKeywords)
		},
	},
	{
		Type: TypePerPerson,
		Matches: func(name, vendor string) bool {
			return containsAny(name, cateringNameKeywords) || containsAny(vendor, cateringVendorKeyword)
		},
	},
}

// Classify applies DefaultRules to a product name and vendor trading name.
func Classify(name, vendor string) PricingType {
	return ClassifyWith(DefaultRules, name, vendor)
}

// ClassifyWith returns the type of the first matching rule, or TypeFixed.
func ClassifyWith(rules []ClassificationRule, name, vendor string) PricingType {
	n := strings.ToLower(name)
	v := strings.ToLower(vendor)
	for _, rule := range rules {
		if rule.Matches != nil && rule.Matches(n, v) {
			return rule.Type
		}
	}
	return TypeFixed
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
