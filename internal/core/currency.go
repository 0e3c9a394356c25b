package core

// DefaultCurrency is the display currency assumed when none is configured.
const DefaultCurrency = "USD"

// currencySymbols maps supported display currencies to their symbols.
// Currency codes are informational only; no conversion is applied.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"NPR": "रू",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// Symbol returns the display symbol for a currency code, falling back to the
// code itself for currencies without a known symbol.
func Symbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}

// ValidCurrency reports whether code is a 3-letter uppercase currency code.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
