package normalize

import (
	"regexp"
	"strings"
)

// currencySymbols is checked in a fixed order so detection stays
// deterministic when a text mixes symbols.
var currencySymbols = []struct {
	sym  string
	code string
}{
	{"$", "USD"},
	{"₹", "INR"},
	{"£", "GBP"},
	{"€", "EUR"},
}

var (
	inrWordRE = regexp.MustCompile(`(?i)\bINR\b`)
	usdWordRE = regexp.MustCompile(`(?i)\bUSD\b`)
)

// Currency infers a currency code from symbols first, then from INR/USD
// keywords. Callers that need a code regardless should default to USD.
func Currency(text string) (string, bool) {
	for _, c := range currencySymbols {
		if strings.Contains(text, c.sym) {
			return c.code, true
		}
	}
	if inrWordRE.MatchString(text) {
		return "INR", true
	}
	if usdWordRE.MatchString(text) {
		return "USD", true
	}
	return "", false
}
