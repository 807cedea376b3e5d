package extraction

import (
	"regexp"
	"strconv"
	"strings"
)

// currencyPattern matches dollar-formatted amounts like $79.99 or $2,499.99
var currencyPattern = regexp.MustCompile(`\$[\d,]+\.?\d*`)

// parsePrice converts a currency substring to its numeric value
func parsePrice(priceText string) float64 {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(priceText, "$"), ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return price
}

// priceInRange reports whether a price falls inside the accepted band
func priceInRange(price float64) bool {
	return price >= minPrice && price <= maxPrice
}

// containsAny reports whether s contains any of the given substrings
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
