package extraction

import (
	"regexp"
	"strings"
)

// sameLineDenylist marks lines that never describe a purchased product:
// totals, payment details, store chrome, and column headers.
var sameLineDenylist = []string{
	"subtotal", "total", "tax",
	"discount", "change", "payment",
	"cash", "card", "receipt",
	"store", "cashier", "thank you",
	"return policy", "warranty info", "date:",
	"time:", "address", "phone",
	"email", "website", "description",
	"quantity", "unit price", "total amount",
}

var (
	// quantityPrefix strips leading markers like "2x " or "1 * "
	quantityPrefix = regexp.MustCompile(`(?i)^\d+\s*[x*]\s*`)
	// metadataLabel rejects names that are really field labels
	metadataLabel = regexp.MustCompile(`(?i)^(qty|quantity|item|sku|upc|code|id)\s*:?\s*\d*$`)
	// numericOnly rejects names that are just a number
	numericOnly = regexp.MustCompile(`^\d+$`)
)

// sameLineStrategy extracts products from traditional receipts where the
// product name and its price share a line, price last.
type sameLineStrategy struct{}

func (sameLineStrategy) Name() string { return "sameLine" }

func (s sameLineStrategy) Parse(lines []string) []Product {
	products := make([]Product, 0)

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if len(line) < 3 {
			continue
		}

		if containsAny(strings.ToLower(line), sameLineDenylist...) {
			continue
		}

		priceMatches := currencyPattern.FindAllString(line, -1)
		if len(priceMatches) == 0 {
			continue
		}

		// Itemized lines place the product price last
		priceText := priceMatches[len(priceMatches)-1]
		price := parsePrice(priceText)

		name := strings.TrimSpace(line[:strings.LastIndex(line, priceText)])
		name = quantityPrefix.ReplaceAllString(name, "")
		name = strings.Join(strings.Fields(name), " ")

		if len(name) < 3 || metadataLabel.MatchString(name) || numericOnly.MatchString(name) {
			continue
		}

		if !priceInRange(price) {
			continue
		}

		products = append(products, Product{
			Name:           name,
			Price:          price,
			ProductType:    ProductType(name),
			WarrantyMonths: defaultWarrantyMonths,
			Confidence:     0.9,
			Source: Provenance{
				Strategy:  s.Name(),
				LineIndex: i,
				Line:      line,
				PriceText: priceText,
			},
		})
	}

	return products
}
