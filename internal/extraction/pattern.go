package extraction

import "strings"

// fourLineStrategy extracts products from structured receipts that print one
// field per line in fixed groups of four: name, quantity, unit price, total.
type fourLineStrategy struct{}

func (fourLineStrategy) Name() string { return "fourLine" }

// findGroupStart locates the 4-line header (description, quantity, price,
// total) and returns the index of the first data line, or -1.
func findGroupStart(lines []string) int {
	for i := 0; i+3 < len(lines); i++ {
		l1 := strings.ToLower(strings.TrimSpace(lines[i]))
		l2 := strings.ToLower(strings.TrimSpace(lines[i+1]))
		l3 := strings.ToLower(strings.TrimSpace(lines[i+2]))
		l4 := strings.ToLower(strings.TrimSpace(lines[i+3]))

		if containsAny(l1, "description", "item") &&
			containsAny(l2, "quantity", "qty") &&
			containsAny(l3, "price", "unit") &&
			containsAny(l4, "total", "amount") {
			return i + 4
		}
	}
	return -1
}

func (s fourLineStrategy) Parse(lines []string) []Product {
	products := make([]Product, 0)

	dataStart := findGroupStart(lines)
	if dataStart == -1 {
		return products
	}

	for i := dataStart; i+3 < len(lines); i += 4 {
		name := strings.TrimSpace(lines[i])
		quantity := strings.TrimSpace(lines[i+1])
		unitPrice := strings.TrimSpace(lines[i+2])
		total := strings.TrimSpace(lines[i+3])

		// A summary word in the name position marks the end of itemization
		if containsAny(strings.ToLower(name),
			"discount", "total", "subtotal", "tax", "payment", "thank you") {
			break
		}

		priceText := currencyPattern.FindString(unitPrice)
		if len(name) <= 2 || priceText == "" {
			continue
		}

		price := parsePrice(priceText)
		if !priceInRange(price) {
			continue
		}

		products = append(products, Product{
			Name:           name,
			Price:          price,
			ProductType:    ProductType(name),
			WarrantyMonths: defaultWarrantyMonths,
			// Highest trust score of the three strategies: structured
			// data leaves the least room for mispairing.
			Confidence: 0.95,
			Source: Provenance{
				Strategy:   s.Name(),
				LineIndex:  i,
				PriceText:  priceText,
				GroupLines: []string{name, quantity, unitPrice, total},
			},
		})
	}

	return products
}
