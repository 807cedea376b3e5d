package extraction

import (
	"regexp"
	"strings"
)

var (
	// columnSplit separates tabular cells on runs of 2+ spaces or a tab
	columnSplit = regexp.MustCompile(`\s{2,}|\t`)
	// hardwareKeywords gates the name-then-nearby-price fallback so it only
	// fires on lines that plausibly name hardware
	hardwareKeywords = regexp.MustCompile(`(?i)gaming|laptop|computer|mouse|keyboard|software|hardware|monitor|camera|phone|tablet|watch`)
)

// tableStrategy extracts products from header-delimited tabular receipts.
// It handles both whitespace-delimited columns and the case where a product
// name and its price end up on adjacent lines.
type tableStrategy struct{}

func (tableStrategy) Name() string { return "table" }

// findTableBounds locates the table region. The returned start is the line
// after the header; end is the first end-marker line, or len(lines) when the
// table runs to the bottom of the receipt. start is -1 when no header exists.
func findTableBounds(lines []string) (start, end int) {
	start, end = -1, -1

	for i, raw := range lines {
		line := strings.ToLower(strings.TrimSpace(raw))

		if (strings.Contains(line, "description") && strings.Contains(line, "price")) ||
			(strings.Contains(line, "item") && strings.Contains(line, "amount")) ||
			(strings.Contains(line, "product") && strings.Contains(line, "cost")) {
			start = i + 1
		}

		if start > -1 && containsAny(line, "subtotal", "total due", "payment method", "transaction id") {
			end = i
			break
		}
	}

	if end == -1 {
		end = len(lines)
	}
	return start, end
}

func (s tableStrategy) Parse(lines []string) []Product {
	products := make([]Product, 0)

	tableStart, tableEnd := findTableBounds(lines)
	if tableStart == -1 {
		return products
	}

	for i := tableStart; i < tableEnd; i++ {
		line := strings.TrimSpace(lines[i])
		if len(line) < 3 {
			continue
		}

		lower := strings.ToLower(line)
		if containsAny(lower, "discount", "promo") {
			continue
		}

		// Column-split parsing first: name in the first cell, price in a
		// currency-formatted cell.
		if product, ok := s.parseColumns(line, i); ok {
			products = append(products, product)
			continue
		}

		// Fallback: a bare product-name line with its price on one of the
		// next few lines.
		if product, ok := s.parseNearbyPrice(lines, i, tableEnd); ok {
			products = append(products, product)
		}
	}

	return products
}

// parseColumns splits a row on column whitespace and pairs the first cell
// with a price cell.
func (s tableStrategy) parseColumns(line string, lineIndex int) (Product, bool) {
	fields := make([]string, 0)
	for _, f := range columnSplit.Split(line, -1) {
		if strings.TrimSpace(f) != "" {
			fields = append(fields, strings.TrimSpace(f))
		}
	}
	if len(fields) < 2 {
		return Product{}, false
	}

	name := fields[0]
	prices := make([]string, 0)
	for _, f := range fields {
		if currencyPattern.MatchString(f) {
			prices = append(prices, f)
		}
	}
	if len(prices) == 0 || len(name) <= 2 {
		return Product{}, false
	}

	// Prefer a small comma-free amount: a row totalling a multi-unit
	// purchase lists the line total too, which must not win over the unit
	// price.
	priceText := prices[0]
	for _, p := range prices {
		if !strings.Contains(p, ",") || parsePrice(p) < 1000 {
			priceText = p
			break
		}
	}

	price := parsePrice(currencyPattern.FindString(priceText))
	if !priceInRange(price) {
		return Product{}, false
	}

	return Product{
		Name:           name,
		Price:          price,
		ProductType:    ProductType(name),
		WarrantyMonths: defaultWarrantyMonths,
		Confidence:     0.8,
		Source: Provenance{
			Strategy:  s.Name(),
			LineIndex: lineIndex,
			Line:      line,
			PriceText: priceText,
			Fields:    fields,
		},
	}, true
}

// parseNearbyPrice pairs a hardware-keyword line that carries no price with
// the first currency match within the next 3 lines.
func (s tableStrategy) parseNearbyPrice(lines []string, lineIndex, tableEnd int) (Product, bool) {
	line := strings.TrimSpace(lines[lineIndex])

	if !hardwareKeywords.MatchString(line) || strings.Contains(line, "$") {
		return Product{}, false
	}

	for j := lineIndex + 1; j <= lineIndex+3 && j < len(lines); j++ {
		priceText := currencyPattern.FindString(strings.TrimSpace(lines[j]))
		if priceText == "" {
			continue
		}

		price := parsePrice(priceText)
		if !priceInRange(price) {
			continue
		}

		return Product{
			Name:           line,
			Price:          price,
			ProductType:    ProductType(line),
			WarrantyMonths: defaultWarrantyMonths,
			Confidence:     0.7,
			Source: Provenance{
				Strategy:  s.Name() + "Nearby",
				LineIndex: lineIndex,
				Line:      line,
				PriceText: priceText,
			},
		}, true
	}

	return Product{}, false
}
