package extraction

import "github.com/myHin/hardware-keeper/internal/ocr"

// strategies is the fixed pipeline order. Candidate concatenation follows
// this order, which also decides which duplicate survives deduplication.
var strategies = []Strategy{
	sameLineStrategy{},
	tableStrategy{},
	fourLineStrategy{},
}

// priceKey identifies a product for deduplication: exact name and price.
type priceKey struct {
	name  string
	price float64
}

// ParseProducts runs every strategy over the receipt lines, merges their
// candidates, removes duplicates, and attaches the receipt's purchase date to
// each survivor.
//
// Deduplication keys on the exact (name, price) pair with the first
// occurrence winning. A genuine product bought twice at the same price
// collapses into one entry; quantity recovery is out of scope here.
func ParseProducts(text *ocr.ReceiptText) []Product {
	candidates := make([]Product, 0)
	for _, strategy := range strategies {
		candidates = append(candidates, strategy.Parse(text.Lines)...)
	}

	seen := make(map[priceKey]bool)
	unique := make([]Product, 0, len(candidates))
	for _, candidate := range candidates {
		key := priceKey{name: candidate.Name, price: candidate.Price}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, candidate)
	}

	_, purchaseDate := ExtractDate(text.RawText)
	for i := range unique {
		unique[i].PurchaseDate = purchaseDate
	}

	return unique
}
