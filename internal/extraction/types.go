package extraction

// Price band accepted for any extracted candidate. Receipts with entries
// outside it are OCR noise (phone numbers, SKUs, transaction ids).
const (
	minPrice = 0.01
	maxPrice = 50000
)

// defaultWarrantyMonths is applied when a strategy has no better warranty
// signal. No strategy currently detects warranty text, so every candidate
// carries this value.
const defaultWarrantyMonths = 12

// Provenance records which strategy produced a candidate and what it matched.
// It exists for debugging and audit only; no business logic reads it.
type Provenance struct {
	Strategy  string `json:"strategy"`
	LineIndex int    `json:"line_index"`
	// Line is the source line for single-line matches
	Line string `json:"line,omitempty"`
	// PriceText is the currency substring the strategy selected
	PriceText string `json:"price_text,omitempty"`
	// Fields holds the column-split cells for table rows
	Fields []string `json:"fields,omitempty"`
	// GroupLines holds the raw 4-line group for fixed-pattern matches
	GroupLines []string `json:"group_lines,omitempty"`
}

// Product is one extracted candidate, or a final product after deduplication.
// A candidate always has both a name and a price; strategies never emit a
// candidate missing either.
type Product struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ProductType    string  `json:"product_type"`
	WarrantyMonths int     `json:"warranty_months"`
	// PurchaseDate is ISO YYYY-MM-DD, attached during aggregation. Empty
	// when no date could be recovered from the receipt.
	PurchaseDate string `json:"purchase_date,omitempty"`
	// Confidence is the strategy's structural trust score in [0,1],
	// unrelated to the OCR engine's confidence.
	Confidence float64    `json:"confidence"`
	Source     Provenance `json:"source"`
}

// Strategy is one independent line-parsing heuristic. Strategies consume the
// full line array and never mutate it.
type Strategy interface {
	// Name identifies the strategy in provenance records
	Name() string
	// Parse extracts product candidates from receipt lines
	Parse(lines []string) []Product
}
