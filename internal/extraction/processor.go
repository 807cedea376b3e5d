package extraction

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/myHin/hardware-keeper/internal/ocr"
)

// totalPattern recovers the receipt total from the raw text
var totalPattern = regexp.MustCompile(`(?i)Total:\s*\$?([\d,]+\.?\d*)`)

// ProcessingResult is the pipeline's public output envelope.
//
// Success == false implies Products is empty and Error is set; Success ==
// true implies Error is empty. Zero products with Success == true is a valid
// outcome ("no products found"), distinct from a processing failure.
type ProcessingResult struct {
	Text     ocr.ReceiptText `json:"text"`
	Products []Product       `json:"products"`
	// Store is the first non-empty line of the receipt
	Store string  `json:"store,omitempty"`
	Total float64 `json:"total,omitempty"`
	// Date is the raw extracted date string; ReceiptDate its ISO form
	Date        string `json:"date,omitempty"`
	ReceiptDate string `json:"receipt_date,omitempty"`
	// UsedFallback reports that the configured OCR provider failed and the
	// fixture provider supplied the text instead
	UsedFallback bool   `json:"used_fallback"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// Processor sequences OCR, parsing, and metadata extraction for one receipt
// image. Each Process call is independent; a Processor holds no per-receipt
// state and is safe for concurrent use.
type Processor struct {
	provider ocr.Provider
	fallback ocr.Provider
}

// NewProcessor creates a Processor backed by the given OCR provider, with the
// fixture provider as outage fallback
func NewProcessor(provider ocr.Provider) *Processor {
	return NewProcessorWithFallback(provider, ocr.NewMock())
}

// NewProcessorWithFallback creates a Processor with a custom fallback provider for testing
func NewProcessorWithFallback(provider, fallback ocr.Provider) *Processor {
	return &Processor{
		provider: provider,
		fallback: fallback,
	}
}

// Process runs the full pipeline: OCR, the three parsing strategies,
// deduplication, and receipt metadata extraction. Errors never escape: any
// failure is captured in the result envelope.
func (p *Processor) Process(imageData []byte, contentType string) (result *ProcessingResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Receipt processing panicked", "panic", r)
			result = failureResult(fmt.Sprintf("processing receipt: %v", r))
		}
	}()

	text, usedFallback, err := p.extractText(imageData, contentType)
	if err != nil {
		return failureResult(err.Error())
	}

	products := ParseProducts(text)

	rawDate, receiptDate := ExtractDate(text.RawText)

	result = &ProcessingResult{
		Text:         *text,
		Products:     products,
		Store:        storeName(text),
		Total:        receiptTotal(text.RawText),
		Date:         rawDate,
		ReceiptDate:  receiptDate,
		UsedFallback: usedFallback,
		Success:      true,
	}

	slog.Info("Receipt processed",
		"provider", p.provider.Name(),
		"used_fallback", usedFallback,
		"products", len(products),
		"store", result.Store,
	)

	return result
}

// extractText calls the configured provider and silently downgrades a
// provider failure to the fixture fallback, so parsing always receives
// well-formed text. The downgrade is reported via the usedFallback flag.
func (p *Processor) extractText(imageData []byte, contentType string) (*ocr.ReceiptText, bool, error) {
	text, err := p.provider.ExtractText(imageData, contentType)
	if err == nil {
		return text, false, nil
	}

	slog.Warn("OCR provider failed, falling back to fixture",
		"provider", p.provider.Name(),
		"error", err,
	)

	text, fallbackErr := p.fallback.ExtractText(imageData, contentType)
	if fallbackErr != nil {
		return nil, true, fmt.Errorf("fallback OCR: %w", fallbackErr)
	}
	return text, true, nil
}

// storeName takes the first non-empty line as the store name
func storeName(text *ocr.ReceiptText) string {
	if len(text.Lines) == 0 {
		return ""
	}
	return strings.TrimSpace(text.Lines[0])
}

// receiptTotal extracts the first "Total:" amount, or 0 when absent
func receiptTotal(rawText string) float64 {
	match := totalPattern.FindStringSubmatch(rawText)
	if match == nil {
		return 0
	}
	return parsePrice(match[1])
}

func failureResult(message string) *ProcessingResult {
	return &ProcessingResult{
		Text:     ocr.ReceiptText{Lines: []string{}},
		Products: []Product{},
		Success:  false,
		Error:    message,
	}
}
