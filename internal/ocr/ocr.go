package ocr

import "strings"

// ReceiptText is the text recovered from a receipt image.
type ReceiptText struct {
	// RawText is the full recognized text, newline-separated.
	RawText string `json:"raw_text"`
	// Confidence is the OCR engine's own estimate in [0,1]. The parsing
	// pipeline does not validate it.
	Confidence float64 `json:"confidence"`
	// Lines is RawText split on newline with blank lines removed,
	// top-to-bottom as scanned.
	Lines []string `json:"lines"`
}

// Provider defines the interface for OCR text extraction
type Provider interface {
	// ExtractText recognizes text in a receipt image or PDF
	ExtractText(imageData []byte, contentType string) (*ReceiptText, error)
	// Name returns the provider name
	Name() string
	// Close closes the provider and releases resources
	Close() error
}

// newReceiptText builds a ReceiptText from raw text, dropping blank lines.
func newReceiptText(rawText string, confidence float64) *ReceiptText {
	lines := make([]string, 0)
	for _, line := range strings.Split(rawText, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return &ReceiptText{
		RawText:    rawText,
		Confidence: confidence,
		Lines:      lines,
	}
}
