package ocr

import (
	"fmt"
	"time"
)

// Mock implements the Provider interface with a fixed sample receipt. It is
// used when no OCR credential is configured and as the fallback when a real
// provider fails, so the parsing pipeline always receives well-formed text.
type Mock struct {
	now func() time.Time
}

// NewMock creates a new Mock Provider instance
func NewMock() *Mock {
	return &Mock{now: time.Now}
}

// NewMockWithClock creates a Mock Provider with a fixed clock for testing
func NewMockWithClock(now func() time.Time) *Mock {
	return &Mock{now: now}
}

// fixtureReceipt is the deterministic sample receipt. It contains three
// products, so a fallback run always yields the same candidate set.
const fixtureReceipt = `Best Buy
Store #1234 - Electronics Store
123 Main Street, City, State 12345
Tel: (555) 123-4567

Receipt #: REC-2024-001234
Date: %s
Cashier: John D.

ITEMS PURCHASED:
Apple MacBook Pro 16-inch M3 Pro     $2,499.99
- Model: MacBook Pro 16" M3 Pro
- SKU: MBP16-M3P-1TB-SG
- Warranty: 1 Year Limited Warranty

Apple Magic Mouse                      $79.99
- Model: Magic Mouse (3rd Gen)
- SKU: MM-3G-WHITE

USB-C Charging Cable                   $29.99
- Model: USB-C to USB-C Cable 2m
- Brand: Apple

Subtotal:                           $2,609.97
Tax (8.5%%):                          $221.85
Total:                              $2,831.82

Payment Method: Credit Card ****1234
Thank you for shopping with us!

Return Policy: 30 days with receipt
Warranty Information: Products include manufacturer warranty
For warranty claims, visit support.apple.com`

// ExtractText returns the fixture receipt stamped with the current date
func (m *Mock) ExtractText(imageData []byte, contentType string) (*ReceiptText, error) {
	rawText := fmt.Sprintf(fixtureReceipt, m.now().Format("01/02/2006"))
	return newReceiptText(rawText, 0.95), nil
}

// Name returns the provider name
func (m *Mock) Name() string {
	return "mock"
}

// Close closes the Mock provider (no-op)
func (m *Mock) Close() error {
	return nil
}
