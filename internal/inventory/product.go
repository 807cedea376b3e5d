package inventory

import (
	"time"

	"github.com/myHin/hardware-keeper/internal/extraction"
)

// ProductStatus tracks where a product is in its ownership lifecycle
type ProductStatus string

const (
	StatusActive       ProductStatus = "active"
	StatusDiscontinued ProductStatus = "discontinued"
	StatusBroken       ProductStatus = "broken"
	StatusSold         ProductStatus = "sold"
)

// Product is one item of owned hardware
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
	// PurchaseDate is ISO YYYY-MM-DD, empty when unknown
	PurchaseDate   string `json:"purchase_date,omitempty"`
	WarrantyMonths int    `json:"warranty_months,omitempty"`
	// WarrantyExpiresAt is derived from PurchaseDate + WarrantyMonths
	WarrantyExpiresAt string `json:"warranty_expires_at,omitempty"`
	// PurchasePrice is in cents
	PurchasePrice int `json:"purchase_price,omitempty"`
	// ReceiptScanID links back to the scan this product was extracted from
	ReceiptScanID     string        `json:"receipt_scan_id,omitempty"`
	Status            ProductStatus `json:"status"`
	DiscontinueReason string        `json:"discontinue_reason,omitempty"`
	IsPublic          bool          `json:"is_public"`
	Notes             string        `json:"notes,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// CreateProductData carries the fields for a new product, from manual entry
// or from a selected extraction candidate. PurchasePrice is in dollars; the
// service converts to cents.
type CreateProductData struct {
	Name           string  `json:"name"`
	Brand          string  `json:"brand,omitempty"`
	Model          string  `json:"model,omitempty"`
	PurchaseDate   string  `json:"purchase_date,omitempty"`
	WarrantyMonths int     `json:"warranty_months,omitempty"`
	PurchasePrice  float64 `json:"purchase_price,omitempty"`
	ReceiptScanID  string  `json:"receipt_scan_id,omitempty"`
	IsPublic       bool    `json:"is_public,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// UpdateProductData carries a partial update; nil fields keep their value
type UpdateProductData struct {
	Name              *string        `json:"name,omitempty"`
	Brand             *string        `json:"brand,omitempty"`
	Model             *string        `json:"model,omitempty"`
	PurchaseDate      *string        `json:"purchase_date,omitempty"`
	WarrantyMonths    *int           `json:"warranty_months,omitempty"`
	PurchasePrice     *float64       `json:"purchase_price,omitempty"`
	Status            *ProductStatus `json:"status,omitempty"`
	DiscontinueReason *string        `json:"discontinue_reason,omitempty"`
	IsPublic          *bool          `json:"is_public,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
}

// ProductFilters narrows ListProducts results
type ProductFilters struct {
	Status ProductStatus
	// Search matches case-insensitively against name, brand, and model
	Search string
	// ExpiringOnly keeps products whose warranty expires within 30 days
	ExpiringOnly bool
}

// ReceiptScan records one processed receipt upload: the stored image and the
// full extraction result, kept so candidates can be reviewed later.
type ReceiptScan struct {
	ID          string                       `json:"id"`
	Filename    string                       `json:"filename"`
	ContentType string                       `json:"content_type"`
	Result      *extraction.ProcessingResult `json:"result"`
	CreatedAt   time.Time                    `json:"created_at"`
}

// CandidateData maps an extraction candidate to product-creation fields.
// The coarse category travels in the notes field.
func CandidateData(scanID string, candidate extraction.Product) CreateProductData {
	return CreateProductData{
		Name:           candidate.Name,
		PurchasePrice:  candidate.Price,
		WarrantyMonths: candidate.WarrantyMonths,
		PurchaseDate:   candidate.PurchaseDate,
		ReceiptScanID:  scanID,
		Notes:          candidate.ProductType,
	}
}
