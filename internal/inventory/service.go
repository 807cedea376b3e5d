package inventory

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/myHin/hardware-keeper/internal/extraction"
)

// ReceiptProcessor runs the extraction pipeline over an uploaded image
type ReceiptProcessor interface {
	Process(imageData []byte, contentType string) *extraction.ProcessingResult
}

// IDGenerator generates unique IDs for products and scans
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service handles inventory operations
type Service struct {
	db          DB
	processor   ReceiptProcessor
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, processor ReceiptProcessor, storage Storage) *Service {
	return &Service{
		db:          db,
		processor:   processor,
		storage:     storage,
		idGenerator: &uuidGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, processor ReceiptProcessor, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		processor:   processor,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	// Keep only alphanumeric, spaces, hyphens, and underscores
	reg := regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	base = reg.ReplaceAllString(base, "")

	reg = regexp.MustCompile(`\s+`)
	base = reg.ReplaceAllString(base, " ")

	base = strings.TrimSpace(base)

	// Phone-generated filenames can be very long
	maxLen := 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}

	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ScanReceipt stores an uploaded receipt image, runs the extraction pipeline
// over it, and persists the scan result. A failed extraction is still a
// stored scan: the result envelope carries the failure.
func (s *Service) ScanReceipt(filename string, data []byte, contentType string) (*ReceiptScan, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	cleanFilename := sanitizeFilename(filename)

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, cleanFilename), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	result := s.processor.Process(data, contentType)
	if !result.Success {
		slog.Error("Receipt extraction failed",
			"filename", filename,
			"content_type", contentType,
			"error", result.Error,
		)
	}

	scan := &ReceiptScan{
		ID:          id,
		Filename:    savedPath,
		ContentType: contentType,
		Result:      result,
		CreatedAt:   now,
	}

	if err := s.db.SaveScan(scan); err != nil {
		// Clean up file if database save fails
		s.storage.Delete(savedPath)
		return nil, fmt.Errorf("saving scan to database: %w", err)
	}

	return scan, nil
}

// GetScan retrieves a receipt scan by ID
func (s *Service) GetScan(id string) (*ReceiptScan, error) {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return nil, fmt.Errorf("getting scan: %w", err)
	}
	return scan, nil
}

// ListScans returns all receipt scans
func (s *Service) ListScans() ([]*ReceiptScan, error) {
	scans, err := s.db.ListScans()
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	return scans, nil
}

// GetScanImage retrieves the stored image for a receipt scan
func (s *Service) GetScanImage(id string) ([]byte, string, error) {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting scan: %w", err)
	}

	data, err := s.storage.Get(scan.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting scan image: %w", err)
	}

	return data, scan.ContentType, nil
}

// DeleteScan removes a receipt scan and its stored image
func (s *Service) DeleteScan(id string) error {
	scan, err := s.db.GetScan(id)
	if err != nil {
		return fmt.Errorf("getting scan for deletion: %w", err)
	}

	if err := s.storage.Delete(scan.Filename); err != nil {
		// Log but continue with database deletion
		slog.Warn("Failed to delete scan image", "filename", scan.Filename, "error", err)
	}

	if err := s.db.DeleteScan(id); err != nil {
		return fmt.Errorf("deleting scan from database: %w", err)
	}
	return nil
}

// dollarsToCents converts a dollar amount to integer cents. Rounding avoids
// float truncation turning 79.99 into 7998 cents.
func dollarsToCents(dollars float64) int {
	return int(math.Round(dollars * 100))
}

// warrantyExpiry derives the expiry date from a purchase date and a warranty
// period. Empty when either input is missing or the date is unparseable.
func warrantyExpiry(purchaseDate string, warrantyMonths int) string {
	if purchaseDate == "" || warrantyMonths <= 0 {
		return ""
	}
	purchased, err := time.Parse("2006-01-02", purchaseDate)
	if err != nil {
		return ""
	}
	return purchased.AddDate(0, warrantyMonths, 0).Format("2006-01-02")
}

// CreateProduct creates a product record from manual entry or a selected
// extraction candidate. Prices arrive in dollars and are stored as cents.
func (s *Service) CreateProduct(data CreateProductData) (*Product, error) {
	if strings.TrimSpace(data.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}

	now := s.timeSource.Now()

	product := &Product{
		ID:                s.idGenerator.Generate(),
		Name:              strings.TrimSpace(data.Name),
		Brand:             data.Brand,
		Model:             data.Model,
		PurchaseDate:      data.PurchaseDate,
		WarrantyMonths:    data.WarrantyMonths,
		WarrantyExpiresAt: warrantyExpiry(data.PurchaseDate, data.WarrantyMonths),
		PurchasePrice:     dollarsToCents(data.PurchasePrice),
		ReceiptScanID:     data.ReceiptScanID,
		Status:            StatusActive,
		IsPublic:          data.IsPublic,
		Notes:             data.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.db.SaveProduct(product); err != nil {
		return nil, fmt.Errorf("saving product: %w", err)
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(id string) (*Product, error) {
	product, err := s.db.GetProduct(id)
	if err != nil {
		return nil, fmt.Errorf("getting product: %w", err)
	}
	return product, nil
}

// ListProducts returns products matching the given filters
func (s *Service) ListProducts(filters ProductFilters) ([]*Product, error) {
	products, err := s.db.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}

	filtered := make([]*Product, 0, len(products))
	for _, product := range products {
		if matchesFilters(product, filters, s.timeSource.Now()) {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

// matchesFilters applies status, search, and warranty-expiry filters
func matchesFilters(product *Product, filters ProductFilters, now time.Time) bool {
	if filters.Status != "" && product.Status != filters.Status {
		return false
	}

	if filters.Search != "" {
		needle := strings.ToLower(filters.Search)
		haystack := strings.ToLower(product.Name + " " + product.Brand + " " + product.Model)
		if !strings.Contains(haystack, needle) {
			return false
		}
	}

	if filters.ExpiringOnly {
		if product.WarrantyExpiresAt == "" {
			return false
		}
		expires, err := time.Parse("2006-01-02", product.WarrantyExpiresAt)
		if err != nil {
			return false
		}
		if expires.After(now.AddDate(0, 0, 30)) {
			return false
		}
	}

	return true
}

// UpdateProduct applies a partial update to a product
func (s *Service) UpdateProduct(id string, data UpdateProductData) (*Product, error) {
	product, err := s.db.GetProduct(id)
	if err != nil {
		return nil, fmt.Errorf("getting product for update: %w", err)
	}

	if data.Name != nil {
		if strings.TrimSpace(*data.Name) == "" {
			return nil, fmt.Errorf("product name cannot be empty")
		}
		product.Name = strings.TrimSpace(*data.Name)
	}
	if data.Brand != nil {
		product.Brand = *data.Brand
	}
	if data.Model != nil {
		product.Model = *data.Model
	}
	if data.PurchaseDate != nil {
		product.PurchaseDate = *data.PurchaseDate
	}
	if data.WarrantyMonths != nil {
		product.WarrantyMonths = *data.WarrantyMonths
	}
	if data.PurchasePrice != nil {
		product.PurchasePrice = dollarsToCents(*data.PurchasePrice)
	}
	if data.Status != nil {
		product.Status = *data.Status
	}
	if data.DiscontinueReason != nil {
		product.DiscontinueReason = *data.DiscontinueReason
	}
	if data.IsPublic != nil {
		product.IsPublic = *data.IsPublic
	}
	if data.Notes != nil {
		product.Notes = *data.Notes
	}

	product.WarrantyExpiresAt = warrantyExpiry(product.PurchaseDate, product.WarrantyMonths)
	product.UpdatedAt = s.timeSource.Now()

	if err := s.db.SaveProduct(product); err != nil {
		return nil, fmt.Errorf("updating product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes a product record. The receipt scan it came from, and
// the stored image, stay until the scan itself is deleted.
func (s *Service) DeleteProduct(id string) error {
	if _, err := s.db.GetProduct(id); err != nil {
		return fmt.Errorf("getting product for deletion: %w", err)
	}

	if err := s.db.DeleteProduct(id); err != nil {
		return fmt.Errorf("deleting product from database: %w", err)
	}
	return nil
}
