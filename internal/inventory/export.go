package inventory

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

// ExportWorkbook renders the full inventory as an XLSX workbook and returns
// the serialized file.
func (s *Service) ExportWorkbook() ([]byte, error) {
	products, err := s.db.ListProducts()
	if err != nil {
		return nil, fmt.Errorf("listing products for export: %w", err)
	}

	// Stable row order regardless of bucket iteration
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	headers := []string{
		"Name", "Brand", "Model", "Type/Notes", "Status",
		"Purchase Date", "Price", "Warranty Months", "Warranty Expires",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, product := range products {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), product.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), product.Brand)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), product.Model)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), product.Notes)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), string(product.Status))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), product.PurchaseDate)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), float64(product.PurchasePrice)/100)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), product.WarrantyMonths)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), product.WarrantyExpiresAt)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
