package inventory

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"
)

var _ = Describe("ExportWorkbook", func() {
	var (
		db      *mockDB
		service *Service
		data    []byte
		err     error
	)

	BeforeEach(func() {
		db = newMockDB()
		service = NewService(db, newMockProcessor(), newMockStorage())
	})

	JustBeforeEach(func() {
		data, err = service.ExportWorkbook()
	})

	When("products exist", func() {
		BeforeEach(func() {
			db.products["p1"] = &Product{
				ID:                "p1",
				Name:              "Apple Magic Mouse",
				Brand:             "Apple",
				Notes:             "Computer Mouse",
				Status:            StatusActive,
				PurchaseDate:      "2024-01-15",
				PurchasePrice:     7999,
				WarrantyMonths:    12,
				WarrantyExpiresAt: "2025-01-15",
				CreatedAt:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			}
			db.products["p2"] = &Product{
				ID:        "p2",
				Name:      "Dell Monitor",
				Status:    StatusSold,
				CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			}
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("writes a header row and one row per product", func() {
			f, openErr := excelize.OpenReader(bytes.NewReader(data))
			Expect(openErr).NotTo(HaveOccurred())
			defer f.Close()

			rows, rowsErr := f.GetRows("Products")
			Expect(rowsErr).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0][0]).To(Equal("Name"))
		})

		It("orders rows by creation time", func() {
			f, openErr := excelize.OpenReader(bytes.NewReader(data))
			Expect(openErr).NotTo(HaveOccurred())
			defer f.Close()

			rows, _ := f.GetRows("Products")
			Expect(rows[1][0]).To(Equal("Apple Magic Mouse"))
			Expect(rows[2][0]).To(Equal("Dell Monitor"))
		})

		It("writes the price in dollars", func() {
			f, openErr := excelize.OpenReader(bytes.NewReader(data))
			Expect(openErr).NotTo(HaveOccurred())
			defer f.Close()

			price, cellErr := f.GetCellValue("Products", "G2")
			Expect(cellErr).NotTo(HaveOccurred())
			Expect(price).To(Equal("79.99"))
		})
	})

	When("no products exist", func() {
		It("writes only the header row", func() {
			Expect(err).NotTo(HaveOccurred())

			f, openErr := excelize.OpenReader(bytes.NewReader(data))
			Expect(openErr).NotTo(HaveOccurred())
			defer f.Close()

			rows, rowsErr := f.GetRows("Products")
			Expect(rowsErr).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})
})
