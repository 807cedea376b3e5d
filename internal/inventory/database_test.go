package inventory

import (
	"errors"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/myHin/hardware-keeper/internal/extraction"
)

var _ = Describe("BoltDB", func() {
	var (
		tmpDir string
		dbPath string
		db     *BoltDB
	)

	BeforeEach(func() {
		tmpDir = GinkgoT().TempDir()
		dbPath = filepath.Join(tmpDir, "test.db")
		var err error
		db, err = NewBoltDB(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("SaveProduct", func() {
		var (
			product *Product
			err     error
		)

		BeforeEach(func() {
			product = &Product{
				ID:                "test-id",
				Name:              "Apple Magic Mouse",
				Brand:             "Apple",
				PurchaseDate:      "2024-01-15",
				WarrantyMonths:    12,
				WarrantyExpiresAt: "2025-01-15",
				PurchasePrice:     7999,
				Status:            StatusActive,
				CreatedAt:         time.Now(),
				UpdatedAt:         time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveProduct(product)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the product to the database", func() {
				saved, getErr := db.GetProduct("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("test-id"))
			})
		})
	})

	Describe("GetProduct", func() {
		var (
			productID string
			product   *Product
			err       error
		)

		JustBeforeEach(func() {
			product, err = db.GetProduct(productID)
		})

		When("product exists", func() {
			BeforeEach(func() {
				productID = "test-id"
				testProduct := &Product{
					ID:            "test-id",
					Name:          "Apple Magic Mouse",
					PurchasePrice: 7999,
					Status:        StatusActive,
					CreatedAt:     time.Now(),
					UpdatedAt:     time.Now(),
				}
				Expect(db.SaveProduct(testProduct)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return the correct product name", func() {
				Expect(product.Name).To(Equal("Apple Magic Mouse"))
			})

			It("should return the correct price in cents", func() {
				Expect(product.PurchasePrice).To(Equal(7999))
			})

			It("should return the correct status", func() {
				Expect(product.Status).To(Equal(StatusActive))
			})
		})

		When("product does not exist", func() {
			var expectedErr error

			BeforeEach(func() {
				productID = "nonexistent"
				expectedErr = errors.New("product not found: nonexistent")
			})

			It("returns the error", func() {
				Expect(err).To(MatchError(expectedErr))
			})
		})
	})

	Describe("ListProducts", func() {
		var (
			products []*Product
			err      error
		)

		JustBeforeEach(func() {
			products, err = db.ListProducts()
		})

		When("products exist", func() {
			BeforeEach(func() {
				product1 := &Product{ID: "id1", Name: "Product 1", Status: StatusActive}
				product2 := &Product{ID: "id2", Name: "Product 2", Status: StatusSold}
				Expect(db.SaveProduct(product1)).NotTo(HaveOccurred())
				Expect(db.SaveProduct(product2)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return all products", func() {
				Expect(products).To(HaveLen(2))
			})
		})

		When("no products exist", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return an empty list", func() {
				Expect(products).To(BeEmpty())
			})
		})
	})

	Describe("DeleteProduct", func() {
		var (
			productID string
			err       error
		)

		JustBeforeEach(func() {
			err = db.DeleteProduct(productID)
		})

		When("product exists", func() {
			BeforeEach(func() {
				productID = "test-id"
				product := &Product{ID: "test-id", Name: "Test", Status: StatusActive}
				Expect(db.SaveProduct(product)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should remove the product from the database", func() {
				_, getErr := db.GetProduct("test-id")
				Expect(getErr).To(HaveOccurred())
			})
		})

		When("product does not exist", func() {
			BeforeEach(func() {
				productID = "nonexistent"
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})
		})
	})

	Describe("SaveScan", func() {
		var (
			scan *ReceiptScan
			err  error
		)

		BeforeEach(func() {
			scan = &ReceiptScan{
				ID:          "scan-1",
				Filename:    "scan-1_receipt.jpg",
				ContentType: "image/jpeg",
				Result: &extraction.ProcessingResult{
					Products: []extraction.Product{
						{Name: "Apple Magic Mouse", Price: 79.99, ProductType: "Computer Mouse", WarrantyMonths: 12},
					},
					Store:   "Best Buy",
					Success: true,
				},
				CreatedAt: time.Now(),
			}
		})

		JustBeforeEach(func() {
			err = db.SaveScan(scan)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should save the scan to the database", func() {
				saved, getErr := db.GetScan("scan-1")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.ID).To(Equal("scan-1"))
			})

			It("should round-trip the extraction result", func() {
				saved, _ := db.GetScan("scan-1")
				Expect(saved.Result.Success).To(BeTrue())
				Expect(saved.Result.Store).To(Equal("Best Buy"))
				Expect(saved.Result.Products).To(HaveLen(1))
				Expect(saved.Result.Products[0].Price).To(Equal(79.99))
			})
		})
	})

	Describe("GetScan", func() {
		When("scan does not exist", func() {
			It("returns the error", func() {
				_, err := db.GetScan("nonexistent")
				Expect(err).To(MatchError(errors.New("scan not found: nonexistent")))
			})
		})
	})

	Describe("ListScans", func() {
		var (
			scans []*ReceiptScan
			err   error
		)

		JustBeforeEach(func() {
			scans, err = db.ListScans()
		})

		When("scans exist", func() {
			BeforeEach(func() {
				scan1 := &ReceiptScan{ID: "scan-1", CreatedAt: time.Now()}
				scan2 := &ReceiptScan{ID: "scan-2", CreatedAt: time.Now()}
				Expect(db.SaveScan(scan1)).NotTo(HaveOccurred())
				Expect(db.SaveScan(scan2)).NotTo(HaveOccurred())
			})

			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should return all scans", func() {
				Expect(scans).To(HaveLen(2))
			})
		})

		When("no scans exist", func() {
			It("should return an empty list", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(scans).To(BeEmpty())
			})
		})
	})

	Describe("DeleteScan", func() {
		When("scan exists", func() {
			BeforeEach(func() {
				scan := &ReceiptScan{ID: "scan-1", CreatedAt: time.Now()}
				Expect(db.SaveScan(scan)).NotTo(HaveOccurred())
			})

			It("removes the scan from the database", func() {
				Expect(db.DeleteScan("scan-1")).NotTo(HaveOccurred())
				_, getErr := db.GetScan("scan-1")
				Expect(getErr).To(HaveOccurred())
			})
		})
	})

	Describe("Close", func() {
		It("should not return an error", func() {
			err := db.Close()
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
