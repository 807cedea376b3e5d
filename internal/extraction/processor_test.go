package extraction

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/myHin/hardware-keeper/internal/ocr"
)

// stubProvider returns canned text or a canned error
type stubProvider struct {
	text *ocr.ReceiptText
	err  error
}

func (s *stubProvider) ExtractText(imageData []byte, contentType string) (*ocr.ReceiptText, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.text, nil
}

func (s *stubProvider) Name() string { return "stub" }
func (s *stubProvider) Close() error { return nil }

var _ = Describe("Processor", func() {
	var (
		provider *stubProvider
		fallback ocr.Provider
		result   *ProcessingResult
	)

	BeforeEach(func() {
		provider = &stubProvider{}
		fallback = ocr.NewMockWithClock(func() time.Time {
			return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
		})
	})

	JustBeforeEach(func() {
		processor := NewProcessorWithFallback(provider, fallback)
		result = processor.Process([]byte("image-bytes"), "image/png")
	})

	When("the provider returns a parseable receipt", func() {
		BeforeEach(func() {
			provider.text = receiptText("Best Buy\nDate: 03/15/2024\nApple Magic Mouse    $79.99\nTotal: $79.99")
		})

		It("succeeds without using the fallback", func() {
			Expect(result.Success).To(BeTrue())
			Expect(result.Error).To(BeEmpty())
			Expect(result.UsedFallback).To(BeFalse())
		})

		It("extracts the products", func() {
			Expect(result.Products).To(HaveLen(1))
			Expect(result.Products[0].Name).To(Equal("Apple Magic Mouse"))
		})

		It("extracts the store name from the first line", func() {
			Expect(result.Store).To(Equal("Best Buy"))
		})

		It("extracts the total", func() {
			Expect(result.Total).To(Equal(79.99))
		})

		It("extracts both date forms", func() {
			Expect(result.Date).To(Equal("03/15/2024"))
			Expect(result.ReceiptDate).To(Equal("2024-03-15"))
		})
	})

	When("the receipt carries a malformed date", func() {
		BeforeEach(func() {
			provider.text = receiptText("Corner Shop\nDate: not-a-date\nWidget Stand    $5.00")
		})

		It("still succeeds", func() {
			Expect(result.Success).To(BeTrue())
			Expect(result.Products).To(HaveLen(1))
		})

		It("reports the raw date but no normalized date", func() {
			Expect(result.Date).To(Equal("not-a-date"))
			Expect(result.ReceiptDate).To(BeEmpty())
			Expect(result.Products[0].PurchaseDate).To(BeEmpty())
		})
	})

	When("the receipt contains no products", func() {
		BeforeEach(func() {
			provider.text = receiptText("Thank you for shopping with us!")
		})

		It("succeeds with an empty product list", func() {
			Expect(result.Success).To(BeTrue())
			Expect(result.Error).To(BeEmpty())
			Expect(result.Products).To(BeEmpty())
		})
	})

	When("the provider fails on every call", func() {
		BeforeEach(func() {
			provider.err = errors.New("quota exceeded")
		})

		It("falls back to the fixture provider and still succeeds", func() {
			Expect(result.Success).To(BeTrue())
			Expect(result.UsedFallback).To(BeTrue())
		})

		It("yields the fixture's fixed product set", func() {
			Expect(result.Products).To(HaveLen(3))

			names := make([]string, 0, len(result.Products))
			for _, p := range result.Products {
				names = append(names, p.Name)
			}
			Expect(names).To(ConsistOf(
				"Apple MacBook Pro 16-inch M3 Pro",
				"Apple Magic Mouse",
				"USB-C Charging Cable",
			))
		})

		It("dates the fixture products with the fixture clock", func() {
			for _, p := range result.Products {
				Expect(p.PurchaseDate).To(Equal("2024-03-15"))
			}
		})
	})

	When("the fallback fails as well", func() {
		BeforeEach(func() {
			provider.err = errors.New("quota exceeded")
			fallback = &stubProvider{err: errors.New("fixture unavailable")}
		})

		It("returns a failure envelope", func() {
			Expect(result.Success).To(BeFalse())
			Expect(result.Error).NotTo(BeEmpty())
			Expect(result.Products).To(BeEmpty())
		})
	})

	Describe("invariants", func() {
		testCases := []struct {
			description string
			setup       func()
		}{
			{"successful parse", func() {
				provider.text = receiptText("Store\nWidget Stand    $5.00")
			}},
			{"total outage", func() {
				provider.err = errors.New("down")
				fallback = &stubProvider{err: errors.New("down too")}
			}},
		}

		for _, tc := range testCases {
			tc := tc
			When(tc.description, func() {
				BeforeEach(tc.setup)

				It("keeps success and error mutually exclusive", func() {
					if result.Success {
						Expect(result.Error).To(BeEmpty())
					} else {
						Expect(result.Error).NotTo(BeEmpty())
						Expect(result.Products).To(BeEmpty())
					}
				})

				It("keeps every price inside the accepted band", func() {
					for _, p := range result.Products {
						Expect(p.Price).To(BeNumerically(">=", 0.01))
						Expect(p.Price).To(BeNumerically("<=", 50000))
					}
				})
			})
		}
	})
})
