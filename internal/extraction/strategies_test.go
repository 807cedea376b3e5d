package extraction

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("sameLineStrategy", func() {
	var (
		lines    []string
		products []Product
	)

	JustBeforeEach(func() {
		products = sameLineStrategy{}.Parse(lines)
	})

	When("a line holds a product name and price", func() {
		BeforeEach(func() {
			lines = []string{"Apple Magic Mouse    $79.99"}
		})

		It("extracts one product", func() {
			Expect(products).To(HaveLen(1))
		})

		It("pairs the name with the price", func() {
			Expect(products[0].Name).To(Equal("Apple Magic Mouse"))
			Expect(products[0].Price).To(Equal(79.99))
		})

		It("classifies the product and applies the warranty default", func() {
			Expect(products[0].ProductType).To(Equal("Computer Mouse"))
			Expect(products[0].WarrantyMonths).To(Equal(12))
		})

		It("assigns the same-line confidence score", func() {
			Expect(products[0].Confidence).To(Equal(0.9))
		})

		It("records provenance", func() {
			Expect(products[0].Source.Strategy).To(Equal("sameLine"))
			Expect(products[0].Source.PriceText).To(Equal("$79.99"))
			Expect(products[0].Source.LineIndex).To(Equal(0))
		})
	})

	When("a line carries several prices", func() {
		BeforeEach(func() {
			lines = []string{"2x Widget $10.00 ea $20.00"}
		})

		It("takes the rightmost price and strips the quantity marker", func() {
			Expect(products).To(HaveLen(1))
			Expect(products[0].Price).To(Equal(20.00))
			Expect(products[0].Name).To(Equal("Widget $10.00 ea"))
		})
	})

	When("a line matches the denylist", func() {
		BeforeEach(func() {
			lines = []string{"Subtotal:    $2,609.97"}
		})

		It("extracts nothing", func() {
			Expect(products).To(BeEmpty())
		})
	})

	When("the name is a metadata label", func() {
		BeforeEach(func() {
			lines = []string{"SKU: 12345 $19.99"}
		})

		It("rejects the candidate", func() {
			Expect(products).To(BeEmpty())
		})
	})

	When("the name is purely numeric", func() {
		BeforeEach(func() {
			lines = []string{"12345 $19.99"}
		})

		It("rejects the candidate", func() {
			Expect(products).To(BeEmpty())
		})
	})

	When("the price is outside the accepted band", func() {
		BeforeEach(func() {
			lines = []string{
				"Fancy Yacht Tender $60,000.00",
				"Rounding Artifact $0.00",
			}
		})

		It("rejects both candidates", func() {
			Expect(products).To(BeEmpty())
		})
	})

	When("a comma groups thousands", func() {
		BeforeEach(func() {
			lines = []string{"Apple MacBook Pro 16-inch M3 Pro     $2,499.99"}
		})

		It("parses the full amount", func() {
			Expect(products).To(HaveLen(1))
			Expect(products[0].Price).To(Equal(2499.99))
		})
	})
})

var _ = Describe("tableStrategy", func() {
	var (
		lines    []string
		products []Product
	)

	JustBeforeEach(func() {
		products = tableStrategy{}.Parse(lines)
	})

	When("no table header exists", func() {
		BeforeEach(func() {
			lines = []string{"Gaming Keyboard    $89.99"}
		})

		It("extracts nothing", func() {
			Expect(products).To(BeEmpty())
		})
	})

	When("a header delimits column rows", func() {
		BeforeEach(func() {
			lines = []string{
				"Description          Price",
				"Gaming Keyboard      $89.99",
				"Wireless Mouse       $45.50",
				"Subtotal             $135.49",
				"Random Monitor       $199.99",
			}
		})

		It("parses rows between the header and the end marker", func() {
			Expect(products).To(HaveLen(2))
			Expect(products[0].Name).To(Equal("Gaming Keyboard"))
			Expect(products[0].Price).To(Equal(89.99))
			Expect(products[1].Name).To(Equal("Wireless Mouse"))
			Expect(products[1].Price).To(Equal(45.50))
		})

		It("assigns the column-split confidence score", func() {
			Expect(products[0].Confidence).To(Equal(0.8))
		})
	})

	When("a row lists both a unit price and a line total", func() {
		BeforeEach(func() {
			lines = []string{
				"Item                 Qty    Amount",
				"Gaming Laptop        2      $1,200.00   $2,400.00",
			}
		})

		It("prefers the comma-free price under 1000", func() {
			Expect(products).To(HaveLen(1))
			Expect(products[0].Price).To(Equal(1200.00))
		})
	})

	When("rows mention discounts or promos", func() {
		BeforeEach(func() {
			lines = []string{
				"Product            Cost",
				"Discount applied   $10.00",
				"Promo bundle       $5.00",
				"USB Hub Adapter    $25.00",
			}
		})

		It("skips them", func() {
			Expect(products).To(HaveLen(1))
			Expect(products[0].Name).To(Equal("USB Hub Adapter"))
		})
	})

	When("a product name and its price sit on adjacent lines", func() {
		BeforeEach(func() {
			lines = []string{
				"Description Price",
				"Gaming Monitor 27 inch",
				"Model: XG-2700",
				"$349.99",
			}
		})

		It("pairs them with the lower nearby-price confidence", func() {
			Expect(products).To(HaveLen(1))
			Expect(products[0].Name).To(Equal("Gaming Monitor 27 inch"))
			Expect(products[0].Price).To(Equal(349.99))
			Expect(products[0].Confidence).To(Equal(0.7))
		})
	})

	When("a price never appears within the next three lines", func() {
		BeforeEach(func() {
			lines = []string{
				"Description Price",
				"Gaming Monitor 27 inch",
				"Model: XG-2700",
				"Color: Black",
				"Stock: Warehouse 3",
				"$349.99",
			}
		})

		It("extracts nothing", func() {
			Expect(products).To(BeEmpty())
		})
	})
})

var _ = Describe("fourLineStrategy", func() {
	var (
		lines    []string
		products []Product
	)

	JustBeforeEach(func() {
		products = fourLineStrategy{}.Parse(lines)
	})

	When("no 4-line header exists", func() {
		BeforeEach(func() {
			lines = []string{"USB-C Cable", "1", "$29.99", "$29.99"}
		})

		It("extracts nothing", func() {
			Expect(products).To(BeEmpty())
		})
	})

	When("a header group precedes item groups", func() {
		BeforeEach(func() {
			lines = []string{
				"Description",
				"Quantity",
				"Unit Price",
				"Total Amount",
				"USB-C Cable",
				"1",
				"$29.99",
				"$29.99",
				"Wireless Keyboard",
				"2",
				"$59.99",
				"$119.98",
			}
		})

		It("extracts one product per group", func() {
			Expect(products).To(HaveLen(2))
			Expect(products[0].Name).To(Equal("USB-C Cable"))
			Expect(products[0].Price).To(Equal(29.99))
			Expect(products[1].Name).To(Equal("Wireless Keyboard"))
			Expect(products[1].Price).To(Equal(59.99))
		})

		It("assigns the highest confidence score", func() {
			Expect(products[0].Confidence).To(Equal(0.95))
		})

		It("records the raw group in provenance", func() {
			Expect(products[0].Source.Strategy).To(Equal("fourLine"))
			Expect(products[0].Source.GroupLines).To(Equal([]string{"USB-C Cable", "1", "$29.99", "$29.99"}))
		})
	})

	When("a summary word appears in the name position", func() {
		BeforeEach(func() {
			lines = []string{
				"Item",
				"Qty",
				"Unit",
				"Amount",
				"USB-C Cable",
				"1",
				"$29.99",
				"$29.99",
				"Subtotal",
				"",
				"$29.99",
				"$29.99",
				"Phantom Keyboard",
				"1",
				"$59.99",
				"$59.99",
			}
		})

		It("stops consuming groups entirely", func() {
			Expect(products).To(HaveLen(1))
			Expect(products[0].Name).To(Equal("USB-C Cable"))
		})
	})

	When("a group's unit price line has no currency match", func() {
		BeforeEach(func() {
			lines = []string{
				"Description",
				"Quantity",
				"Unit Price",
				"Total Amount",
				"USB-C Cable",
				"1",
				"twenty-nine",
				"$29.99",
			}
		})

		It("skips that group", func() {
			Expect(products).To(BeEmpty())
		})
	})
})
