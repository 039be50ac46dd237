package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Summarize", func() {
	var (
		lines   []string
		summary Summary
	)

	JustBeforeEach(func() {
		summary = Summarize(lines)
	})

	When("the receipt has subtotal, tax and total lines", func() {
		BeforeEach(func() {
			lines = []string{"Subtotal: 300.00", "Tax (5%): 15.00", "Total: 315.00"}
		})

		It("assigns the subtotal before considering total", func() {
			Expect(summary.Subtotal.InexactFloat64()).To(Equal(300.0))
		})

		It("reads the tax amount and rate", func() {
			Expect(summary.Tax.InexactFloat64()).To(Equal(15.0))
			Expect(summary.TaxPercent.InexactFloat64()).To(Equal(5.0))
		})

		It("reads the total", func() {
			Expect(summary.Total.InexactFloat64()).To(Equal(315.0))
		})

		It("keeps the default currency", func() {
			Expect(summary.Currency).To(Equal("₹"))
		})
	})

	When("a total line carries a currency symbol", func() {
		BeforeEach(func() {
			lines = []string{"Total: $42.50"}
		})

		It("updates the currency and the total", func() {
			Expect(summary.Currency).To(Equal("$"))
			Expect(summary.Total.InexactFloat64()).To(Equal(42.5))
		})
	})

	When("several totals appear", func() {
		BeforeEach(func() {
			lines = []string{"Total: 10.00", "Grand Total: 12.00"}
		})

		It("keeps the last one", func() {
			Expect(summary.Total.InexactFloat64()).To(Equal(12.0))
		})
	})

	When("currency signals change along the receipt", func() {
		BeforeEach(func() {
			lines = []string{"Subtotal: €10", "Total: USD 12", "Thanks 123"}
		})

		It("keeps the last explicit signal", func() {
			Expect(summary.Currency).To(Equal("$"))
		})
	})

	When("tax is annotated as GST with a symbol", func() {
		BeforeEach(func() {
			lines = []string{"Subtotal: £200", "Tax (18% GST): ₹36.00"}
		})

		It("reads the rate and the amount", func() {
			Expect(summary.TaxPercent.InexactFloat64()).To(Equal(18.0))
			Expect(summary.Tax.InexactFloat64()).To(Equal(36.0))
		})

		It("takes the currency from the tax line", func() {
			Expect(summary.Currency).To(Equal("₹"))
		})
	})

	When("tax has no rate", func() {
		BeforeEach(func() {
			lines = []string{"Tax: 7.25"}
		})

		It("leaves the rate at zero", func() {
			Expect(summary.Tax.InexactFloat64()).To(Equal(7.25))
			Expect(summary.TaxPercent.IsZero()).To(BeTrue())
		})
	})

	When("there are no summary lines", func() {
		BeforeEach(func() {
			lines = []string{"Acme", "Coffee 2 150.00 300.00"}
		})

		It("leaves every amount at zero", func() {
			Expect(summary.Subtotal.IsZero()).To(BeTrue())
			Expect(summary.Tax.IsZero()).To(BeTrue())
			Expect(summary.TaxPercent.IsZero()).To(BeTrue())
			Expect(summary.Total.IsZero()).To(BeTrue())
			Expect(summary.Currency).To(Equal("₹"))
		})
	})
})
