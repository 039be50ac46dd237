package parsing

import (
	"bytes"
	"encoding/json"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scanify/scanify/internal/category"
)

const acmeReceipt = "Store Name: Acme Mart\nDate: 12/05/2024\nCoffee 2 150.00 300.00\nSubtotal: 300.00\nTax (5%): 15.00\nTotal: 315.00"

var _ = Describe("Parse", func() {
	Context("with a table-layout receipt", func() {
		var r Receipt

		BeforeEach(func() {
			r = Parse(acmeReceipt)
		})

		It("extracts the header fields", func() {
			Expect(r.Merchant).To(Equal("Acme Mart"))
			Expect(r.Date).To(Equal("12/05/2024"))
			Expect(r.Currency).To(Equal("₹"))
		})

		It("extracts the summary amounts", func() {
			Expect(r.Subtotal).To(Equal(300.0))
			Expect(r.Tax).To(Equal(15.0))
			Expect(r.TaxPercent).To(Equal(5.0))
			Expect(r.Total).To(Equal(315.0))
		})

		It("extracts the single item", func() {
			Expect(r.Items).To(HaveLen(1))
			Expect(r.Items[0].Description).To(ContainSubstring("Coffee"))
			Expect(r.Items[0].Amount).To(Equal(300.0))
			Expect(r.Items[0].Category).To(Equal(category.FoodAndDrinks))
		})
	})

	Context("with a labelled block receipt", func() {
		It("multiplies price by quantity and resolves the category by table order", func() {
			r := Parse("Item: Notebook\nPrice: 50\nQuantity: 3")
			Expect(r.Items).To(HaveLen(1))
			Expect(r.Items[0].Amount).To(Equal(150.0))
			Expect(r.Items[0].Category).To(Equal(category.OfficeAndSupplies))
		})
	})

	Context("with no merchant or date signals", func() {
		It("leaves both empty", func() {
			var r Receipt
			Expect(func() { r = Parse("Receipt\nPayment Mode: Card\nOrder 42") }).NotTo(Panic())
			Expect(r.Merchant).To(BeEmpty())
			Expect(r.Date).To(BeEmpty())
			Expect(r.Items).To(BeEmpty())
		})
	})

	Context("with a compact line", func() {
		It("produces a travel item", func() {
			r := Parse("Taxi x1 250")
			Expect(r.Items).To(HaveLen(1))
			Expect(r.Items[0].Description).To(ContainSubstring("Taxi"))
			Expect(r.Items[0].Amount).To(Equal(250.0))
			Expect(r.Items[0].Category).To(Equal(category.TravelAndTransport))
		})
	})

	Context("with empty input", func() {
		It("returns the default receipt", func() {
			r := Parse("")
			Expect(r).To(Equal(Empty()))
			Expect(r.Items).NotTo(BeNil())
		})
	})

	Context("with a dollar receipt", func() {
		It("carries the currency into items without their own", func() {
			r := Parse("Joe's Diner\nBurger 1 8.50 8.50\nTotal: $8.50")
			Expect(r.Merchant).To(Equal("Joe's Diner"))
			Expect(r.Currency).To(Equal("$"))
			Expect(r.Items).To(HaveLen(1))
			Expect(r.Items[0].Currency).To(Equal("$"))
			Expect(r.Items[0].Description).To(Equal("Burger (x1 @ $8.50)"))
		})
	})

	It("is deterministic", func() {
		Expect(Parse(acmeReceipt)).To(Equal(Parse(acmeReceipt)))
	})

	DescribeTable("never fails on odd input",
		func(text string) {
			var r Receipt
			Expect(func() { r = Parse(text) }).NotTo(Panic())
			Expect(r.Items).NotTo(BeNil())
			Expect(r.Currency).NotTo(BeEmpty())
			Expect(r.Subtotal).To(BeNumerically(">=", 0))
			Expect(r.Tax).To(BeNumerically(">=", 0))
			Expect(r.TaxPercent).To(BeNumerically(">=", 0))
			Expect(r.Total).To(BeNumerically(">=", 0))
			for _, item := range r.Items {
				Expect(item.Amount).To(BeNumerically(">=", 0))
				Expect(item.Currency).NotTo(BeEmpty())
				Expect(item.Category).NotTo(BeEmpty())
			}
		},
		Entry("only line breaks", "\n\r\n\r"),
		Entry("negative total", "Total: -5.00"),
		Entry("bare labels", "Item:\nPrice:\nQuantity:"),
		Entry("block with unreadable price", "Item: Gadget\nPrice: abc"),
		Entry("tax without amount", "Tax (99%):"),
		Entry("currency symbols only", "₹₹₹ $$ €"),
		Entry("comma soup", "1,2,3,4\n,,,"),
		Entry("quantity markers only", "x x x\n× ×"),
		Entry("unicode noise", "☕ Café ünïcödé 12\n→ 4"),
	)

	It("serializes with the public field names", func() {
		b, err := json.Marshal(Empty())
		Expect(err).NotTo(HaveOccurred())
		Expect(b).To(MatchJSON(`{"merchant":"","date":"","currency":"₹","subtotal":0,"tax":0,"tax_percent":0,"total":0,"items":[]}`))
	})

	Describe("diagnostics", func() {
		var (
			buf    *bytes.Buffer
			parser *Parser
		)

		BeforeEach(func() {
			buf = &bytes.Buffer{}
			parser = NewParser(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
		})

		It("reports only the fields left at their default", func() {
			parser.Parse(acmeReceipt)
			Expect(buf.String()).To(ContainSubstring("field=currency"))
			Expect(buf.String()).NotTo(ContainSubstring("field=merchant"))
			Expect(buf.String()).NotTo(ContainSubstring("field=items"))
		})

		It("reports every field for empty input", func() {
			parser.Parse("")
			for _, field := range []string{"merchant", "date", "currency", "subtotal", "tax", "tax_percent", "total", "items"} {
				Expect(buf.String()).To(ContainSubstring("field=" + field))
			}
		})

		It("does not change the result", func() {
			Expect(parser.Parse(acmeReceipt)).To(Equal(Parse(acmeReceipt)))
		})
	})
})
