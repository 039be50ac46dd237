package parsing

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scanify/scanify/internal/category"
)

var _ = Describe("ClassifyItems", func() {
	var (
		lines   []string
		running string
		items   []Item
	)

	BeforeEach(func() {
		running = "₹"
	})

	JustBeforeEach(func() {
		items = ClassifyItems(lines, running)
	})

	Describe("table shape", func() {
		When("the line has quantity, unit price and line total", func() {
			BeforeEach(func() {
				lines = []string{"Coffee 2 150.00 300.00"}
			})

			It("produces one item", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Shape).To(Equal(ShapeTable))
			})

			It("annotates the description with quantity and unit price", func() {
				Expect(items[0].Description).To(Equal("Coffee (x2 @ ₹150.00)"))
			})

			It("uses the line total as amount", func() {
				Expect(items[0].Amount).To(Equal(300.0))
			})

			It("categorizes on the bare description", func() {
				Expect(items[0].Category).To(Equal(category.FoodAndDrinks))
			})
		})

		When("the line total disagrees with quantity times unit price", func() {
			BeforeEach(func() {
				lines = []string{"Widget 3 10.00 31.00"}
			})

			It("keeps the printed line total", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Amount).To(Equal(31.0))
			})
		})

		When("the running currency is not the default", func() {
			BeforeEach(func() {
				running = "$"
				lines = []string{"Coffee 2 150.00 300.00"}
			})

			It("uses the running currency", func() {
				Expect(items[0].Currency).To(Equal("$"))
				Expect(items[0].Description).To(Equal("Coffee (x2 @ $150.00)"))
			})
		})
	})

	Describe("block shape", func() {
		When("item, price and quantity lines follow each other", func() {
			BeforeEach(func() {
				lines = []string{"Item: Notebook", "Price: 50", "Quantity: 3"}
			})

			It("multiplies quantity by price", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Shape).To(Equal(ShapeBlock))
				Expect(items[0].Amount).To(Equal(150.0))
				Expect(items[0].Description).To(Equal("Notebook (x3 @ ₹50.00)"))
				Expect(items[0].Category).To(Equal(category.OfficeAndSupplies))
			})
		})

		When("the price carries a currency and quantity has a unit", func() {
			BeforeEach(func() {
				lines = []string{"Item: Pen", "Price: $2.50", "Quantity: 4 pcs"}
			})

			It("uses the price currency and the first integer of the quantity", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Currency).To(Equal("$"))
				Expect(items[0].Amount).To(Equal(10.0))
				Expect(items[0].Description).To(Equal("Pen (x4 @ $2.50)"))
			})
		})

		When("the quantity is missing", func() {
			BeforeEach(func() {
				lines = []string{"Item: Soap", "Price: 30"}
			})

			It("defaults the quantity to one", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Amount).To(Equal(30.0))
				Expect(items[0].Description).To(Equal("Soap (x1 @ ₹30.00)"))
			})
		})

		When("the quantity is zero", func() {
			BeforeEach(func() {
				lines = []string{"Item: Soap", "Price: 30", "Quantity: 0"}
			})

			It("still produces the item", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Amount).To(Equal(0.0))
			})
		})

		When("more lines follow the block", func() {
			BeforeEach(func() {
				lines = []string{"Item: Soap", "Price: 30", "Quantity: 2", "Notes", "Milk 45"}
			})

			It("consumes exactly three look-ahead lines", func() {
				Expect(items).To(HaveLen(2))
				Expect(items[0].Amount).To(Equal(60.0))
				Expect(items[1].Description).To(Equal("Milk"))
				Expect(items[1].Amount).To(Equal(45.0))
			})
		})

		When("no price follows the item label", func() {
			BeforeEach(func() {
				lines = []string{"Item: Mystery", "Colour red", "Milk 45"}
			})

			It("produces nothing and still consumes the look-ahead lines", func() {
				Expect(items).To(BeEmpty())
			})
		})
	})

	Describe("compact shape", func() {
		When("description, quantity and amount are given", func() {
			BeforeEach(func() {
				lines = []string{"Taxi x1 250"}
			})

			It("treats the amount as the line total", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Shape).To(Equal(ShapeCompact))
				Expect(items[0].Amount).To(Equal(250.0))
				Expect(items[0].Description).To(Equal("Taxi (x1 @ ₹250.00)"))
				Expect(items[0].Category).To(Equal(category.TravelAndTransport))
			})
		})

		When("noise and a currency sit before the amount", func() {
			BeforeEach(func() {
				lines = []string{"Latte x2 @ $9.00"}
			})

			It("derives the unit price from the total", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Currency).To(Equal("$"))
				Expect(items[0].Amount).To(Equal(9.0))
				Expect(items[0].Description).To(Equal("Latte (x2 @ $4.50)"))
			})
		})

		When("the multiplication sign is used", func() {
			BeforeEach(func() {
				lines = []string{"Samosa × 3 60"}
			})

			It("reads the quantity", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Description).To(Equal("Samosa (x3 @ ₹20.00)"))
				Expect(items[0].Amount).To(Equal(60.0))
			})
		})

		When("the quantity is zero", func() {
			BeforeEach(func() {
				lines = []string{"Voucher x0 500"}
			})

			It("uses the raw total as amount and unit price", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Amount).To(Equal(500.0))
				Expect(items[0].Description).To(Equal("Voucher (x0 @ ₹500.00)"))
			})
		})
	})

	Describe("direct-total shape", func() {
		It("recognizes the noiseless layout on its own", func() {
			consumed, item := matchDirectTotal([]string{"Bread x2 €4.40"}, 0, "₹")
			Expect(consumed).To(Equal(1))
			Expect(item).NotTo(BeNil())
			Expect(item.Shape).To(Equal(ShapeDirectTotal))
			Expect(item.Currency).To(Equal("€"))
			Expect(item.Amount).To(Equal(4.4))
			Expect(item.Description).To(Equal("Bread (x2 @ €2.20)"))
		})

		It("does not apply to lines without a quantity marker", func() {
			consumed, item := matchDirectTotal([]string{"Bread 4.40"}, 0, "₹")
			Expect(consumed).To(BeZero())
			Expect(item).To(BeNil())
		})
	})

	Describe("fallback shape", func() {
		When("a line has a description and an amount", func() {
			BeforeEach(func() {
				lines = []string{"Bananas 45.50"}
			})

			It("strips the numbers from the description", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Shape).To(Equal(ShapeFallback))
				Expect(items[0].Description).To(Equal("Bananas"))
				Expect(items[0].Amount).To(Equal(45.5))
			})
		})

		When("the line carries its own currency", func() {
			BeforeEach(func() {
				running = "$"
				lines = []string{"Parking - ₹ 40"}
			})

			It("prefers the line currency", func() {
				Expect(items).To(HaveLen(1))
				Expect(items[0].Currency).To(Equal("₹"))
				Expect(items[0].Description).To(Equal("Parking"))
				Expect(items[0].Category).To(Equal(category.TravelAndTransport))
			})
		})

		When("nothing but an amount is left", func() {
			BeforeEach(func() {
				lines = []string{"₹ 40.00"}
			})

			It("rejects the line", func() {
				Expect(items).To(BeEmpty())
			})
		})
	})

	When("lines carry skip or summary keywords", func() {
		BeforeEach(func() {
			lines = []string{"Total 50", "Subtotal 45", "Tax 5", "Cashier 2", "Payment Mode UPI 100", "Order 7"}
		})

		It("classifies none of them", func() {
			Expect(items).To(BeEmpty())
		})
	})

	When("summary words only appear inside longer words", func() {
		BeforeEach(func() {
			lines = []string{"Tax 5", "Taxi x1 250", "Syntax guide x1 300", "Tax (5%): 15.00", "Totals 20"}
		})

		It("classifies those lines", func() {
			Expect(items).To(HaveLen(2))
			Expect(items[0].Description).To(Equal("Taxi (x1 @ ₹250.00)"))
			Expect(items[0].Amount).To(Equal(250.0))
			Expect(items[1].Description).To(Equal("Syntax guide (x1 @ ₹300.00)"))
			Expect(items[1].Amount).To(Equal(300.0))
		})
	})

	When("several shapes are mixed", func() {
		BeforeEach(func() {
			lines = []string{"Coffee 2 150.00 300.00", "Total 700", "Taxi x1 250", "Bananas 45.50"}
		})

		It("keeps the source order", func() {
			Expect(items).To(HaveLen(3))
			Expect(items[0].Shape).To(Equal(ShapeTable))
			Expect(items[1].Shape).To(Equal(ShapeCompact))
			Expect(items[2].Shape).To(Equal(ShapeFallback))
		})
	})

	When("there are no lines", func() {
		BeforeEach(func() {
			lines = nil
		})

		It("returns an empty, non-nil list", func() {
			Expect(items).NotTo(BeNil())
			Expect(items).To(BeEmpty())
		})
	})
})

var _ = DescribeTable("isSummaryOrMeta",
	func(line string, expected bool) {
		Expect(isSummaryOrMeta(line)).To(Equal(expected))
	},
	Entry("tax line", "Tax 5", true),
	Entry("tax with rate", "Tax (5%): 15.00", true),
	Entry("upper case total", "TOTAL: 315.00", true),
	Entry("subtotal", "Subtotal 45", true),
	Entry("grand total", "Grand Total 50", true),
	Entry("taxes", "Taxes 12", true),
	Entry("metadata keyword", "Cashier 2", true),
	Entry("taxi", "Taxi x1 250", false),
	Entry("syntax", "Syntax guide x1 300", false),
	Entry("plain item", "Bananas 45.50", false),
)
