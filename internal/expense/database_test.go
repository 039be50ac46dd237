package expense

import (
	"errors"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/scanify/scanify/internal/category"
	"github.com/scanify/scanify/internal/parsing"
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

	newExpense := func(id, email string, createdAt time.Time) *Expense {
		receipt := parsing.Empty()
		receipt.Merchant = "Acme Mart"
		receipt.Total = 315
		receipt.Items = []parsing.Item{
			{Description: "Coffee (x2 @ ₹150.00)", Amount: 300, Currency: "₹", Category: category.FoodAndDrinks},
		}
		return &Expense{
			ID:          id,
			Email:       email,
			Receipt:     receipt,
			Filename:    id + "_receipt.jpg",
			ContentType: "image/jpeg",
			CreatedAt:   createdAt,
		}
	}

	Describe("SaveExpense", func() {
		var (
			expense *Expense
			err     error
		)

		BeforeEach(func() {
			expense = newExpense("test-id", "a@example.com", time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
		})

		JustBeforeEach(func() {
			err = db.SaveExpense(expense)
		})

		When("saving succeeds", func() {
			It("should not return an error", func() {
				Expect(err).NotTo(HaveOccurred())
			})

			It("should round-trip the expense", func() {
				saved, getErr := db.GetExpense("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved).To(Equal(expense))
			})
		})

		When("the expense already exists", func() {
			BeforeEach(func() {
				Expect(db.SaveExpense(expense)).To(Succeed())
				expense = newExpense("test-id", "a@example.com", expense.CreatedAt)
				expense.Merchant = "Corner Shop"
			})

			It("overwrites it", func() {
				saved, getErr := db.GetExpense("test-id")
				Expect(getErr).NotTo(HaveOccurred())
				Expect(saved.Merchant).To(Equal("Corner Shop"))
			})
		})
	})

	Describe("GetExpense", func() {
		When("the expense does not exist", func() {
			It("returns ErrNotFound", func() {
				_, err := db.GetExpense("nonexistent")
				Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
			})
		})
	})

	Describe("ListExpenses", func() {
		var (
			expenses []*Expense
			err      error
		)

		BeforeEach(func() {
			day := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
			Expect(db.SaveExpense(newExpense("old", "a@example.com", day))).To(Succeed())
			Expect(db.SaveExpense(newExpense("new", "a@example.com", day.Add(48*time.Hour)))).To(Succeed())
			Expect(db.SaveExpense(newExpense("other", "b@example.com", day.Add(24*time.Hour)))).To(Succeed())
		})

		JustBeforeEach(func() {
			expenses, err = db.ListExpenses("a@example.com")
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns only that user's expenses, newest first", func() {
			Expect(expenses).To(HaveLen(2))
			Expect(expenses[0].ID).To(Equal("new"))
			Expect(expenses[1].ID).To(Equal("old"))
		})

		It("returns an empty list for unknown users", func() {
			none, err := db.ListExpenses("nobody@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(none).NotTo(BeNil())
			Expect(none).To(BeEmpty())
		})
	})

	Describe("DeleteExpense", func() {
		BeforeEach(func() {
			Expect(db.SaveExpense(newExpense("test-id", "a@example.com", time.Now().UTC()))).To(Succeed())
		})

		It("removes the expense", func() {
			Expect(db.DeleteExpense("test-id")).To(Succeed())
			_, err := db.GetExpense("test-id")
			Expect(errors.Is(err, ErrNotFound)).To(BeTrue())
		})
	})

	Describe("budgets", func() {
		It("round-trips a budget per user", func() {
			budget := &Budget{
				Email:       "a@example.com",
				Preferences: map[category.Category]float64{category.FoodAndDrinks: 40, category.TravelAndTransport: 25.5},
				UpdatedAt:   time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC),
			}
			Expect(db.SaveBudget(budget)).To(Succeed())

			saved, err := db.GetBudget("a@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved).To(Equal(budget))
		})

		It("replaces a previous budget", func() {
			Expect(db.SaveBudget(&Budget{Email: "a@example.com", Preferences: map[category.Category]float64{category.Others: 10}})).To(Succeed())
			Expect(db.SaveBudget(&Budget{Email: "a@example.com", Preferences: map[category.Category]float64{category.Others: 20}})).To(Succeed())

			saved, err := db.GetBudget("a@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Preferences).To(Equal(map[category.Category]float64{category.Others: 20}))
		})

		It("returns ErrNotFound for users without a budget", func() {
			_, err := db.GetBudget("nobody@example.com")
			Expect(err).To(MatchError(ErrNotFound))
		})

		It("keeps budgets apart from expenses", func() {
			Expect(db.SaveBudget(&Budget{Email: "a@example.com", Preferences: map[category.Category]float64{category.Others: 10}})).To(Succeed())
			expenses, err := db.ListExpenses("a@example.com")
			Expect(err).NotTo(HaveOccurred())
			Expect(expenses).To(BeEmpty())
		})
	})

	When("the database is reopened", func() {
		It("keeps the saved expenses", func() {
			Expect(db.SaveExpense(newExpense("test-id", "a@example.com", time.Now().UTC()))).To(Succeed())
			Expect(db.Close()).To(Succeed())

			var err error
			db, err = NewBoltDB(dbPath)
			Expect(err).NotTo(HaveOccurred())
			saved, err := db.GetExpense("test-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(saved.Merchant).To(Equal("Acme Mart"))
		})
	})
})
