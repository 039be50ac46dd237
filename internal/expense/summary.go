package expense

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/scanify/scanify/internal/category"
	"github.com/scanify/scanify/internal/currency"
)

// monthLayout groups expenses by the month they were submitted in
const monthLayout = "2006-01"

// unknownMerchant labels expenses whose merchant could not be read
const unknownMerchant = "unknown"

// Total is an amount aggregated under a name
type Total struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

// Summary is the spending breakdown of one user
type Summary struct {
	ByCategory    []Total `json:"by_category"`
	ByMerchant    []Total `json:"by_merchant"`
	MonthlyTrend  []Total `json:"monthly_trend"`
	Currency      string  `json:"currency"`
	TotalSpend    float64 `json:"total_spend"`
	ReceiptsCount int     `json:"receipts_count"`
}

// TaxSummary is the tax paid by one user
type TaxSummary struct {
	TotalTax        float64 `json:"total_tax"`
	AvgTaxRate      float64 `json:"avg_tax_rate"`
	ReceiptsWithTax int     `json:"receipts_with_tax"`
	Currency        string  `json:"currency"`
}

// tally sums amounts per name and remembers first-seen order
type tally struct {
	names []string
	sums  map[string]decimal.Decimal
}

func newTally() *tally {
	return &tally{sums: make(map[string]decimal.Decimal)}
}

func (t *tally) add(name string, amount decimal.Decimal) {
	sum, ok := t.sums[name]
	if !ok {
		t.names = append(t.names, name)
	}
	t.sums[name] = sum.Add(amount)
}

// byAmount returns the totals largest first, ties by name
func (t *tally) byAmount() []Total {
	totals := t.totals()
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Name < totals[j].Name
	})
	return totals
}

// byName returns the totals in ascending name order
func (t *tally) byName() []Total {
	totals := t.totals()
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Name < totals[j].Name
	})
	return totals
}

func (t *tally) totals() []Total {
	totals := make([]Total, 0, len(t.names))
	for _, name := range t.names {
		totals = append(totals, Total{Name: name, Total: round(t.sums[name])})
	}
	return totals
}

// Summarize breaks spending down by category, merchant and month
func Summarize(expenses []*Expense) *Summary {
	byCategory := newTally()
	byMerchant := newTally()
	byMonth := newTally()
	spend := decimal.Zero

	for _, e := range expenses {
		for _, item := range e.Items {
			byCategory.add(string(categoryOf(item.Category)), decimal.NewFromFloat(item.Amount))
		}

		merchant := e.Merchant
		if merchant == "" {
			merchant = unknownMerchant
		}
		total := decimal.NewFromFloat(e.Total)
		byMerchant.add(merchant, total)
		byMonth.add(e.CreatedAt.UTC().Format(monthLayout), total)
		spend = spend.Add(total)
	}

	return &Summary{
		ByCategory:    byCategory.byAmount(),
		ByMerchant:    byMerchant.byAmount(),
		MonthlyTrend:  byMonth.byName(),
		Currency:      commonCurrency(expenses),
		TotalSpend:    round(spend),
		ReceiptsCount: len(expenses),
	}
}

// SummarizeTax totals the tax and averages the tax rate over all expenses
func SummarizeTax(expenses []*Expense) *TaxSummary {
	tax := decimal.Zero
	rates := decimal.Zero
	withTax := 0
	for _, e := range expenses {
		tax = tax.Add(decimal.NewFromFloat(e.Tax))
		rates = rates.Add(decimal.NewFromFloat(e.TaxPercent))
		if e.Tax > 0 {
			withTax++
		}
	}

	return &TaxSummary{
		TotalTax:        round(tax),
		AvgTaxRate:      round(mean(rates, len(expenses))),
		ReceiptsWithTax: withTax,
		Currency:        commonCurrency(expenses),
	}
}

// commonCurrency returns the most frequent expense currency. Ties go to the
// currency seen first.
func commonCurrency(expenses []*Expense) string {
	var (
		order  []string
		counts = make(map[string]int)
	)
	for _, e := range expenses {
		cur := e.Currency
		if cur == "" {
			cur = currency.DefaultSymbol
		}
		if counts[cur] == 0 {
			order = append(order, cur)
		}
		counts[cur]++
	}

	best := currency.DefaultSymbol
	bestCount := 0
	for _, cur := range order {
		if counts[cur] > bestCount {
			best, bestCount = cur, counts[cur]
		}
	}
	return best
}

func categoryOf(c category.Category) category.Category {
	if c == "" {
		return category.Uncategorized
	}
	return c
}

func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(n)))
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
