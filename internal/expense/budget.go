package expense

import (
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/scanify/scanify/internal/category"
)

var hundred = decimal.NewFromInt(100)

// Budget is the share of total spend, in percent, a user allows per category
type Budget struct {
	Email       string                        `json:"email"`
	Preferences map[category.Category]float64 `json:"preferences"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

// BudgetAlert is a category whose share of spend is above its budget
type BudgetAlert struct {
	Category          category.Category `json:"category"`
	CurrentPercentage float64           `json:"current_percentage"`
	BudgetPercentage  float64           `json:"budget_percentage"`
	OverspendAmount   float64           `json:"overspend_amount"`
}

// BudgetAlerts lists the categories over budget, largest share first
type BudgetAlerts struct {
	Alerts    []BudgetAlert `json:"alerts"`
	HasAlerts bool          `json:"has_alerts"`
}

// CategoryRatio is the spend of one category and its share of total spend
type CategoryRatio struct {
	Category   category.Category `json:"category"`
	Amount     float64           `json:"amount"`
	Percentage float64           `json:"percentage"`
}

// CategoryRatios breaks total spend down into category shares
type CategoryRatios struct {
	Ratios     []CategoryRatio `json:"category_ratios"`
	TotalSpend float64         `json:"total_spend"`
	Currency   string          `json:"currency"`
}

// Overview is the dashboard headline of one user
type Overview struct {
	YearToDateSpend float64 `json:"year_to_date_spend"`
	ThisMonthSpend  float64 `json:"this_month_spend"`
	ReceiptsCount   int     `json:"receipts_count"`
	CategoriesCount int     `json:"categories_count"`
	Currency        string  `json:"currency"`
}

// validatePreferences checks that every category is known and the
// percentages add up to at most 100
func validatePreferences(prefs map[category.Category]float64) error {
	if len(prefs) == 0 {
		return fmt.Errorf("%w: preferences are required", ErrInvalidInput)
	}

	names := make([]category.Category, 0, len(prefs))
	for c := range prefs {
		names = append(names, c)
	}
	slices.Sort(names)

	known := category.All()
	sum := decimal.Zero
	for _, c := range names {
		if !slices.Contains(known, c) {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c)
		}
		p := decimal.NewFromFloat(prefs[c])
		if p.IsNegative() || p.GreaterThan(hundred) {
			return fmt.Errorf("%w: percentage for %q must be between 0 and 100", ErrInvalidInput, c)
		}
		sum = sum.Add(p)
	}
	if sum.GreaterThan(hundred) {
		return fmt.Errorf("%w: total percentage cannot exceed 100%%", ErrInvalidInput)
	}
	return nil
}

// categoryShare is the unrounded spend and share of one category
type categoryShare struct {
	category category.Category
	amount   decimal.Decimal
	percent  decimal.Decimal
}

// categoryShares sums item amounts per category and relates them to the sum
// of receipt totals. Shares are zero when nothing was spent.
func categoryShares(expenses []*Expense) ([]categoryShare, decimal.Decimal) {
	byCategory := newTally()
	spend := decimal.Zero
	for _, e := range expenses {
		for _, item := range e.Items {
			byCategory.add(string(categoryOf(item.Category)), decimal.NewFromFloat(item.Amount))
		}
		spend = spend.Add(decimal.NewFromFloat(e.Total))
	}

	shares := make([]categoryShare, 0, len(byCategory.names))
	for _, t := range byCategory.byAmount() {
		amount := byCategory.sums[t.Name]
		percent := decimal.Zero
		if spend.IsPositive() {
			percent = amount.Div(spend).Mul(hundred)
		}
		shares = append(shares, categoryShare{
			category: category.Category(t.Name),
			amount:   amount,
			percent:  percent,
		})
	}
	return shares, spend
}

// NewCategoryRatios computes each category's share of total spend
func NewCategoryRatios(expenses []*Expense) *CategoryRatios {
	shares, spend := categoryShares(expenses)
	ratios := make([]CategoryRatio, 0, len(shares))
	for _, s := range shares {
		ratios = append(ratios, CategoryRatio{
			Category:   s.category,
			Amount:     round(s.amount),
			Percentage: round(s.percent),
		})
	}
	return &CategoryRatios{
		Ratios:     ratios,
		TotalSpend: round(spend),
		Currency:   commonCurrency(expenses),
	}
}

// CheckBudget compares category shares with the budget. Categories without a
// positive budget never alert.
func CheckBudget(expenses []*Expense, budget *Budget) *BudgetAlerts {
	alerts := &BudgetAlerts{Alerts: make([]BudgetAlert, 0)}
	if budget == nil {
		return alerts
	}

	shares, _ := categoryShares(expenses)
	for _, s := range shares {
		limit := decimal.NewFromFloat(budget.Preferences[s.category])
		if !limit.IsPositive() || !s.percent.GreaterThan(limit) {
			continue
		}
		alerts.Alerts = append(alerts.Alerts, BudgetAlert{
			Category:          s.category,
			CurrentPercentage: round(s.percent),
			BudgetPercentage:  budget.Preferences[s.category],
			OverspendAmount:   round(s.percent.Sub(limit)),
		})
	}
	alerts.HasAlerts = len(alerts.Alerts) > 0
	return alerts
}

// NewOverview summarizes spend for the year and month containing now
func NewOverview(expenses []*Expense, now time.Time) *Overview {
	now = now.UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	yearSpend := decimal.Zero
	monthSpend := decimal.Zero
	categories := make(map[category.Category]struct{})
	for _, e := range expenses {
		created := e.CreatedAt.UTC()
		total := decimal.NewFromFloat(e.Total)
		if !created.Before(yearStart) {
			yearSpend = yearSpend.Add(total)
		}
		if !created.Before(monthStart) && created.Before(nextMonth) {
			monthSpend = monthSpend.Add(total)
		}
		for _, item := range e.Items {
			categories[categoryOf(item.Category)] = struct{}{}
		}
	}

	return &Overview{
		YearToDateSpend: round(yearSpend),
		ThisMonthSpend:  round(monthSpend),
		ReceiptsCount:   len(expenses),
		CategoriesCount: len(categories),
		Currency:        commonCurrency(expenses),
	}
}

// sortedPreferences lists budget categories in name order for logging
func sortedPreferences(prefs map[category.Category]float64) []string {
	names := make([]string, 0, len(prefs))
	for c := range prefs {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}
