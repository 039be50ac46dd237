package parsing

import (
	"fmt"
	"strings"

	"github.com/scanify/scanify/internal/category"
	"github.com/scanify/scanify/internal/currency"
)

// Render renders a receipt as a fixed-layout, human-readable text report
func Render(r Receipt) string {
	cur := r.Currency
	if cur == "" {
		cur = currency.DefaultSymbol
	}

	lines := []string{
		"Processed Receipt Report",
		"Merchant: " + r.Merchant,
		"Date: " + r.Date,
		fmt.Sprintf("Total: %s%.2f", cur, r.Total),
		"",
		"Items:",
	}
	for _, item := range r.Items {
		itemCur := item.Currency
		if itemCur == "" {
			itemCur = cur
		}
		cat := item.Category
		if cat == "" {
			cat = category.Uncategorized
		}
		lines = append(lines, fmt.Sprintf("%s - %s%.2f (%s)", item.Description, itemCur, item.Amount, cat))
	}

	if r.Subtotal != 0 {
		lines = append(lines, "", fmt.Sprintf("Subtotal: %s%.2f", cur, r.Subtotal))
	}
	if r.Tax != 0 || r.TaxPercent != 0 {
		var parts []string
		if r.TaxPercent != 0 {
			parts = append(parts, fmt.Sprintf("%.2f%%", r.TaxPercent))
		}
		if r.Tax != 0 {
			parts = append(parts, fmt.Sprintf("(%s%.2f)", cur, r.Tax))
		}
		lines = append(lines, "Tax: "+strings.Join(parts, " "))
	}

	return strings.Join(lines, "\n")
}
