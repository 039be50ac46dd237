package parsing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scanify/scanify/internal/currency"
)

// taxPattern groups: percent, symbol, code, amount
var taxPattern = regexp.MustCompile(`(?i)Tax\s*\(?\s*(\d{1,2}(?:\.\d{1,2})?)?\s*%?\s*(?:GST)?\)?\s*[:\-]?\s*` +
	currency.Pattern + `?\s*` + number)

// Summary holds the receipt-level amounts and the running currency
type Summary struct {
	Currency   string
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	TaxPercent decimal.Decimal
	Total      decimal.Decimal
}

// Summarize scans every line in order for tax, subtotal, total and currency
// signals. Later matches overwrite earlier ones.
func Summarize(lines []string) Summary {
	s := Summary{Currency: currency.DefaultSymbol}
	for _, line := range lines {
		lower := strings.ToLower(line)

		if m := taxPattern.FindStringSubmatch(line); m != nil {
			s.TaxPercent, _ = parseAmount(m[1])
			s.Tax, _ = parseAmount(m[4])
			if m[2] != "" || m[3] != "" {
				s.Currency = currency.Normalize(m[2], m[3])
			}
		}

		m := amountPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if m[1] != "" || m[2] != "" {
			s.Currency = currency.Normalize(m[1], m[2])
		}
		value, ok := parseAmount(m[3])
		if !ok {
			continue
		}
		// "subtotal" contains "total", so it has to be checked first
		switch {
		case strings.Contains(lower, "subtotal"):
			s.Subtotal = value
		case strings.Contains(lower, "total"):
			s.Total = value
		}
	}
	return s
}
