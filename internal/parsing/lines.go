package parsing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/scanify/scanify/internal/currency"
)

// lineBreak matches CRLF and every single-character line boundary
var lineBreak = regexp.MustCompile(`\r\n|[\n\v\f\r\x1c\x1d\x1e\x{85}\x{2028}\x{2029}]`)

// Lines splits raw text into trimmed, non-empty lines in their original order.
// Blank lines are dropped, so neighbours in the result need not have been
// adjacent in the source.
func Lines(text string) []string {
	lines := make([]string, 0)
	for _, line := range lineBreak.Split(text, -1) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// number is a numeric token with an optional decimal or thousands separator
const number = `(\d+(?:[.,]\d{1,2})?)`

// amountPattern is an optional currency followed by a number; groups are
// symbol, code, number.
var amountPattern = regexp.MustCompile(`(?i)` + currency.Pattern + `?\s*` + number)

// parseAmount reads a numeric token, treating commas as thousands separators
func parseAmount(token string) (decimal.Decimal, bool) {
	token = strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	if token == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(token)
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

// containsAny reports whether the lowercased line contains any of the keywords
func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
