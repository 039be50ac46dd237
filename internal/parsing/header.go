package parsing

import (
	"regexp"
	"strings"
)

// merchantScanLimit bounds how far down the receipt a merchant name is looked for
const merchantScanLimit = 10

// skipKeywords mark a line as receipt metadata rather than a merchant or item
var skipKeywords = []string{
	"address", "receipt", "invoice", "bill", "tax id", "store name",
	"merchant", "cashier", "order", "payment", "mode", "date",
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
	regexp.MustCompile(`\b(\d{4}[/-]\d{1,2}[/-]\d{1,2})\b`),
	regexp.MustCompile(`([A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4})`),
}

// Merchant returns the merchant name from the head of the receipt.
//
// A "Store Name:" label wins outright. Otherwise the first line without a skip
// keyword is taken.
func Merchant(lines []string) string {
	if len(lines) > merchantScanLimit {
		lines = lines[:merchantScanLimit]
	}
	merchant := ""
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "store name") {
			return afterFirstColon(line)
		}
		if merchant == "" && !containsAny(lower, skipKeywords) {
			merchant = line
		}
	}
	return merchant
}

// Date returns the purchase date as written on the receipt.
//
// Any line mentioning "date" takes priority over pattern matches; the text
// after its last colon is used. Otherwise the first line holding a date-shaped
// token provides it.
func Date(lines []string) string {
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "date") {
			return afterLastColon(line)
		}
	}
	for _, line := range lines {
		for _, p := range datePatterns {
			if m := p.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
	}
	return ""
}

func afterFirstColon(line string) string {
	if _, after, ok := strings.Cut(line, ":"); ok {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(line)
}

func afterLastColon(line string) string {
	if i := strings.LastIndex(line, ":"); i >= 0 {
		return strings.TrimSpace(line[i+1:])
	}
	return strings.TrimSpace(line)
}
