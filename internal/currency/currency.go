// Package currency maps the currency signals found on receipts to a canonical
// one-symbol representation.
package currency

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// Pattern matches a currency symbol (group 1) or a three-letter code (group 2).
// Every capture inside it is optional so callers can embed it with a trailing "?".
const Pattern = `(?:(₹|\$|€|£)|\b(INR|USD|EUR|GBP)\b)`

// DefaultSymbol is the symbol used when a receipt carries no currency signal
var DefaultSymbol = grapheme(money.INR)

// symbols maps the supported ISO codes to their canonical symbol
var symbols = map[string]string{
	money.INR: grapheme(money.INR),
	money.USD: grapheme(money.USD),
	money.EUR: grapheme(money.EUR),
	money.GBP: grapheme(money.GBP),
}

func grapheme(code string) string {
	return money.GetCurrency(code).Grapheme
}

// IsSymbol reports whether s is one of the canonical currency symbols
func IsSymbol(s string) bool {
	for _, sym := range symbols {
		if sym == s {
			return true
		}
	}
	return false
}

// Normalize returns the canonical symbol for a detected symbol and/or code.
//
// A known symbol wins. Otherwise the code is uppercased and mapped, and an
// unmapped code is returned uppercased as-is. With neither, DefaultSymbol is
// returned.
func Normalize(symbol, code string) string {
	if symbol != "" && IsSymbol(symbol) {
		return symbol
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code != "" {
		if sym, ok := symbols[code]; ok {
			return sym
		}
		return code
	}
	return DefaultSymbol
}

// Code returns the ISO code for a canonical symbol. Anything else is returned
// unchanged, which keeps unmapped codes produced by Normalize stable.
func Code(symbol string) string {
	for code, sym := range symbols {
		if sym == symbol {
			return code
		}
	}
	return symbol
}
