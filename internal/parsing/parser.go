package parsing

import (
	"log/slog"
)

// Parser assembles a Receipt from OCR text. It keeps no state between calls
// and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a Parser that reports defaulted fields to logger.
// A nil logger means slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// Parse extracts a best-effort Receipt from text. It never fails; signals that
// are missing or unreadable leave their fields at the default.
func (p *Parser) Parse(text string) Receipt {
	lines := Lines(text)
	summary := Summarize(lines)

	r := Empty()
	r.Merchant = Merchant(lines)
	r.Date = Date(lines)
	r.Currency = summary.Currency
	r.Subtotal = summary.Subtotal.InexactFloat64()
	r.Tax = summary.Tax.InexactFloat64()
	r.TaxPercent = summary.TaxPercent.InexactFloat64()
	r.Total = summary.Total.InexactFloat64()
	r.Items = ClassifyItems(lines, summary.Currency)

	for _, field := range r.Defaulted() {
		p.logger.Debug("Receipt field defaulted", "field", field, "lines", len(lines))
	}
	return r
}

// Parse extracts a Receipt using a Parser that logs to slog.Default()
func Parse(text string) Receipt {
	return NewParser(nil).Parse(text)
}
