// Package parsing turns the OCR transcript of a purchase receipt into a
// structured expense record.
//
// Receipts have no schema and OCR adds spacing and line-break noise, so every
// stage is a heuristic over the normalized line sequence. No stage returns an
// error: a signal that cannot be read leaves its field at the default value.
package parsing

import (
	"github.com/scanify/scanify/internal/category"
	"github.com/scanify/scanify/internal/currency"
)

// Shape identifies the textual layout an item line was recognized as
type Shape string

const (
	ShapeTable       Shape = "table"
	ShapeBlock       Shape = "block"
	ShapeCompact     Shape = "compact"
	ShapeDirectTotal Shape = "direct_total"
	ShapeFallback    Shape = "fallback"
)

// Item is one purchased line of a receipt. Amount is always the line total.
type Item struct {
	Description string            `json:"description"`
	Amount      float64           `json:"amount"`
	Currency    string            `json:"currency"`
	Category    category.Category `json:"category"`
	Shape       Shape             `json:"-"`
}

// Receipt is the structured record extracted from one OCR transcript
type Receipt struct {
	Merchant   string  `json:"merchant"`
	Date       string  `json:"date"`
	Currency   string  `json:"currency"`
	Subtotal   float64 `json:"subtotal"`
	Tax        float64 `json:"tax"`
	TaxPercent float64 `json:"tax_percent"`
	Total      float64 `json:"total"`
	Items      []Item  `json:"items"`
}

// Empty returns a receipt with every field at its default
func Empty() Receipt {
	return Receipt{
		Currency: currency.DefaultSymbol,
		Items:    []Item{},
	}
}

// Defaulted lists the fields still holding their default value
func (r Receipt) Defaulted() []string {
	var fields []string
	if r.Merchant == "" {
		fields = append(fields, "merchant")
	}
	if r.Date == "" {
		fields = append(fields, "date")
	}
	if r.Currency == "" || r.Currency == currency.DefaultSymbol {
		fields = append(fields, "currency")
	}
	if r.Subtotal == 0 {
		fields = append(fields, "subtotal")
	}
	if r.Tax == 0 {
		fields = append(fields, "tax")
	}
	if r.TaxPercent == 0 {
		fields = append(fields, "tax_percent")
	}
	if r.Total == 0 {
		fields = append(fields, "total")
	}
	if len(r.Items) == 0 {
		fields = append(fields, "items")
	}
	return fields
}
