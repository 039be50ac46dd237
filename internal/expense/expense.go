// Package expense stores parsed receipts per user and serves them over HTTP.
package expense

import (
	"time"

	"github.com/scanify/scanify/internal/parsing"
)

// Expense is a parsed receipt submitted by one user. The receipt fields are
// serialized flat next to the expense metadata.
type Expense struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	parsing.Receipt
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}
