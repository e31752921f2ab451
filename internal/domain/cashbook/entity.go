package cashbook

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeCredit = "credit"
	TypeDebit  = "debit"
)

// Transaction is one cashbook line for a site.
type Transaction struct {
	ID          string
	SiteID      string
	Type        string
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	RecordedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
