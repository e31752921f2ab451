package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Worker is one roster entry. Identity (ID, Name) is immutable after
// creation; wage, status and skills may change.
type Worker struct {
	ID        string
	Name      string
	SiteID    string
	Phone     string
	Skills    []string
	DailyWage decimal.Decimal
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	SiteName *string
}
