package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	StatusPending   PayrollStatus = "pending"
	StatusPaid      PayrollStatus = "paid"
	StatusCancelled PayrollStatus = "cancelled"
)

// HoursPerWorkday is the baseline workday used for the overtime rate:
// one overtime hour pays dailyWage/8 * 1.5.
const HoursPerWorkday = 8

// OvertimeMultiplier applied on top of the hourly rate.
var OvertimeMultiplier = decimal.NewFromFloat(1.5)

// PayrollRecord is derived, not source of truth: it is recomputed per
// generation request for a (worker, site, start, end) window. The
// invariant TotalPay = BasicPay + OvertimePay - Deductions always holds.
type PayrollRecord struct {
	ID        string
	WorkerID  string
	SiteID    string
	StartDate time.Time
	EndDate   time.Time

	DaysWorked    int
	OvertimeHours float64
	DailyWage     decimal.Decimal
	BasicPay      decimal.Decimal
	OvertimePay   decimal.Decimal
	Deductions    decimal.Decimal
	TotalPay      decimal.Decimal

	Status      PayrollStatus
	PaymentDate *time.Time
	ProcessedBy string
	PaidBy      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	WorkerName *string
}
