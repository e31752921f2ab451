package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

type GeneratePayrollRequest struct {
	SiteID    string `json:"site_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollFilter struct {
	SiteID   *string
	WorkerID *string
	Status   *string
}

func (f *PayrollFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusPaid), string(StatusCancelled)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a known status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollResponse struct {
	ID            string          `json:"id"`
	WorkerID      string          `json:"worker_id"`
	WorkerName    string          `json:"worker_name,omitempty"`
	SiteID        string          `json:"site_id"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	DaysWorked    int             `json:"days_worked"`
	OvertimeHours float64         `json:"overtime_hours"`
	DailyWage     decimal.Decimal `json:"daily_wage"`
	BasicPay      decimal.Decimal `json:"basic_pay"`
	OvertimePay   decimal.Decimal `json:"overtime_pay"`
	Deductions    decimal.Decimal `json:"deductions"`
	TotalPay      decimal.Decimal `json:"total_pay"`
	Status        string          `json:"status"`
	PaymentDate   *string         `json:"payment_date,omitempty"`
	ProcessedBy   string          `json:"processed_by"`
	PaidBy        *string         `json:"paid_by,omitempty"`
}
