package worker

import (
	"github.com/shopspring/decimal"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name      string          `json:"name"`
	SiteID    string          `json:"site_id"`
	Phone     string          `json:"phone,omitempty"`
	Skills    []string        `json:"skills,omitempty"`
	DailyWage decimal.Decimal `json:"daily_wage"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	if r.DailyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_wage", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateWorkerRequest intentionally omits name: worker identity is
// immutable once created.
type UpdateWorkerRequest struct {
	ID        string           `json:"-"`
	SiteID    *string          `json:"site_id,omitempty"`
	Phone     *string          `json:"phone,omitempty"`
	Skills    []string         `json:"skills,omitempty"`
	DailyWage *decimal.Decimal `json:"daily_wage,omitempty"`
	Status    *string          `json:"status,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.DailyWage != nil && r.DailyWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_wage", Message: "must be non-negative"})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{StatusActive, StatusInactive}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SiteID    string          `json:"site_id"`
	SiteName  *string         `json:"site_name,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Skills    []string        `json:"skills,omitempty"`
	DailyWage decimal.Decimal `json:"daily_wage"`
	Status    string          `json:"status"`
}
