package cashbook

import (
	"github.com/shopspring/decimal"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

type CreateTransactionRequest struct {
	SiteID      string          `json:"site_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

func (r *CreateTransactionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, []string{TypeCredit, TypeDebit}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'credit' or 'debit'"})
	}
	if r.Amount.IsNegative() || r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TransactionFilter struct {
	SiteID    *string
	Type      *string
	StartDate *string
	EndDate   *string
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	SiteID      string          `json:"site_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	RecordedBy  string          `json:"recorded_by"`
}
