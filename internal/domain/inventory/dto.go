package inventory

import (
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

type CreateItemRequest struct {
	SiteID   string  `json:"site_id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

func (r *CreateItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SiteID) {
		errs = append(errs, validator.ValidationError{Field: "site_id", Message: "is required"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateItemRequest struct {
	ID       string   `json:"-"`
	Name     *string  `json:"name,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Unit     *string  `json:"unit,omitempty"`
}

func (r *UpdateItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Quantity != nil && *r.Quantity < 0 {
		errs = append(errs, validator.ValidationError{Field: "quantity", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ItemResponse struct {
	ID       string  `json:"id"`
	SiteID   string  `json:"site_id"`
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}
