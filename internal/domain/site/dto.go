package site

import (
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

type CreateSiteRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (r *CreateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateSiteRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (r *UpdateSiteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{StatusActive, StatusClosed}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'active' or 'closed'"})
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SiteResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Status   string `json:"status"`
}
