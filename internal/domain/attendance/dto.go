package attendance

import (
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

// MarkAttendanceRequest transitions one record to a new status. Optional
// fields pass through subject to the per-status policy in the service.
type MarkAttendanceRequest struct {
	ID            string   `json:"-"`
	Status        string   `json:"status"`
	CheckInTime   *string  `json:"check_in_time,omitempty"`
	CheckOutTime  *string  `json:"check_out_time,omitempty"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of 'present', 'absent', 'leave', 'half_day'"})
	}
	if r.CheckInTime != nil && *r.CheckInTime != "" && !validator.IsValidClockTime(*r.CheckInTime) {
		errs = append(errs, validator.ValidationError{Field: "check_in_time", Message: "must be HH:MM (24-hour)"})
	}
	if r.CheckOutTime != nil && *r.CheckOutTime != "" && !validator.IsValidClockTime(*r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "must be HH:MM (24-hour)"})
	}
	if r.OvertimeHours != nil && *r.OvertimeHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "overtime_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CheckoutRequest closes out a present worker's day and derives overtime
// from the stored check-in time.
type CheckoutRequest struct {
	ID           string `json:"-"`
	CheckOutTime string `json:"check_out_time"`
}

func (r *CheckoutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "is required"})
	} else if !validator.IsValidClockTime(r.CheckOutTime) {
		errs = append(errs, validator.ValidationError{Field: "check_out_time", Message: "must be HH:MM (24-hour)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceFilter struct {
	SiteID    *string
	WorkerID  *string
	Date      *string
	StartDate *string
	EndDate   *string
	Status    *string
	Search    *string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate} {
		if v != nil {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be YYYY-MM-DD"})
			}
		}
	}
	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{StatusPresent, StatusAbsent, StatusLeave, StatusHalfDay}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a known status"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	WorkerID      string  `json:"worker_id"`
	WorkerName    string  `json:"worker_name,omitempty"`
	SiteID        string  `json:"site_id"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	CheckInTime   string  `json:"check_in_time"`
	CheckOutTime  string  `json:"check_out_time"`
	OvertimeHours float64 `json:"overtime_hours"`
	CreatedBy     string  `json:"created_by"`
	UpdatedBy     string  `json:"updated_by,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// SummaryResponse is the derived read model for one date.
type SummaryResponse struct {
	Date              string  `json:"date"`
	TotalWorkers      int     `json:"total_workers"`
	Present           int     `json:"present"`
	Absent            int     `json:"absent"`
	Leave             int     `json:"leave"`
	HalfDay           int     `json:"half_day"`
	AverageAttendance float64 `json:"average_attendance"`
}
