package attendance

import (
	"time"
)

// Attendance statuses. At most one record exists per worker per calendar
// date; the (worker_id, date) pair is unique in the store.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLeave   = "leave"
	StatusHalfDay = "half_day"
)

// SystemActor is the audit identity used for records synthesized by
// reconciliation rather than marked by a person.
const SystemActor = "system"

type Attendance struct {
	ID       string
	WorkerID string
	SiteID   string
	Date     time.Time

	Status string
	// CheckInTime and CheckOutTime are "HH:MM" 24-hour clock strings.
	// Empty means not applicable (absent, or not yet checked in/out).
	CheckInTime   string
	CheckOutTime  string
	OvertimeHours float64

	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}
