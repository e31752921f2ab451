package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrNotCheckedIn       = errors.New("worker has no check-in time for this record")
	ErrInvalidStatus      = errors.New("invalid attendance status")
)
