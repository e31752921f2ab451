package attendance

import "context"

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, a Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// List retrieves attendance records matching the filter
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, a Attendance) error

	// Delete hard-deletes a record (administrative operation)
	Delete(ctx context.Context, id string) error

	// BulkCreate inserts synthesized absence records, skipping rows that
	// would violate the (worker_id, date) uniqueness constraint.
	BulkCreate(ctx context.Context, records []Attendance) error
}
