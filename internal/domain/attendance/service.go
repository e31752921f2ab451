package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// Reconcile ensures every active roster worker has exactly one record
	// for the date, synthesizing Absent placeholders for any missing.
	// Idempotent and best-effort: failures are logged, existing records
	// are never disturbed. Returns the records present after the pass.
	Reconcile(ctx context.Context, siteID *string, date string) ([]AttendanceResponse, error)

	// Mark transitions one record to a new status with the per-status
	// field policy, attributing the change to the acting user.
	Mark(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)

	// Checkout records a check-out time and derives overtime hours from
	// the stored check-in at whole-hour granularity.
	Checkout(ctx context.Context, req CheckoutRequest) (AttendanceResponse, error)

	// List retrieves attendance records with filters
	List(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// Get retrieves a single attendance record by ID
	Get(ctx context.Context, id string) (AttendanceResponse, error)

	// Summary aggregates one date's records into per-status counts and an
	// attendance rate, computed fresh on every call.
	Summary(ctx context.Context, siteID *string, date string) (SummaryResponse, error)

	// Delete removes an attendance record (administrative)
	Delete(ctx context.Context, id string) error
}
