package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
)

// AttendanceJobs backfills attendance gaps overnight so the morning
// screens open on a complete record set even when nobody triggered a
// reconciliation the day before.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_attendance", 1*time.Hour, j.ReconcileYesterday)
}

// ReconcileYesterday fills Absent placeholders for yesterday across all
// sites. Reconciliation is idempotent, so the hourly tick is harmless;
// the midnight guard just keeps the log quiet.
func (j *AttendanceJobs) ReconcileYesterday(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 local)
	if time.Now().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting attendance reconciliation job")

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	records, err := j.attendanceSvc.Reconcile(ctx, nil, yesterday)
	if err != nil {
		return err
	}

	slog.Info("Cron: Attendance reconciliation completed", "date", yesterday, "records", len(records))
	return nil
}
