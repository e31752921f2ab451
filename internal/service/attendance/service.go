package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/events"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	worker.WorkerRepository
	hub       *sse.Hub
	publisher events.Publisher
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	hub *sse.Hub,
	publisher events.Publisher,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		WorkerRepository:     workerRepo,
		hub:                  hub,
		publisher:            publisher,
	}
}

// Reconcile implements attendance.AttendanceService.
//
// The roster scan and the gap fill are deliberately best-effort: a failed
// roster fetch or insert is logged and the caller gets whatever records
// already exist. The next pass self-heals. Duplicate protection comes
// from the set difference here plus the store's (worker_id, date)
// uniqueness constraint, so running twice produces no extra records.
func (a *AttendanceServiceImpl) Reconcile(ctx context.Context, siteID *string, date string) ([]attendance.AttendanceResponse, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	day, ok := validator.IsValidDate(date)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}

	filter := attendance.AttendanceFilter{SiteID: siteID, Date: &date}

	existing, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for %s: %w", date, err)
	}

	workers, err := a.WorkerRepository.ListActive(ctx, siteID)
	if err != nil {
		slog.Error("Reconciliation: roster fetch failed, keeping existing records", "date", date, "error", err)
		return mapAttendanceList(existing), nil
	}

	recorded := make(map[string]struct{}, len(existing))
	for _, att := range existing {
		recorded[att.WorkerID] = struct{}{}
	}

	var missing []attendance.Attendance
	for _, w := range workers {
		if _, ok := recorded[w.ID]; ok {
			continue
		}
		missing = append(missing, attendance.Attendance{
			WorkerID:      w.ID,
			SiteID:        w.SiteID,
			Date:          day,
			Status:        attendance.StatusAbsent,
			CheckInTime:   "",
			CheckOutTime:  "",
			OvertimeHours: 0,
			CreatedBy:     attendance.SystemActor,
		})
	}

	if len(missing) == 0 {
		return mapAttendanceList(existing), nil
	}

	if err := a.AttendanceRepository.BulkCreate(ctx, missing); err != nil {
		slog.Error("Reconciliation: failed to create absence placeholders", "date", date, "count", len(missing), "error", err)
		return mapAttendanceList(existing), nil
	}

	slog.Info("Reconciliation: filled attendance gaps", "date", date, "created", len(missing))
	a.hub.Publish(sse.Event{Topic: "attendance", Data: map[string]interface{}{"date": date}})

	refreshed, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		slog.Error("Reconciliation: refetch after fill failed", "date", date, "error", err)
		return mapAttendanceList(append(existing, missing...)), nil
	}

	return mapAttendanceList(refreshed), nil
}

// Mark implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Mark(ctx context.Context, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, auth.ErrUnauthenticated
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	att.Status = req.Status

	switch req.Status {
	case attendance.StatusPresent:
		if req.CheckInTime != nil && *req.CheckInTime != "" {
			att.CheckInTime = *req.CheckInTime
		} else if att.CheckInTime == "" {
			att.CheckInTime = time.Now().Format("15:04")
		}
		if req.CheckOutTime != nil {
			att.CheckOutTime = *req.CheckOutTime
		}
		if req.OvertimeHours != nil {
			att.OvertimeHours = *req.OvertimeHours
		}

	case attendance.StatusAbsent:
		// Absent always clears times and overtime, whatever the caller sent.
		att.CheckInTime = ""
		att.CheckOutTime = ""
		att.OvertimeHours = 0

	case attendance.StatusLeave, attendance.StatusHalfDay:
		// Caller-supplied fields pass through unchanged; no forced defaults.
		if req.CheckInTime != nil {
			att.CheckInTime = *req.CheckInTime
		}
		if req.CheckOutTime != nil {
			att.CheckOutTime = *req.CheckOutTime
		}
		if req.OvertimeHours != nil {
			att.OvertimeHours = *req.OvertimeHours
		}
	}

	att.UpdatedBy = actor.ID
	att.UpdatedAt = time.Now()

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	a.notifyChanged(ctx, att)

	return mapAttendanceToResponse(att), nil
}

// Checkout implements attendance.AttendanceService.
//
// Overtime is derived at whole-hour granularity against an 8-hour
// baseline: max(0, checkOutHour - checkInHour - 8). Minutes do not
// factor into the delta.
func (a *AttendanceServiceImpl) Checkout(ctx context.Context, req attendance.CheckoutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, auth.ErrUnauthenticated
	}

	att, err := a.AttendanceRepository.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	inHour, ok := validator.ClockHour(att.CheckInTime)
	if !ok {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	outHour, _ := validator.ClockHour(req.CheckOutTime)

	overtime := outHour - inHour - payrollBaselineHours
	if overtime < 0 {
		overtime = 0
	}

	att.CheckOutTime = req.CheckOutTime
	att.OvertimeHours = float64(overtime)
	att.UpdatedBy = actor.ID
	att.UpdatedAt = time.Now()

	if err := a.AttendanceRepository.Update(ctx, att); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance on checkout: %w", err)
	}

	a.notifyChanged(ctx, att)

	return mapAttendanceToResponse(att), nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return mapAttendanceList(records), nil
}

// Get implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return mapAttendanceToResponse(att), nil
}

// Summary implements attendance.AttendanceService.
//
// totalWorkers counts attendance records for the date, not roster size:
// a roster worker without a record is invisible until reconciliation has
// run. present + absent + leave + halfDay always equals totalWorkers.
func (a *AttendanceServiceImpl) Summary(ctx context.Context, siteID *string, date string) (attendance.SummaryResponse, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return attendance.SummaryResponse{}, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}

	records, err := a.AttendanceRepository.List(ctx, attendance.AttendanceFilter{SiteID: siteID, Date: &date})
	if err != nil {
		return attendance.SummaryResponse{}, fmt.Errorf("failed to list attendance for summary: %w", err)
	}

	summary := attendance.SummaryResponse{Date: date, TotalWorkers: len(records)}
	for _, att := range records {
		switch att.Status {
		case attendance.StatusPresent:
			summary.Present++
		case attendance.StatusAbsent:
			summary.Absent++
		case attendance.StatusLeave:
			summary.Leave++
		case attendance.StatusHalfDay:
			summary.HalfDay++
		}
	}

	if summary.TotalWorkers > 0 {
		summary.AverageAttendance = float64(summary.Present) / float64(summary.TotalWorkers) * 100
	}

	return summary, nil
}

// Delete implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	att, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := a.AttendanceRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}

	a.notifyChanged(ctx, att)
	return nil
}

// payrollBaselineHours is the 8-hour workday the checkout overtime
// derivation measures against.
const payrollBaselineHours = 8

func (a *AttendanceServiceImpl) notifyChanged(ctx context.Context, att attendance.Attendance) {
	date := att.Date.Format("2006-01-02")

	a.hub.Publish(sse.Event{Topic: "attendance", Data: map[string]interface{}{
		"site_id": att.SiteID,
		"date":    date,
	}})

	evt := events.AttendanceChangedEvent{
		EventType:    "attendance.changed",
		AttendanceID: att.ID,
		WorkerID:     att.WorkerID,
		SiteID:       att.SiteID,
		Date:         date,
		Status:       att.Status,
		OccurredAt:   time.Now().UTC(),
	}
	if err := a.publisher.Publish(ctx, events.AttendanceChangedTopic, att.SiteID, evt); err != nil {
		slog.Warn("Failed to publish attendance change event", "attendance_id", att.ID, "error", err)
	}
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	var workerName string
	if att.WorkerName != nil {
		workerName = *att.WorkerName
	}

	return attendance.AttendanceResponse{
		ID:            att.ID,
		WorkerID:      att.WorkerID,
		WorkerName:    workerName,
		SiteID:        att.SiteID,
		Date:          att.Date.Format("2006-01-02"),
		Status:        att.Status,
		CheckInTime:   att.CheckInTime,
		CheckOutTime:  att.CheckOutTime,
		OvertimeHours: att.OvertimeHours,
		CreatedBy:     att.CreatedBy,
		UpdatedBy:     att.UpdatedBy,
		CreatedAt:     att.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     att.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func mapAttendanceList(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return responses
}
