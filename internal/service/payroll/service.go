package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/payroll"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/events"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
)

// processedBySystem marks generated records; payment attribution uses the
// acting user instead.
const processedBySystem = "System"

type PayrollServiceImpl struct {
	payroll.PayrollRepository
	worker.WorkerRepository
	attendance.AttendanceRepository
	hub       *sse.Hub
	publisher events.Publisher
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	hub *sse.Hub,
	publisher events.Publisher,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		PayrollRepository:    payrollRepo,
		WorkerRepository:     workerRepo,
		AttendanceRepository: attendanceRepo,
		hub:                  hub,
		publisher:            publisher,
	}
}

// Generate implements payroll.PayrollService.
//
// Pure read-then-compute over the attendance window: daysWorked counts
// Present records, overtime sums across every record in range regardless
// of status (flagged with product, kept as-is until clarified). Fetch
// failure aborts the whole run with ErrDataUnavailable; there is no
// partial output.
func (p *PayrollServiceImpl) Generate(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	workers, err := p.WorkerRepository.ListActive(ctx, &req.SiteID)
	if err != nil {
		slog.Error("Payroll generation: roster fetch failed", "site_id", req.SiteID, "error", err)
		return nil, payroll.ErrDataUnavailable
	}

	records, err := p.AttendanceRepository.List(ctx, attendance.AttendanceFilter{
		SiteID:    &req.SiteID,
		StartDate: &req.StartDate,
		EndDate:   &req.EndDate,
	})
	if err != nil {
		slog.Error("Payroll generation: attendance fetch failed", "site_id", req.SiteID, "error", err)
		return nil, payroll.ErrDataUnavailable
	}

	byWorker := make(map[string][]attendance.Attendance)
	for _, att := range records {
		byWorker[att.WorkerID] = append(byWorker[att.WorkerID], att)
	}

	results := make([]payroll.PayrollRecord, 0, len(workers))
	for _, w := range workers {
		results = append(results, derivePayrollRecord(w, byWorker[w.ID], startDate, endDate))
	}

	persisted, err := p.PayrollRepository.ReplaceForWindow(ctx, req.SiteID, req.StartDate, req.EndDate, results)
	if err != nil {
		return nil, fmt.Errorf("failed to persist payroll records: %w", err)
	}

	p.hub.Publish(sse.Event{Topic: "payroll", Data: map[string]interface{}{"site_id": req.SiteID}})
	evt := events.PayrollGeneratedEvent{
		EventType:   "payroll.generated",
		SiteID:      req.SiteID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		RecordCount: len(persisted),
		OccurredAt:  time.Now().UTC(),
	}
	if err := p.publisher.Publish(ctx, events.PayrollGeneratedTopic, req.SiteID, evt); err != nil {
		slog.Warn("Failed to publish payroll generated event", "site_id", req.SiteID, "error", err)
	}

	return mapPayrollList(persisted), nil
}

// derivePayrollRecord computes one worker's pay for the window.
func derivePayrollRecord(w worker.Worker, records []attendance.Attendance, startDate, endDate time.Time) payroll.PayrollRecord {
	daysWorked := 0
	overtimeHours := 0.0
	for _, att := range records {
		if att.Status == attendance.StatusPresent {
			daysWorked++
		}
		overtimeHours += att.OvertimeHours
	}

	basicPay := w.DailyWage.Mul(decimal.NewFromInt(int64(daysWorked)))
	hourlyRate := w.DailyWage.Div(decimal.NewFromInt(payroll.HoursPerWorkday))
	overtimePay := hourlyRate.Mul(decimal.NewFromFloat(overtimeHours)).Mul(payroll.OvertimeMultiplier)
	deductions := decimal.Zero
	totalPay := basicPay.Add(overtimePay).Sub(deductions)

	name := w.Name
	return payroll.PayrollRecord{
		WorkerID:      w.ID,
		SiteID:        w.SiteID,
		StartDate:     startDate,
		EndDate:       endDate,
		DaysWorked:    daysWorked,
		OvertimeHours: overtimeHours,
		DailyWage:     w.DailyWage,
		BasicPay:      basicPay,
		OvertimePay:   overtimePay,
		Deductions:    deductions,
		TotalPay:      totalPay,
		Status:        payroll.StatusPending,
		PaymentDate:   nil,
		ProcessedBy:   processedBySystem,
		WorkerName:    &name,
	}
}

// List implements payroll.PayrollService.
func (p *PayrollServiceImpl) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := p.PayrollRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	return mapPayrollList(records), nil
}

// Get implements payroll.PayrollService.
func (p *PayrollServiceImpl) Get(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := p.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}
	return mapPayrollToResponse(record), nil
}

// MarkPaid implements payroll.PayrollService.
func (p *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	actor, err := auth.ActorFromContext(ctx)
	if err != nil {
		return payroll.PayrollResponse{}, auth.ErrUnauthenticated
	}

	record, err := p.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if record.Status != payroll.StatusPending {
		return payroll.PayrollResponse{}, payroll.ErrAlreadyProcessed
	}

	now := time.Now()
	record.Status = payroll.StatusPaid
	record.PaymentDate = &now
	record.PaidBy = &actor.ID
	record.UpdatedAt = now

	if err := p.PayrollRepository.Update(ctx, record); err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	p.hub.Publish(sse.Event{Topic: "payroll", Data: map[string]interface{}{"site_id": record.SiteID}})

	return mapPayrollToResponse(record), nil
}

// Cancel implements payroll.PayrollService.
func (p *PayrollServiceImpl) Cancel(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	if _, err := auth.ActorFromContext(ctx); err != nil {
		return payroll.PayrollResponse{}, auth.ErrUnauthenticated
	}

	record, err := p.PayrollRepository.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	if record.Status != payroll.StatusPending {
		return payroll.PayrollResponse{}, payroll.ErrAlreadyProcessed
	}

	record.Status = payroll.StatusCancelled
	record.UpdatedAt = time.Now()

	if err := p.PayrollRepository.Update(ctx, record); err != nil {
		return payroll.PayrollResponse{}, fmt.Errorf("failed to cancel payroll record: %w", err)
	}

	p.hub.Publish(sse.Event{Topic: "payroll", Data: map[string]interface{}{"site_id": record.SiteID}})

	return mapPayrollToResponse(record), nil
}

func mapPayrollToResponse(r payroll.PayrollRecord) payroll.PayrollResponse {
	var workerName string
	if r.WorkerName != nil {
		workerName = *r.WorkerName
	}

	var paymentDate *string
	if r.PaymentDate != nil {
		d := r.PaymentDate.Format("2006-01-02")
		paymentDate = &d
	}

	return payroll.PayrollResponse{
		ID:            r.ID,
		WorkerID:      r.WorkerID,
		WorkerName:    workerName,
		SiteID:        r.SiteID,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		DaysWorked:    r.DaysWorked,
		OvertimeHours: r.OvertimeHours,
		DailyWage:     r.DailyWage,
		BasicPay:      r.BasicPay,
		OvertimePay:   r.OvertimePay,
		Deductions:    r.Deductions,
		TotalPay:      r.TotalPay,
		Status:        string(r.Status),
		PaymentDate:   paymentDate,
		ProcessedBy:   r.ProcessedBy,
		PaidBy:        r.PaidBy,
	}
}

func mapPayrollList(records []payroll.PayrollRecord) []payroll.PayrollResponse {
	responses := make([]payroll.PayrollResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, mapPayrollToResponse(r))
	}
	return responses
}
