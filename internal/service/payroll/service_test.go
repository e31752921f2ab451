package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/payroll"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/events"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
)

type fakePayrollRepo struct {
	records map[string]payroll.PayrollRecord
	nextID  int

	replaceErr error
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{records: make(map[string]payroll.PayrollRecord)}
}

func (f *fakePayrollRepo) ReplaceForWindow(ctx context.Context, siteID string, startDate, endDate string, records []payroll.PayrollRecord) ([]payroll.PayrollRecord, error) {
	if f.replaceErr != nil {
		return nil, f.replaceErr
	}
	for id, r := range f.records {
		if r.SiteID == siteID &&
			r.StartDate.Format("2006-01-02") == startDate &&
			r.EndDate.Format("2006-01-02") == endDate &&
			r.Status == payroll.StatusPending {
			delete(f.records, id)
		}
	}
	var out []payroll.PayrollRecord
	for _, r := range records {
		f.nextID++
		r.ID = fmt.Sprintf("pay-%d", f.nextID)
		f.records[r.ID] = r
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	r, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, r := range f.records {
		if filter.SiteID != nil && r.SiteID != *filter.SiteID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakePayrollRepo) Update(ctx context.Context, record payroll.PayrollRecord) error {
	if _, ok := f.records[record.ID]; !ok {
		return payroll.ErrPayrollRecordNotFound
	}
	f.records[record.ID] = record
	return nil
}

type fakeWorkerRepo struct {
	workers []worker.Worker
	listErr error
}

func (f *fakeWorkerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	return w, nil
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) List(ctx context.Context, siteID *string) ([]worker.Worker, error) {
	return f.ListActive(ctx, siteID)
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context, siteID *string) ([]worker.Worker, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []worker.Worker
	for _, w := range f.workers {
		if siteID != nil && w.SiteID != *siteID {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) error { return nil }
func (f *fakeWorkerRepo) Delete(ctx context.Context, id string) error       { return nil }

type fakeAttendanceRepo struct {
	records []attendance.Attendance
	listErr error
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error { return nil }
func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error               { return nil }
func (f *fakeAttendanceRepo) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id": userID,
		"name":    "Test User",
		"role":    "supervisor",
		"type":    "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(payRepo *fakePayrollRepo, workRepo *fakeWorkerRepo, attRepo *fakeAttendanceRepo) payroll.PayrollService {
	return NewPayrollService(payRepo, workRepo, attRepo, sse.NewHub(), events.NoopPublisher{})
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestGenerateDerivesPayFromAttendance(t *testing.T) {
	payRepo := newFakePayrollRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", Name: "Asha", SiteID: "site-1", DailyWage: decimal.NewFromInt(800), Status: worker.StatusActive},
	}}

	// Ten present days and four overtime hours in the window.
	var records []attendance.Attendance
	for i := 0; i < 10; i++ {
		records = append(records, attendance.Attendance{
			WorkerID: "w-1", SiteID: "site-1",
			Date:   day(t, "2026-08-01").AddDate(0, 0, i),
			Status: attendance.StatusPresent,
		})
	}
	records[3].OvertimeHours = 3
	records[7].OvertimeHours = 1
	attRepo := &fakeAttendanceRepo{records: records}

	svc := newTestService(payRepo, workRepo, attRepo)

	results, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		SiteID: "site-1", StartDate: "2026-08-01", EndDate: "2026-08-15",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 10, r.DaysWorked)
	assert.Equal(t, 4.0, r.OvertimeHours)
	// 800 x 10 basic, 800/8 x 4 x 1.5 = 600 overtime, zero deductions.
	assert.True(t, r.BasicPay.Equal(decimal.NewFromInt(8000)), "basic pay was %s", r.BasicPay)
	assert.True(t, r.OvertimePay.Equal(decimal.NewFromInt(600)), "overtime pay was %s", r.OvertimePay)
	assert.True(t, r.Deductions.IsZero())
	assert.True(t, r.TotalPay.Equal(decimal.NewFromInt(8600)), "total pay was %s", r.TotalPay)
	assert.Equal(t, string(payroll.StatusPending), r.Status)
	assert.Equal(t, "Asha", r.WorkerName)
}

func TestGenerateSumsOvertimeAcrossAllStatuses(t *testing.T) {
	payRepo := newFakePayrollRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", DailyWage: decimal.NewFromInt(800), Status: worker.StatusActive},
	}}
	attRepo := &fakeAttendanceRepo{records: []attendance.Attendance{
		{WorkerID: "w-1", SiteID: "site-1", Date: day(t, "2026-08-01"), Status: attendance.StatusPresent, OvertimeHours: 2},
		{WorkerID: "w-1", SiteID: "site-1", Date: day(t, "2026-08-02"), Status: attendance.StatusHalfDay, OvertimeHours: 1},
	}}
	svc := newTestService(payRepo, workRepo, attRepo)

	results, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		SiteID: "site-1", StartDate: "2026-08-01", EndDate: "2026-08-07",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	// Half-day overtime still counts toward the sum; days worked does not.
	assert.Equal(t, 1, results[0].DaysWorked)
	assert.Equal(t, 3.0, results[0].OvertimeHours)
}

func TestGenerateZeroAttendanceYieldsZeroPay(t *testing.T) {
	payRepo := newFakePayrollRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", DailyWage: decimal.NewFromInt(800), Status: worker.StatusActive},
	}}
	svc := newTestService(payRepo, workRepo, &fakeAttendanceRepo{})

	results, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		SiteID: "site-1", StartDate: "2026-08-01", EndDate: "2026-08-07",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Zero(t, results[0].DaysWorked)
	assert.True(t, results[0].TotalPay.IsZero())
}

func TestGenerateReplacesPendingWindow(t *testing.T) {
	payRepo := newFakePayrollRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", DailyWage: decimal.NewFromInt(500), Status: worker.StatusActive},
	}}
	svc := newTestService(payRepo, workRepo, &fakeAttendanceRepo{})

	req := payroll.GeneratePayrollRequest{SiteID: "site-1", StartDate: "2026-08-01", EndDate: "2026-08-15"}
	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Len(t, payRepo.records, 1)
}

func TestGenerateRosterFailureIsDataUnavailable(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), &fakeWorkerRepo{listErr: errors.New("connection refused")}, &fakeAttendanceRepo{})

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		SiteID: "site-1", StartDate: "2026-08-01", EndDate: "2026-08-07",
	})
	assert.ErrorIs(t, err, payroll.ErrDataUnavailable)
}

func TestGenerateAttendanceFailureIsDataUnavailable(t *testing.T) {
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", DailyWage: decimal.NewFromInt(500), Status: worker.StatusActive},
	}}
	svc := newTestService(newFakePayrollRepo(), workRepo, &fakeAttendanceRepo{listErr: errors.New("connection refused")})

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		SiteID: "site-1", StartDate: "2026-08-01", EndDate: "2026-08-07",
	})
	assert.ErrorIs(t, err, payroll.ErrDataUnavailable)
}

func TestGenerateRejectsInvertedWindow(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), &fakeWorkerRepo{}, &fakeAttendanceRepo{})

	_, err := svc.Generate(context.Background(), payroll.GeneratePayrollRequest{
		SiteID: "site-1", StartDate: "2026-08-15", EndDate: "2026-08-01",
	})
	assert.Error(t, err)
}

func seedPending(t *testing.T, repo *fakePayrollRepo) payroll.PayrollRecord {
	t.Helper()
	persisted, err := repo.ReplaceForWindow(context.Background(), "site-1", "2026-08-01", "2026-08-15", []payroll.PayrollRecord{{
		WorkerID:  "w-1",
		SiteID:    "site-1",
		StartDate: day(t, "2026-08-01"),
		EndDate:   day(t, "2026-08-15"),
		DailyWage: decimal.NewFromInt(500),
		TotalPay:  decimal.NewFromInt(5000),
		Status:    payroll.StatusPending,
	}})
	require.NoError(t, err)
	return persisted[0]
}

func TestMarkPaidStampsDateAndActor(t *testing.T) {
	payRepo := newFakePayrollRepo()
	record := seedPending(t, payRepo)
	svc := newTestService(payRepo, &fakeWorkerRepo{}, &fakeAttendanceRepo{})

	result, err := svc.MarkPaid(authedContext(t, "u-7"), record.ID)
	require.NoError(t, err)

	assert.Equal(t, string(payroll.StatusPaid), result.Status)
	require.NotNil(t, result.PaymentDate)
	require.NotNil(t, result.PaidBy)
	assert.Equal(t, "u-7", *result.PaidBy)
}

func TestPaidRecordCannotBeReprocessed(t *testing.T) {
	payRepo := newFakePayrollRepo()
	record := seedPending(t, payRepo)
	svc := newTestService(payRepo, &fakeWorkerRepo{}, &fakeAttendanceRepo{})

	_, err := svc.MarkPaid(authedContext(t, "u-7"), record.ID)
	require.NoError(t, err)

	_, err = svc.MarkPaid(authedContext(t, "u-7"), record.ID)
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
	_, err = svc.Cancel(authedContext(t, "u-7"), record.ID)
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
}

func TestCancelledRecordCannotBePaid(t *testing.T) {
	payRepo := newFakePayrollRepo()
	record := seedPending(t, payRepo)
	svc := newTestService(payRepo, &fakeWorkerRepo{}, &fakeAttendanceRepo{})

	result, err := svc.Cancel(authedContext(t, "u-7"), record.ID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusCancelled), result.Status)

	_, err = svc.MarkPaid(authedContext(t, "u-7"), record.ID)
	assert.ErrorIs(t, err, payroll.ErrAlreadyProcessed)
}

func TestMarkPaidRequiresActor(t *testing.T) {
	payRepo := newFakePayrollRepo()
	record := seedPending(t, payRepo)
	svc := newTestService(payRepo, &fakeWorkerRepo{}, &fakeAttendanceRepo{})

	_, err := svc.MarkPaid(context.Background(), record.ID)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestMarkPaidUnknownRecord(t *testing.T) {
	svc := newTestService(newFakePayrollRepo(), &fakeWorkerRepo{}, &fakeAttendanceRepo{})

	_, err := svc.MarkPaid(authedContext(t, "u-7"), "missing")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)
}
