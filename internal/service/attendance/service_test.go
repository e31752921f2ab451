package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/events"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/sse"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int

	listErr   error
	createErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	if f.createErr != nil {
		return attendance.Attendance{}, f.createErr
	}
	f.nextID++
	a.ID = "att-" + time.Now().Format("150405") + "-" + string(rune('a'+f.nextID))
	f.records[a.ID] = a
	return a, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, ok := f.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []attendance.Attendance
	for _, a := range f.records {
		if filter.Date != nil && a.Date.Format("2006-01-02") != *filter.Date {
			continue
		}
		if filter.SiteID != nil && a.SiteID != *filter.SiteID {
			continue
		}
		if filter.WorkerID != nil && a.WorkerID != *filter.WorkerID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	if _, ok := f.records[a.ID]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	f.records[a.ID] = a
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceRepo) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, r := range records {
		exists := false
		for _, have := range f.records {
			if have.WorkerID == r.WorkerID && have.Date.Equal(r.Date) {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		f.nextID++
		r.ID = "att-bulk-" + string(rune('a'+f.nextID))
		f.records[r.ID] = r
	}
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
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
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
		if w.Status != worker.StatusActive {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkerRepo) Update(ctx context.Context, w worker.Worker) error { return nil }
func (f *fakeWorkerRepo) Delete(ctx context.Context, id string) error       { return nil }

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

func newTestService(attRepo *fakeAttendanceRepo, workRepo *fakeWorkerRepo) attendance.AttendanceService {
	return NewAttendanceService(attRepo, workRepo, sse.NewHub(), events.NoopPublisher{})
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestReconcileFillsGapsWithAbsentPlaceholders(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", Status: worker.StatusActive},
		{ID: "w-2", SiteID: "site-1", Status: worker.StatusActive},
		{ID: "w-3", SiteID: "site-1", Status: worker.StatusActive},
	}}
	svc := newTestService(attRepo, workRepo)

	// w-1 already has a record for the day.
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "08:00", CreatedBy: "u-1",
	})
	require.NoError(t, err)

	siteID := "site-1"
	records, err := svc.Reconcile(context.Background(), &siteID, "2026-08-31")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	synthesized := 0
	for _, r := range records {
		if r.CreatedBy == attendance.SystemActor {
			synthesized++
			assert.Equal(t, attendance.StatusAbsent, r.Status)
			assert.Empty(t, r.CheckInTime)
			assert.Empty(t, r.CheckOutTime)
			assert.Zero(t, r.OvertimeHours)
		}
	}
	assert.Equal(t, 2, synthesized)
}

func TestReconcileIsIdempotent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", Status: worker.StatusActive},
		{ID: "w-2", SiteID: "site-1", Status: worker.StatusActive},
	}}
	svc := newTestService(attRepo, workRepo)

	first, err := svc.Reconcile(context.Background(), nil, "2026-08-31")
	require.NoError(t, err)
	second, err := svc.Reconcile(context.Background(), nil, "2026-08-31")
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Len(t, second, 2)
	assert.Len(t, attRepo.records, 2)
}

func TestReconcileDoesNotDisturbExistingRecords(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	workRepo := &fakeWorkerRepo{workers: []worker.Worker{
		{ID: "w-1", SiteID: "site-1", Status: worker.StatusActive},
	}}
	svc := newTestService(attRepo, workRepo)

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusLeave, CreatedBy: "u-9",
	})
	require.NoError(t, err)

	_, err = svc.Reconcile(context.Background(), nil, "2026-08-31")
	require.NoError(t, err)

	after, err := attRepo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLeave, after.Status)
	assert.Equal(t, "u-9", after.CreatedBy)
}

func TestReconcileKeepsExistingWhenRosterUnavailable(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	workRepo := &fakeWorkerRepo{listErr: errors.New("connection refused")}
	svc := newTestService(attRepo, workRepo)

	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	records, err := svc.Reconcile(context.Background(), nil, "2026-08-31")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReconcileRejectsMalformedDate(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), &fakeWorkerRepo{})

	_, err := svc.Reconcile(context.Background(), nil, "31-08-2026")
	assert.Error(t, err)
}

func TestMarkAbsentClearsTimesAndOvertime(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "08:00", CheckOutTime: "18:00", OvertimeHours: 2,
	})
	require.NoError(t, err)

	checkIn := "07:00"
	overtime := 3.0
	result, err := svc.Mark(authedContext(t, "u-1"), attendance.MarkAttendanceRequest{
		ID:            created.ID,
		Status:        attendance.StatusAbsent,
		CheckInTime:   &checkIn,
		OvertimeHours: &overtime,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusAbsent, result.Status)
	assert.Empty(t, result.CheckInTime)
	assert.Empty(t, result.CheckOutTime)
	assert.Zero(t, result.OvertimeHours)
	assert.Equal(t, "u-1", result.UpdatedBy)
}

func TestMarkPresentDefaultsCheckInOnlyWhenMissing(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	noCheckIn, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	result, err := svc.Mark(authedContext(t, "u-1"), attendance.MarkAttendanceRequest{
		ID:     noCheckIn.ID,
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.CheckInTime)

	// An existing check-in survives a re-mark without one in the request.
	hasCheckIn, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-2", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "07:30",
	})
	require.NoError(t, err)

	result, err = svc.Mark(authedContext(t, "u-1"), attendance.MarkAttendanceRequest{
		ID:     hasCheckIn.ID,
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, "07:30", result.CheckInTime)
}

func TestMarkLeaveKeepsCallerFields(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "08:00",
	})
	require.NoError(t, err)

	result, err := svc.Mark(authedContext(t, "u-1"), attendance.MarkAttendanceRequest{
		ID:     created.ID,
		Status: attendance.StatusLeave,
	})
	require.NoError(t, err)

	// Leave does not force-clear: the stored check-in stays untouched.
	assert.Equal(t, attendance.StatusLeave, result.Status)
	assert.Equal(t, "08:00", result.CheckInTime)
}

func TestMarkRequiresAuthenticatedActor(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	_, err = svc.Mark(context.Background(), attendance.MarkAttendanceRequest{
		ID:     created.ID,
		Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestMarkUnknownRecord(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), &fakeWorkerRepo{})

	_, err := svc.Mark(authedContext(t, "u-1"), attendance.MarkAttendanceRequest{
		ID:     "missing",
		Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestCheckoutDerivesWholeHourOvertime(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "08:00",
	})
	require.NoError(t, err)

	// 08:00 -> 18:00 is ten hours on site, two past the baseline.
	result, err := svc.Checkout(authedContext(t, "u-1"), attendance.CheckoutRequest{
		ID:           created.ID,
		CheckOutTime: "18:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "18:00", result.CheckOutTime)
	assert.Equal(t, 2.0, result.OvertimeHours)
}

func TestCheckoutClampsOvertimeAtZero(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "08:00",
	})
	require.NoError(t, err)

	result, err := svc.Checkout(authedContext(t, "u-1"), attendance.CheckoutRequest{
		ID:           created.ID,
		CheckOutTime: "15:00",
	})
	require.NoError(t, err)
	assert.Zero(t, result.OvertimeHours)
}

func TestCheckoutIgnoresMinutes(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent, CheckInTime: "08:45",
	})
	require.NoError(t, err)

	// Hour delta is 18 - 8 = 10 regardless of the minute fields.
	result, err := svc.Checkout(authedContext(t, "u-1"), attendance.CheckoutRequest{
		ID:           created.ID,
		CheckOutTime: "18:10",
	})
	require.NoError(t, err)
	assert.Equal(t, 2.0, result.OvertimeHours)
}

func TestCheckoutWithoutCheckIn(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusAbsent,
	})
	require.NoError(t, err)

	_, err = svc.Checkout(authedContext(t, "u-1"), attendance.CheckoutRequest{
		ID:           created.ID,
		CheckOutTime: "18:00",
	})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestSummaryCountsConsistent(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	day := mustDate(t, "2026-08-31")
	seed := []attendance.Attendance{
		{WorkerID: "w-1", SiteID: "site-1", Date: day, Status: attendance.StatusPresent},
		{WorkerID: "w-2", SiteID: "site-1", Date: day, Status: attendance.StatusPresent},
		{WorkerID: "w-3", SiteID: "site-1", Date: day, Status: attendance.StatusAbsent},
		{WorkerID: "w-4", SiteID: "site-1", Date: day, Status: attendance.StatusLeave},
		{WorkerID: "w-5", SiteID: "site-1", Date: day, Status: attendance.StatusHalfDay},
	}
	for _, s := range seed {
		_, err := attRepo.Create(context.Background(), s)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(context.Background(), nil, "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalWorkers)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Leave)
	assert.Equal(t, 1, summary.HalfDay)
	assert.Equal(t, summary.TotalWorkers, summary.Present+summary.Absent+summary.Leave+summary.HalfDay)
	assert.InDelta(t, 40.0, summary.AverageAttendance, 0.001)
}

func TestSummaryEmptyDayYieldsZeroRate(t *testing.T) {
	svc := newTestService(newFakeAttendanceRepo(), &fakeWorkerRepo{})

	summary, err := svc.Summary(context.Background(), nil, "2026-08-31")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalWorkers)
	assert.Zero(t, summary.AverageAttendance)
}

func TestDeleteRemovesRecord(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	svc := newTestService(attRepo, &fakeWorkerRepo{})

	created, err := attRepo.Create(context.Background(), attendance.Attendance{
		WorkerID: "w-1", SiteID: "site-1", Date: mustDate(t, "2026-08-31"),
		Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), attendance.ErrAttendanceNotFound)
}
