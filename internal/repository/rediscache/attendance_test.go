package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
)

type fakeAttendanceRemote struct {
	records []attendance.Attendance
	err     error

	updated []attendance.Attendance
}

func (f *fakeAttendanceRemote) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, f.err
}

func (f *fakeAttendanceRemote) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	if f.err != nil {
		return attendance.Attendance{}, f.err
	}
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRemote) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeAttendanceRemote) Update(ctx context.Context, a attendance.Attendance) error {
	if f.err != nil {
		return f.err
	}
	f.updated = append(f.updated, a)
	return nil
}

func (f *fakeAttendanceRemote) Delete(ctx context.Context, id string) error {
	return f.err
}

func (f *fakeAttendanceRemote) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	return f.err
}

func TestAttendanceCacheListMirrorsPrimary(t *testing.T) {
	client, mock := redismock.NewClientMock()
	remote := &fakeAttendanceRemote{
		records: []attendance.Attendance{
			{ID: "att-1", WorkerID: "w-1", SiteID: "site-1", Status: attendance.StatusPresent},
		},
	}
	repo := NewAttendanceRepository(remote, client, time.Minute)

	siteID := "site-1"
	filter := attendance.AttendanceFilter{SiteID: &siteID}
	key := "attendance:v0:" + attendanceFilterKey(filter)

	data, err := json.Marshal(remote.records)
	require.NoError(t, err)

	mock.ExpectGet("attendance:ver").RedisNil()
	mock.ExpectSet(key, data, time.Minute).SetVal("OK")

	records, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "att-1", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceCacheListFallsBackWhenPrimaryDown(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cached := []attendance.Attendance{
		{ID: "att-2", WorkerID: "w-2", SiteID: "site-1", Status: attendance.StatusAbsent},
	}
	remote := &fakeAttendanceRemote{err: errors.New("connection refused")}
	repo := NewAttendanceRepository(remote, client, time.Minute)

	siteID := "site-1"
	filter := attendance.AttendanceFilter{SiteID: &siteID}
	key := "attendance:v0:" + attendanceFilterKey(filter)

	data, err := json.Marshal(cached)
	require.NoError(t, err)

	mock.ExpectGet("attendance:ver").RedisNil()
	mock.ExpectGet(key).SetVal(string(data))

	records, err := repo.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "att-2", records[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceCacheListErrorWhenBothTiersMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	remoteErr := errors.New("connection refused")
	remote := &fakeAttendanceRemote{err: remoteErr}
	repo := NewAttendanceRepository(remote, client, time.Minute)

	filter := attendance.AttendanceFilter{}
	key := "attendance:v0:" + attendanceFilterKey(filter)

	mock.ExpectGet("attendance:ver").RedisNil()
	mock.ExpectGet(key).RedisNil()

	_, err := repo.List(context.Background(), filter)
	assert.ErrorIs(t, err, remoteErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceCacheUpdateInvalidates(t *testing.T) {
	client, mock := redismock.NewClientMock()
	remote := &fakeAttendanceRemote{}
	repo := NewAttendanceRepository(remote, client, time.Minute)

	mock.ExpectDel("attendance:id:att-1").SetVal(1)
	mock.ExpectIncr("attendance:ver").SetVal(1)

	err := repo.Update(context.Background(), attendance.Attendance{ID: "att-1"})
	require.NoError(t, err)
	assert.Len(t, remote.updated, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceCacheNotFoundIsNotMasked(t *testing.T) {
	client, _ := redismock.NewClientMock()
	remote := &fakeAttendanceRemote{}
	repo := NewAttendanceRepository(remote, client, time.Minute)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}
