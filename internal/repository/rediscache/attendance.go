package rediscache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
)

type attendanceRepository struct {
	remote attendance.AttendanceRepository
	cache  store
}

// NewAttendanceRepository layers a Redis read cache over the primary
// attendance repository.
func NewAttendanceRepository(remote attendance.AttendanceRepository, client redis.Cmdable, ttl time.Duration) attendance.AttendanceRepository {
	return &attendanceRepository{
		remote: remote,
		cache:  newStore(client, ttl, "attendance"),
	}
}

func attendanceFilterKey(filter attendance.AttendanceFilter) string {
	return fmt.Sprintf("list:%s:%s:%s:%s:%s:%s:%s",
		derefOr(filter.SiteID, "*"),
		derefOr(filter.WorkerID, "*"),
		derefOr(filter.Date, "*"),
		derefOr(filter.StartDate, "*"),
		derefOr(filter.EndDate, "*"),
		derefOr(filter.Status, "*"),
		derefOr(filter.Search, "*"),
	)
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	created, err := r.remote.Create(ctx, a)
	if err != nil {
		return attendance.Attendance{}, err
	}
	r.cache.bumpVersion(ctx)
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	a, err := r.remote.GetByID(ctx, id)
	if err == nil {
		r.cache.setJSON(ctx, r.cache.idKey(id), a)
		return a, nil
	}
	if err == attendance.ErrAttendanceNotFound {
		return attendance.Attendance{}, err
	}

	var cached attendance.Attendance
	if r.cache.getJSON(ctx, r.cache.idKey(id), &cached) {
		slog.Warn("serving attendance record from cache", "id", id, "error", err)
		return cached, nil
	}
	return attendance.Attendance{}, err
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	key, ok := r.cache.listKey(ctx, attendanceFilterKey(filter))

	records, err := r.remote.List(ctx, filter)
	if err == nil {
		if ok {
			r.cache.setJSON(ctx, key, records)
		}
		return records, nil
	}

	if ok {
		var cached []attendance.Attendance
		if r.cache.getJSON(ctx, key, &cached) {
			slog.Warn("serving attendance list from cache", "error", err)
			return cached, nil
		}
	}
	return nil, err
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	if err := r.remote.Update(ctx, a); err != nil {
		return err
	}
	r.cache.invalidate(ctx, r.cache.idKey(a.ID))
	r.cache.bumpVersion(ctx)
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	if err := r.remote.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.invalidate(ctx, r.cache.idKey(id))
	r.cache.bumpVersion(ctx)
	return nil
}

// BulkCreate implements attendance.AttendanceRepository.
func (r *attendanceRepository) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	if err := r.remote.BulkCreate(ctx, records); err != nil {
		return err
	}
	r.cache.bumpVersion(ctx)
	return nil
}
