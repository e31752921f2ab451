package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.worker_id, a.site_id, a.date, a.status,
	a.check_in_time, a.check_out_time, a.overtime_hours,
	a.created_by, a.updated_by, a.created_at, a.updated_at,
	w.name AS worker_name`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.WorkerID, &att.SiteID, &att.Date, &att.Status,
		&att.CheckInTime, &att.CheckOutTime, &att.OvertimeHours,
		&att.CreatedBy, &att.UpdatedBy, &att.CreatedAt, &att.UpdatedAt,
		&att.WorkerName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	if newAttendance.ID == "" {
		newAttendance.ID = uuid.NewString()
	}

	query := `
		INSERT INTO attendances (
			id, worker_id, site_id, date, status,
			check_in_time, check_out_time, overtime_hours,
			created_by, updated_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.ID,
		newAttendance.WorkerID,
		newAttendance.SiteID,
		newAttendance.Date,
		newAttendance.Status,
		newAttendance.CheckInTime,
		newAttendance.CheckOutTime,
		newAttendance.OvertimeHours,
		newAttendance.CreatedBy,
		newAttendance.UpdatedBy,
	).Scan(&newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// BulkCreate implements attendance.AttendanceRepository.
//
// ON CONFLICT DO NOTHING keeps reconciliation idempotent even when two
// passes race: the (worker_id, date) unique index wins.
func (a *attendanceRepository) BulkCreate(ctx context.Context, records []attendance.Attendance) error {
	if len(records) == 0 {
		return nil
	}

	return WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO attendances (
				id, worker_id, site_id, date, status,
				check_in_time, check_out_time, overtime_hours, created_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (worker_id, date) DO NOTHING
		`

		for _, r := range records {
			id := r.ID
			if id == "" {
				id = uuid.NewString()
			}
			if _, err := tx.Exec(ctx, query,
				id, r.WorkerID, r.SiteID, r.Date, r.Status,
				r.CheckInTime, r.CheckOutTime, r.OvertimeHours, r.CreatedBy,
			); err != nil {
				return fmt.Errorf("failed to insert absence placeholder for worker %s: %w", r.WorkerID, err)
			}
		}
		return nil
	})
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN workers w ON w.id = a.worker_id
		WHERE a.id = $1
	`, attendanceColumns)

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id: %w", err)
	}

	return att, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.SiteID != nil {
		addCondition("a.site_id = $%d", *filter.SiteID)
	}
	if filter.WorkerID != nil {
		addCondition("a.worker_id = $%d", *filter.WorkerID)
	}
	if filter.Date != nil {
		addCondition("a.date = $%d", *filter.Date)
	}
	if filter.StartDate != nil {
		addCondition("a.date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("a.date <= $%d", *filter.EndDate)
	}
	if filter.Status != nil {
		addCondition("a.status = $%d", *filter.Status)
	}
	if filter.Search != nil {
		addCondition("w.name ILIKE '%%' || $%d || '%%'", *filter.Search)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		JOIN workers w ON w.id = a.worker_id
	`, attendanceColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.date DESC, w.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance rows: %w", err)
	}

	return records, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2,
			check_in_time = $3,
			check_out_time = $4,
			overtime_hours = $5,
			updated_by = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.Status,
		att.CheckInTime,
		att.CheckOutTime,
		att.OvertimeHours,
		att.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}
