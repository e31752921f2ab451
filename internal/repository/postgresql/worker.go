package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `
	w.id, w.name, w.site_id, w.phone, w.skills, w.daily_wage, w.status,
	w.created_at, w.updated_at, s.name AS site_name`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Name, &w.SiteID, &w.Phone, &w.Skills, &w.DailyWage, &w.Status,
		&w.CreatedAt, &w.UpdatedAt, &w.SiteName,
	)
	return w, err
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	query := `
		INSERT INTO workers (id, name, site_id, phone, skills, daily_wage, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		w.ID, w.Name, w.SiteID, w.Phone, w.Skills, w.DailyWage, w.Status,
	).Scan(&w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return w, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM workers w
		JOIN sites s ON s.id = w.site_id
		WHERE w.id = $1
	`, workerColumns)

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by id: %w", err)
	}

	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, siteID *string) ([]worker.Worker, error) {
	return r.list(ctx, siteID, false)
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context, siteID *string) ([]worker.Worker, error) {
	return r.list(ctx, siteID, true)
}

func (r *workerRepository) list(ctx context.Context, siteID *string, activeOnly bool) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM workers w
		JOIN sites s ON s.id = w.site_id
		WHERE ($1::text IS NULL OR w.site_id = $1)
		  AND ($2::bool = false OR w.status = 'active')
		ORDER BY w.name ASC
	`, workerColumns)

	rows, err := q.Query(ctx, query, siteID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker row: %w", err)
		}
		workers = append(workers, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate worker rows: %w", err)
	}

	return workers, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET site_id = $2,
			phone = $3,
			skills = $4,
			daily_wage = $5,
			status = $6,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, w.ID, w.SiteID, w.Phone, w.Skills, w.DailyWage, w.Status)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// Delete implements worker.WorkerRepository.
func (r *workerRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}
