package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/site"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
)

type siteRepository struct {
	db *database.DB
}

func NewSiteRepository(db *database.DB) site.SiteRepository {
	return &siteRepository{db: db}
}

// Create implements site.SiteRepository.
func (r *siteRepository) Create(ctx context.Context, s site.Site) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO sites (id, name, location, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.ID, s.Name, s.Location, s.Status).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return site.Site{}, fmt.Errorf("failed to create site: %w", err)
	}

	return s, nil
}

// GetByID implements site.SiteRepository.
func (r *siteRepository) GetByID(ctx context.Context, id string) (site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, location, status, created_at, updated_at
		FROM sites
		WHERE id = $1
	`

	var s site.Site
	err := q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Location, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return site.Site{}, site.ErrSiteNotFound
		}
		return site.Site{}, fmt.Errorf("failed to get site by id: %w", err)
	}

	return s, nil
}

// List implements site.SiteRepository.
func (r *siteRepository) List(ctx context.Context) ([]site.Site, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, location, status, created_at, updated_at
		FROM sites
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	defer rows.Close()

	var sites []site.Site
	for rows.Next() {
		var s site.Site
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan site row: %w", err)
		}
		sites = append(sites, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate site rows: %w", err)
	}

	return sites, nil
}

// Update implements site.SiteRepository.
func (r *siteRepository) Update(ctx context.Context, s site.Site) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sites
		SET name = $2, location = $3, status = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, s.ID, s.Name, s.Location, s.Status)
	if err != nil {
		return fmt.Errorf("failed to update site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}

// Delete implements site.SiteRepository.
func (r *siteRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM sites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return site.ErrSiteNotFound
	}

	return nil
}
