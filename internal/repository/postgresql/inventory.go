package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/inventory"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
)

type inventoryRepository struct {
	db *database.DB
}

func NewInventoryRepository(db *database.DB) inventory.ItemRepository {
	return &inventoryRepository{db: db}
}

// Create implements inventory.ItemRepository.
func (i *inventoryRepository) Create(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	q := GetQuerier(ctx, i.db)

	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	query := `
		INSERT INTO inventory_items (id, site_id, name, quantity, unit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query, item.ID, item.SiteID, item.Name, item.Quantity, item.Unit).
		Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("failed to create inventory item: %w", err)
	}

	return item, nil
}

// GetByID implements inventory.ItemRepository.
func (i *inventoryRepository) GetByID(ctx context.Context, id string) (inventory.Item, error) {
	q := GetQuerier(ctx, i.db)

	query := `
		SELECT id, site_id, name, quantity, unit, created_at, updated_at
		FROM inventory_items
		WHERE id = $1
	`

	var item inventory.Item
	err := q.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.SiteID, &item.Name, &item.Quantity, &item.Unit,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return inventory.Item{}, inventory.ErrItemNotFound
		}
		return inventory.Item{}, fmt.Errorf("failed to get inventory item by id: %w", err)
	}

	return item, nil
}

// List implements inventory.ItemRepository.
func (i *inventoryRepository) List(ctx context.Context, siteID *string) ([]inventory.Item, error) {
	q := GetQuerier(ctx, i.db)

	query := `
		SELECT id, site_id, name, quantity, unit, created_at, updated_at
		FROM inventory_items
		WHERE ($1::text IS NULL OR site_id = $1)
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var item inventory.Item
		err := rows.Scan(
			&item.ID, &item.SiteID, &item.Name, &item.Quantity, &item.Unit,
			&item.CreatedAt, &item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory rows: %w", err)
	}

	return items, nil
}

// Update implements inventory.ItemRepository.
func (i *inventoryRepository) Update(ctx context.Context, item inventory.Item) error {
	q := GetQuerier(ctx, i.db)

	query := `
		UPDATE inventory_items
		SET name = $2, quantity = $3, unit = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, item.ID, item.Name, item.Quantity, item.Unit)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}

// Delete implements inventory.ItemRepository.
func (i *inventoryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, i.db)

	tag, err := q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return inventory.ErrItemNotFound
	}

	return nil
}
