package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/cashbook"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
)

type cashbookRepository struct {
	db *database.DB
}

func NewCashbookRepository(db *database.DB) cashbook.TransactionRepository {
	return &cashbookRepository{db: db}
}

const cashbookColumns = `id, site_id, type, amount, description, date, recorded_by, created_at, updated_at`

func scanTransaction(row pgx.Row) (cashbook.Transaction, error) {
	var t cashbook.Transaction
	err := row.Scan(
		&t.ID, &t.SiteID, &t.Type, &t.Amount, &t.Description,
		&t.Date, &t.RecordedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// Create implements cashbook.TransactionRepository.
func (c *cashbookRepository) Create(ctx context.Context, t cashbook.Transaction) (cashbook.Transaction, error) {
	q := GetQuerier(ctx, c.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO cash_transactions (id, site_id, type, amount, description, date, recorded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.ID, t.SiteID, t.Type, t.Amount, t.Description, t.Date, t.RecordedBy,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return cashbook.Transaction{}, fmt.Errorf("failed to create cash transaction: %w", err)
	}

	return t, nil
}

// GetByID implements cashbook.TransactionRepository.
func (c *cashbookRepository) GetByID(ctx context.Context, id string) (cashbook.Transaction, error) {
	q := GetQuerier(ctx, c.db)

	query := fmt.Sprintf(`SELECT %s FROM cash_transactions WHERE id = $1`, cashbookColumns)

	t, err := scanTransaction(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cashbook.Transaction{}, cashbook.ErrTransactionNotFound
		}
		return cashbook.Transaction{}, fmt.Errorf("failed to get cash transaction by id: %w", err)
	}

	return t, nil
}

// List implements cashbook.TransactionRepository.
func (c *cashbookRepository) List(ctx context.Context, filter cashbook.TransactionFilter) ([]cashbook.Transaction, error) {
	q := GetQuerier(ctx, c.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.SiteID != nil {
		addCondition("site_id = $%d", *filter.SiteID)
	}
	if filter.Type != nil {
		addCondition("type = $%d", *filter.Type)
	}
	if filter.StartDate != nil {
		addCondition("date >= $%d", *filter.StartDate)
	}
	if filter.EndDate != nil {
		addCondition("date <= $%d", *filter.EndDate)
	}

	query := fmt.Sprintf(`SELECT %s FROM cash_transactions`, cashbookColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}
	defer rows.Close()

	var transactions []cashbook.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash transaction row: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cash transaction rows: %w", err)
	}

	return transactions, nil
}

// Delete implements cashbook.TransactionRepository.
func (c *cashbookRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, c.db)

	tag, err := q.Exec(ctx, `DELETE FROM cash_transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cash transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cashbook.ErrTransactionNotFound
	}

	return nil
}
