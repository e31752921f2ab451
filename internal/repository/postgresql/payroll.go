package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/payroll"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	p.id, p.worker_id, p.site_id, p.start_date, p.end_date,
	p.days_worked, p.overtime_hours, p.daily_wage,
	p.basic_pay, p.overtime_pay, p.deductions, p.total_pay,
	p.status, p.payment_date, p.processed_by, p.paid_by,
	p.created_at, p.updated_at, w.name AS worker_name`

func scanPayroll(row pgx.Row) (payroll.PayrollRecord, error) {
	var r payroll.PayrollRecord
	err := row.Scan(
		&r.ID, &r.WorkerID, &r.SiteID, &r.StartDate, &r.EndDate,
		&r.DaysWorked, &r.OvertimeHours, &r.DailyWage,
		&r.BasicPay, &r.OvertimePay, &r.Deductions, &r.TotalPay,
		&r.Status, &r.PaymentDate, &r.ProcessedBy, &r.PaidBy,
		&r.CreatedAt, &r.UpdatedAt, &r.WorkerName,
	)
	return r, err
}

// ReplaceForWindow implements payroll.PayrollRepository.
func (p *payrollRepository) ReplaceForWindow(ctx context.Context, siteID string, startDate, endDate string, records []payroll.PayrollRecord) ([]payroll.PayrollRecord, error) {
	persisted := make([]payroll.PayrollRecord, 0, len(records))

	err := WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		txCtx := ContextWithTx(ctx, tx)
		q := GetQuerier(txCtx, p.db)

		// Only Pending output is replaceable; Paid/Cancelled stay put.
		_, err := q.Exec(txCtx, `
			DELETE FROM payroll_records
			WHERE site_id = $1 AND start_date = $2 AND end_date = $3 AND status = $4
		`, siteID, startDate, endDate, payroll.StatusPending)
		if err != nil {
			return fmt.Errorf("failed to clear prior payroll window: %w", err)
		}

		insert := `
			INSERT INTO payroll_records (
				id, worker_id, site_id, start_date, end_date,
				days_worked, overtime_hours, daily_wage,
				basic_pay, overtime_pay, deductions, total_pay,
				status, payment_date, processed_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
			RETURNING created_at, updated_at
		`

		for _, r := range records {
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			err := q.QueryRow(txCtx, insert,
				r.ID, r.WorkerID, r.SiteID, r.StartDate, r.EndDate,
				r.DaysWorked, r.OvertimeHours, r.DailyWage,
				r.BasicPay, r.OvertimePay, r.Deductions, r.TotalPay,
				r.Status, r.PaymentDate, r.ProcessedBy,
			).Scan(&r.CreatedAt, &r.UpdatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert payroll record for worker %s: %w", r.WorkerID, err)
			}
			persisted = append(persisted, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return persisted, nil
}

// GetByID implements payroll.PayrollRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.id = $1
	`, payrollColumns)

	record, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record by id: %w", err)
	}

	return record, nil
}

// List implements payroll.PayrollRepository.
func (p *payrollRepository) List(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, p.db)

	var conditions []string
	var args []interface{}
	argPos := 1

	addCondition := func(clause string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(clause, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.SiteID != nil {
		addCondition("p.site_id = $%d", *filter.SiteID)
	}
	if filter.WorkerID != nil {
		addCondition("p.worker_id = $%d", *filter.WorkerID)
	}
	if filter.Status != nil {
		addCondition("p.status = $%d", *filter.Status)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records p
		JOIN workers w ON w.id = p.worker_id
	`, payrollColumns)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.start_date DESC, w.name ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		record, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll row: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll rows: %w", err)
	}

	return records, nil
}

// Update implements payroll.PayrollRepository.
func (p *payrollRepository) Update(ctx context.Context, record payroll.PayrollRecord) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records
		SET status = $2, payment_date = $3, paid_by = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, record.ID, record.Status, record.PaymentDate, record.PaidBy)
	if err != nil {
		return fmt.Errorf("failed to update payroll record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollRecordNotFound
	}

	return nil
}
