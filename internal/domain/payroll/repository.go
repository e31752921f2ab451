package payroll

import "context"

// PayrollRepository defines data access for generated payroll records.
type PayrollRepository interface {
	// ReplaceForWindow deletes prior Pending output for the same
	// (site, start, end) window and inserts the fresh records in one
	// transaction. Paid and Cancelled records are never replaced.
	ReplaceForWindow(ctx context.Context, siteID string, startDate, endDate string, records []PayrollRecord) ([]PayrollRecord, error)

	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	List(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	Update(ctx context.Context, record PayrollRecord) error
}

// PayrollService defines payroll derivation and the flat Pending ->
// {Paid | Cancelled} state machine.
type PayrollService interface {
	// Generate joins the site roster with the attendance window and
	// derives one PayrollRecord per active worker. All-or-nothing.
	Generate(ctx context.Context, req GeneratePayrollRequest) ([]PayrollResponse, error)

	List(ctx context.Context, filter PayrollFilter) ([]PayrollResponse, error)
	Get(ctx context.Context, id string) (PayrollResponse, error)

	// MarkPaid moves Pending -> Paid and stamps the payment date.
	MarkPaid(ctx context.Context, id string) (PayrollResponse, error)

	// Cancel moves Pending -> Cancelled.
	Cancel(ctx context.Context, id string) (PayrollResponse, error)
}
