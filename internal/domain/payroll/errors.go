package payroll

import "errors"

var (
	ErrPayrollRecordNotFound = errors.New("payroll record not found")

	// ErrDataUnavailable: the roster or attendance fetch backing a
	// generation run failed; generation produces no partial output.
	ErrDataUnavailable = errors.New("roster or attendance data unavailable")

	// ErrAlreadyProcessed: the record left Pending; Paid and Cancelled
	// are terminal.
	ErrAlreadyProcessed = errors.New("payroll record already paid or cancelled")

	ErrInvalidPeriod = errors.New("invalid payroll period")
)
