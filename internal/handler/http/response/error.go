package response

import (
	"errors"
	"net/http"

	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/attendance"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/auth"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/cashbook"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/inventory"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/payroll"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/site"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/user"
	"github.com/siteworks-hq/siteworks-backend-go/internal/domain/worker"
	"github.com/siteworks-hq/siteworks-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Supervisor or admin access required")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")

	// Site domain errors
	case errors.Is(err, site.ErrSiteNotFound):
		NotFound(w, "Site not found")
	case errors.Is(err, site.ErrSiteNameExists):
		Conflict(w, "Site name already exists")

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerInactive):
		Conflict(w, "Worker is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Worker has no check-in time for this record", nil)
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrAlreadyProcessed):
		Conflict(w, "Payroll record already paid or cancelled")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrDataUnavailable):
		ServiceUnavailable(w, "Roster or attendance data unavailable")

	// Inventory and cashbook errors
	case errors.Is(err, inventory.ErrItemNotFound):
		NotFound(w, "Inventory item not found")
	case errors.Is(err, cashbook.ErrTransactionNotFound):
		NotFound(w, "Cash transaction not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
