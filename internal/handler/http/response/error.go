package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
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
	// Candidate domain errors
	case errors.Is(err, candidate.ErrCandidateNotFound):
		NotFound(w, "Candidate not found")
	case errors.Is(err, candidate.ErrEmailExists):
		Conflict(w, "Candidate with this email already exists")
	case errors.Is(err, candidate.ErrSerialConflict):
		Conflict(w, "Candidate serial number already taken, retry the request")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Employee with this email already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave not found")
	case errors.Is(err, leave.ErrNotPresentOnDate):
		DomainError(w, err.Error())
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		DomainError(w, "Leave already processed")

	case errors.Is(err, file.ErrInvalidFileType), errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
