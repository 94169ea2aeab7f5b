package attendance

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type UpdateAttendanceRequest struct {
	ID     string  `json:"-"`
	Status *string `json:"status,omitempty"`
	Task   *string `json:"task,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.Status != nil && !Status(*r.Status).IsValid() {
		errs.Add("status", "status must be Present or Absent")
	}

	if r.Status == nil && r.Task == nil {
		errs.Add("status", "status or task is required")
	}

	return errs.Err()
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employeeId,omitempty"`
	Status     *string `json:"status,omitempty"`
	Date       *string `json:"date,omitempty"` // YYYY-MM-DD

	// Resolved by the service from Date.
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employeeId", "employeeId must be a valid UUID")
	}

	if f.Status != nil && !Status(*f.Status).IsValid() {
		errs.Add("status", "status must be Present or Absent")
	}

	if f.Date != nil {
		if _, ok := validator.IsValidDate(strings.TrimSpace(*f.Date)); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	EmployeeEmail *string `json:"employeeEmail,omitempty"`
	FullName      string  `json:"fullname"`
	Position      string  `json:"position"`
	Department    string  `json:"department"`
	ProfileImage  string  `json:"profileImage"`
	Task          string  `json:"task"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		EmployeeID:    a.EmployeeID,
		EmployeeEmail: a.EmployeeEmail,
		FullName:      a.FullName,
		Position:      a.Position,
		Department:    a.Department,
		ProfileImage:  a.ProfileImage,
		Task:          a.Task,
		Status:        string(a.Status),
		Date:          a.Date.Format(time.RFC3339Nano),
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     a.UpdatedAt.Format(time.RFC3339),
	}
}
