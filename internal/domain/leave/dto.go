package leave

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	EmployeeID    string  `json:"-"`
	LeaveDate     string  `json:"leaveDate"`
	Reason        string  `json:"reason"`
	LeaveDocument *string `json:"leaveDocument,omitempty"`

	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Required("employeeId", r.EmployeeID)
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employeeId", "employeeId must be a valid UUID")
	}
	errs.Required("leaveDate", r.LeaveDate)
	errs.Required("reason", r.Reason)

	if r.FileHeader != nil {
		ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
		if ext != ".pdf" && ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs.Add("leaveDocument", "invalid file type: only pdf, jpg, jpeg, png allowed")
		} else if r.FileHeader.Size > 10<<20 { // 10MB
			errs.Add("leaveDocument", "leave document size must not exceed 10MB")
		}
	}

	return errs.Err()
}

type UpdateLeaveStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	switch Status(r.Status) {
	case StatusApproved, StatusRejected:
	default:
		errs.Add("status", "status must be Approved or Rejected")
	}

	return errs.Err()
}

type LeaveResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	FullName      string  `json:"fullname"`
	Designation   string  `json:"designation"`
	LeaveDate     string  `json:"leaveDate"`
	LeaveDocument *string `json:"leaveDocument,omitempty"`
	Reason        string  `json:"reason"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func ToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:            l.ID,
		EmployeeID:    l.EmployeeID,
		FullName:      l.FullName,
		Designation:   l.Designation,
		LeaveDate:     l.LeaveDate.Format(time.RFC3339),
		LeaveDocument: l.LeaveDocument,
		Reason:        l.Reason,
		Status:        string(l.Status),
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
}
