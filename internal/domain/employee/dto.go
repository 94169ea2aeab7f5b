package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
)

type UpdateEmployeeRequest struct {
	ID          string   `json:"-"`
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Position    string   `json:"position"`
	Department  string   `json:"department"`
	Experience  *float64 `json:"experience"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	errs.Required("fullname", r.FullName)

	if validator.IsEmpty(r.Email) {
		errs.Required("email", r.Email)
	} else if !validator.IsValidEmail(strings.TrimSpace(r.Email)) {
		errs.Add("email", "email is not valid")
	}

	if validator.IsEmpty(r.PhoneNumber) {
		errs.Required("phoneNumber", r.PhoneNumber)
	} else if !validator.IsValidPhoneNumber(strings.TrimSpace(r.PhoneNumber)) {
		errs.Add("phoneNumber", "phone number must be 10 digits")
	}

	if validator.IsEmpty(r.Position) {
		errs.Required("position", r.Position)
	} else if !Position(r.Position).IsValid() {
		errs.Add("position", "position must be one of: "+strings.Join(Positions, ", "))
	}

	if r.Experience == nil {
		errs.Add("experience", "experience is required")
	} else if *r.Experience < 0 {
		errs.Add("experience", "experience must not be negative")
	}

	return errs.Err()
}

// Normalize trims input and applies the department default.
func (r *UpdateEmployeeRequest) Normalize() {
	r.FullName = strings.ToLower(strings.TrimSpace(r.FullName))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Department = strings.TrimSpace(r.Department)
	if r.Department == "" {
		r.Department = DefaultDepartment
	}
}

type EmployeeResponse struct {
	ID            string  `json:"id"`
	FullName      string  `json:"fullname"`
	Email         string  `json:"email"`
	PhoneNumber   string  `json:"phoneNumber"`
	Position      string  `json:"position"`
	Department    string  `json:"department"`
	Experience    float64 `json:"experience"`
	ProfileImage  *string `json:"profileImage,omitempty"`
	DateOfJoining string  `json:"dateOfJoining"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type DeleteEmployeeResponse struct {
	ID                string `json:"id"`
	AttendanceDeleted int64  `json:"attendanceDeleted"`
	LeaveDeleted      int64  `json:"leaveDeleted"`
}

func ToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            emp.ID,
		FullName:      emp.FullName,
		Email:         emp.Email,
		PhoneNumber:   emp.PhoneNumber,
		Position:      string(emp.Position),
		Department:    emp.Department,
		Experience:    emp.Experience,
		ProfileImage:  emp.ProfileImageURL,
		DateOfJoining: emp.DateOfJoining.Format(time.RFC3339),
		CreatedAt:     emp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     emp.UpdatedAt.Format(time.RFC3339),
	}
}
