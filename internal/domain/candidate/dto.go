package candidate

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
)

const maxUploadSize = 10 << 20 // 10MB

type CreateCandidateRequest struct {
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Position    string   `json:"position"`
	Status      string   `json:"status"`
	Experience  *float64 `json:"experience"`

	Resume             multipart.File        `json:"-"`
	ResumeHeader       *multipart.FileHeader `json:"-"`
	ProfileImage       multipart.File        `json:"-"`
	ProfileImageHeader *multipart.FileHeader `json:"-"`
}

func (r *CreateCandidateRequest) Validate() error {
	var errs validator.ValidationErrors

	validateFields(&errs, r.FullName, r.Email, r.PhoneNumber, r.Position, r.Status, r.Experience)

	if r.ResumeHeader != nil {
		if ext := strings.ToLower(filepath.Ext(r.ResumeHeader.Filename)); ext != ".pdf" {
			errs.Add("resume", "only PDF files are allowed for resume")
		} else if r.ResumeHeader.Size > maxUploadSize {
			errs.Add("resume", "resume size must not exceed 10MB")
		}
	}

	if r.ProfileImageHeader != nil {
		ext := strings.ToLower(filepath.Ext(r.ProfileImageHeader.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
			errs.Add("profileImage", "only JPEG and PNG images are allowed for profile image")
		} else if r.ProfileImageHeader.Size > maxUploadSize {
			errs.Add("profileImage", "profile image size must not exceed 10MB")
		}
	}

	return errs.Err()
}

// Normalize lowercases identity fields and applies the status default.
func (r *CreateCandidateRequest) Normalize() {
	r.FullName = strings.ToLower(strings.TrimSpace(r.FullName))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Position = strings.TrimSpace(r.Position)
	r.Status = strings.TrimSpace(r.Status)
	if r.Status == "" {
		r.Status = string(StatusNew)
	}
}

type UpdateCandidateRequest struct {
	ID          string   `json:"-"`
	FullName    string   `json:"fullname"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Position    string   `json:"position"`
	Status      string   `json:"status"`
	Experience  *float64 `json:"experience"`
}

func (r *UpdateCandidateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}
	errs.Required("status", r.Status)
	validateFields(&errs, r.FullName, r.Email, r.PhoneNumber, r.Position, r.Status, r.Experience)

	return errs.Err()
}

func (r *UpdateCandidateRequest) Normalize() {
	r.FullName = strings.ToLower(strings.TrimSpace(r.FullName))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.PhoneNumber = strings.TrimSpace(r.PhoneNumber)
	r.Position = strings.TrimSpace(r.Position)
	r.Status = strings.TrimSpace(r.Status)
}

type FilterCandidateRequest struct {
	Status string `json:"status"`
}

func (r *FilterCandidateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs.Add("status", "status is required for filtering candidates")
	} else if !Status(r.Status).IsValid() {
		errs.Add("status", "invalid status. Allowed values: "+strings.Join(Statuses, ", "))
	}

	return errs.Err()
}

func validateFields(errs *validator.ValidationErrors, fullName, email, phone, position, status string, experience *float64) {
	errs.Required("fullname", fullName)

	if validator.IsEmpty(email) {
		errs.Required("email", email)
	} else if !validator.IsValidEmail(strings.TrimSpace(email)) {
		errs.Add("email", "email is not valid")
	}

	if validator.IsEmpty(phone) {
		errs.Required("phoneNumber", phone)
	} else if !validator.IsValidPhoneNumber(strings.TrimSpace(phone)) {
		errs.Add("phoneNumber", "phone number must be 10 digits")
	}

	if validator.IsEmpty(position) {
		errs.Required("position", position)
	} else if !employee.Position(strings.TrimSpace(position)).IsValid() {
		errs.Add("position", "position must be one of: "+strings.Join(employee.Positions, ", "))
	}

	if !validator.IsEmpty(status) && !Status(strings.TrimSpace(status)).IsValid() {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}

	if experience == nil {
		errs.Add("experience", "experience is required")
	} else if *experience < 0 {
		errs.Add("experience", "experience must not be negative")
	}
}

type CandidateResponse struct {
	ID           string  `json:"id"`
	SrNo         int     `json:"srNo"`
	FullName     string  `json:"fullname"`
	Email        string  `json:"email"`
	PhoneNumber  string  `json:"phoneNumber"`
	Position     string  `json:"position"`
	Status       string  `json:"status"`
	Experience   float64 `json:"experience"`
	Resume       *string `json:"resume,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`

	// Set only by registration when the candidate was promoted.
	EmployeeID *string `json:"employeeId,omitempty"`
}

func ToResponse(c Candidate) CandidateResponse {
	return CandidateResponse{
		ID:           c.ID,
		SrNo:         c.SrNo,
		FullName:     c.FullName,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		Position:     string(c.Position),
		Status:       string(c.Status),
		Experience:   c.Experience,
		Resume:       c.ResumeURL,
		ProfileImage: c.ProfileImageURL,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
}
