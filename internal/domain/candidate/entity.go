package candidate

import (
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
)

type Candidate struct {
	ID              string
	SrNo            int
	FullName        string
	Email           string
	PhoneNumber     string
	Position        employee.Position
	Status          Status
	Experience      float64
	ResumeURL       *string
	ProfileImageURL *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Status string

const (
	StatusNew       Status = "New"
	StatusScheduled Status = "Scheduled"
	StatusOngoing   Status = "Ongoing"
	StatusSelected  Status = "Selected"
	StatusRejected  Status = "Rejected"
)

var Statuses = []string{
	string(StatusNew),
	string(StatusScheduled),
	string(StatusOngoing),
	string(StatusSelected),
	string(StatusRejected),
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNew, StatusScheduled, StatusOngoing, StatusSelected, StatusRejected:
		return true
	}
	return false
}

// Promotable reports whether a candidate registered with this status
// becomes an employee.
func (s Status) Promotable() bool {
	switch s {
	case StatusNew, StatusScheduled, StatusOngoing, StatusSelected:
		return true
	}
	return false
}
