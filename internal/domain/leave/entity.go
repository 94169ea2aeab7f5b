package leave

import "time"

type Leave struct {
	ID            string
	EmployeeID    string
	FullName      string
	Designation   string
	LeaveDate     time.Time
	LeaveDocument *string
	Reason        string
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}
