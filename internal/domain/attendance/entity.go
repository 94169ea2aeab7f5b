package attendance

import (
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
)

type Attendance struct {
	ID         string
	EmployeeID string

	// Snapshot of the owning employee, refreshed on every write.
	FullName     string
	Position     string
	Department   string
	ProfileImage string

	Task      string
	Status    Status
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeEmail *string
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

const DefaultTask = "--"

func (s Status) IsValid() bool {
	return s == StatusPresent || s == StatusAbsent
}

// Snapshot is the set of employee fields denormalized into attendance rows.
type Snapshot struct {
	FullName     string
	Position     string
	Department   string
	ProfileImage string
}

// NewSnapshot copies the identity fields of emp, applying the ledger defaults.
func NewSnapshot(emp employee.Employee) Snapshot {
	snap := Snapshot{
		FullName:   emp.FullName,
		Position:   string(emp.Position),
		Department: emp.Department,
	}
	if snap.Department == "" {
		snap.Department = employee.DefaultDepartment
	}
	if emp.ProfileImageURL != nil {
		snap.ProfileImage = *emp.ProfileImageURL
	}
	return snap
}

// ApplySnapshot overwrites the denormalized fields of a with s.
func (a *Attendance) ApplySnapshot(s Snapshot) {
	a.FullName = s.FullName
	a.Position = s.Position
	a.Department = s.Department
	a.ProfileImage = s.ProfileImage
}
