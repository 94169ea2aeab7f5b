package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// Update persists status, task and the snapshot of an existing record
	Update(ctx context.Context, attendance Attendance) (Attendance, error)

	// List retrieves attendance records ordered by date, most recent first
	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)

	// FindPresentInRange returns the Present record of employeeID whose date
	// falls in [from, to). The row is share-locked when called in a transaction.
	FindPresentInRange(ctx context.Context, employeeID string, from, to time.Time) (*Attendance, error)

	// ExistsInRange reports whether employeeID has any record in [from, to)
	ExistsInRange(ctx context.Context, employeeID string, from, to time.Time) (bool, error)

	// RefreshSnapshot rewrites the denormalized fields of every record of employeeID
	RefreshSnapshot(ctx context.Context, employeeID string, snapshot Snapshot) (int64, error)

	// DeleteByEmployeeID removes every record of employeeID
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
