package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for the attendance ledger
type AttendanceService interface {
	// ListAttendance retrieves attendance records, most recent first
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	// GetAttendance retrieves a single attendance record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance changes status and/or task and re-applies the employee snapshot
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// Seed creates the initial Absent record of a freshly promoted employee
	Seed(ctx context.Context, employeeID string) (Attendance, error)

	// SeedDaily creates an Absent record for every employee that has none on the given day
	SeedDaily(ctx context.Context, day time.Time) (int, error)
}
