package leave

import (
	"context"
)

type LeaveService interface {
	// FileLeave creates a Pending leave if the employee was Present on the leave date
	FileLeave(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)

	ListLeaves(ctx context.Context, employeeID string) ([]LeaveResponse, error)

	// UpdateLeaveStatus approves or rejects a Pending leave
	UpdateLeaveStatus(ctx context.Context, req UpdateLeaveStatusRequest) (LeaveResponse, error)
}
