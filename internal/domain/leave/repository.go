package leave

import (
	"context"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]Leave, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Leave, error)
	DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error)
}
