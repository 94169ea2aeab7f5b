package memory

import (
	"context"
	"slices"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRepo struct {
	s *Store
}

func (r *leaveRepo) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	defer r.s.lock(ctx)()

	now := r.s.now()
	l.ID = uuid.NewString()
	l.CreatedAt, l.UpdatedAt = now, now
	r.s.leaves[l.ID] = l
	return l, nil
}

func (r *leaveRepo) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	defer r.s.lock(ctx)()

	l, ok := r.s.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	return l, nil
}

func (r *leaveRepo) ListByEmployeeID(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	defer r.s.lock(ctx)()

	out := []leave.Leave{}
	for _, l := range r.s.leaves {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, func(a, b leave.Leave) int { return b.LeaveDate.Compare(a.LeaveDate) })
	return out, nil
}

func (r *leaveRepo) UpdateStatus(ctx context.Context, id string, status leave.Status) (leave.Leave, error) {
	defer r.s.lock(ctx)()

	l, ok := r.s.leaves[id]
	if !ok {
		return leave.Leave{}, leave.ErrLeaveNotFound
	}
	if l.Status != leave.StatusPending {
		return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
	}
	l.Status = status
	l.UpdatedAt = r.s.now()
	r.s.leaves[id] = l
	return l, nil
}

func (r *leaveRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for id, l := range r.s.leaves {
		if l.EmployeeID == employeeID {
			delete(r.s.leaves, id)
			n++
		}
	}
	return n, nil
}
