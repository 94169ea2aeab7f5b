package memory

import (
	"context"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepo struct {
	s *Store
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}

func (r *attendanceRepo) withEmail(a attendance.Attendance) attendance.Attendance {
	if e, ok := r.s.employees[a.EmployeeID]; ok {
		email := e.Email
		a.EmployeeEmail = &email
	}
	return a
}

func (r *attendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	now := r.s.now()
	a.ID = uuid.NewString()
	if a.Date.IsZero() {
		a.Date = now
	}
	a.CreatedAt, a.UpdatedAt = now, now
	a.EmployeeEmail = nil
	r.s.attendances[a.ID] = a
	return a, nil
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	a, ok := r.s.attendances[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.withEmail(a), nil
}

func (r *attendanceRepo) Update(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.attendances[a.ID]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	existing.FullName = a.FullName
	existing.Position = a.Position
	existing.Department = a.Department
	existing.ProfileImage = a.ProfileImage
	existing.Task = a.Task
	existing.Status = a.Status
	existing.UpdatedAt = r.s.now()
	r.s.attendances[a.ID] = existing
	return existing, nil
}

func (r *attendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	out := []attendance.Attendance{}
	for _, a := range r.s.attendances {
		if filter.EmployeeID != nil && a.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && string(a.Status) != *filter.Status {
			continue
		}
		if filter.From != nil && a.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.Date.Before(*filter.To) {
			continue
		}
		out = append(out, r.withEmail(a))
	}
	slices.SortFunc(out, func(a, b attendance.Attendance) int { return b.Date.Compare(a.Date) })
	return out, nil
}

func (r *attendanceRepo) FindPresentInRange(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Attendance, error) {
	defer r.s.lock(ctx)()

	var found *attendance.Attendance
	for _, a := range r.s.attendances {
		if a.EmployeeID != employeeID || a.Status != attendance.StatusPresent || !inRange(a.Date, from, to) {
			continue
		}
		if found == nil || a.Date.After(found.Date) {
			match := a
			found = &match
		}
	}
	return found, nil
}

func (r *attendanceRepo) ExistsInRange(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	defer r.s.lock(ctx)()

	for _, a := range r.s.attendances {
		if a.EmployeeID == employeeID && inRange(a.Date, from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (r *attendanceRepo) RefreshSnapshot(ctx context.Context, employeeID string, snapshot attendance.Snapshot) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	now := r.s.now()
	for id, a := range r.s.attendances {
		if a.EmployeeID != employeeID {
			continue
		}
		a.ApplySnapshot(snapshot)
		a.UpdatedAt = now
		r.s.attendances[id] = a
		n++
	}
	return n, nil
}

func (r *attendanceRepo) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	defer r.s.lock(ctx)()

	var n int64
	for id, a := range r.s.attendances {
		if a.EmployeeID == employeeID {
			delete(r.s.attendances, id)
			n++
		}
	}
	return n, nil
}
