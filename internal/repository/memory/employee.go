package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepo struct {
	s *Store
}

func (r *employeeRepo) emailTaken(email, selfID string) bool {
	for id, e := range r.s.employees {
		if id != selfID && strings.EqualFold(e.Email, email) {
			return true
		}
	}
	return false
}

func (r *employeeRepo) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	if r.emailTaken(newEmployee.Email, "") {
		return employee.Employee{}, employee.ErrEmailExists
	}
	now := r.s.now()
	newEmployee.ID = uuid.NewString()
	if newEmployee.DateOfJoining.IsZero() {
		newEmployee.DateOfJoining = now
	}
	if newEmployee.Department == "" {
		newEmployee.Department = employee.DefaultDepartment
	}
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.s.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	e, ok := r.s.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *employeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	defer r.s.lock(ctx)()

	out := make([]employee.Employee, 0, len(r.s.employees))
	for _, e := range r.s.employees {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b employee.Employee) int { return b.DateOfJoining.Compare(a.DateOfJoining) })
	return out, nil
}

func (r *employeeRepo) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	defer r.s.lock(ctx)()

	self := ""
	if excludeID != nil {
		self = *excludeID
	}
	return r.emailTaken(email, self), nil
}

func (r *employeeRepo) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.employees[emp.ID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	if r.emailTaken(emp.Email, emp.ID) {
		return employee.Employee{}, employee.ErrEmailExists
	}
	existing.FullName = emp.FullName
	existing.Email = emp.Email
	existing.PhoneNumber = emp.PhoneNumber
	existing.Position = emp.Position
	existing.Department = emp.Department
	existing.Experience = emp.Experience
	existing.UpdatedAt = r.s.now()
	r.s.employees[emp.ID] = existing
	return existing, nil
}

func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.employees[id]; !ok {
		return employee.ErrEmployeeNotFound
	}
	delete(r.s.employees, id)
	return nil
}
