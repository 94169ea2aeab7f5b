package candidate

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
)

// promote turns a freshly registered candidate into an employee and seeds its
// first attendance record. Rejected candidates are left alone and yield nil.
func (s *CandidateServiceImpl) promote(ctx context.Context, c candidate.Candidate) (*employee.Employee, error) {
	if !c.Status.Promotable() {
		return nil, nil
	}

	emp, err := s.employeeRepo.Create(ctx, employee.Employee{
		FullName:        c.FullName,
		Email:           c.Email,
		PhoneNumber:     c.PhoneNumber,
		Position:        c.Position,
		Department:      employee.DefaultDepartment,
		Experience:      c.Experience,
		ProfileImageURL: c.ProfileImageURL,
		DateOfJoining:   time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to promote candidate %s: %w", c.ID, err)
	}

	if _, err := s.attendanceService.Seed(ctx, emp.ID); err != nil {
		return nil, fmt.Errorf("failed to promote candidate %s: %w", c.ID, err)
	}

	return &emp, nil
}
