package employee

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
)

type EmployeeServiceImpl struct {
	db             database.Transactor
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	fileService    file.FileService
	metrics        *metrics.Metrics
}

func NewEmployeeService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	fileService file.FileService,
	m *metrics.Metrics,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		fileService:    fileService,
		metrics:        m,
	}
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, s.toResponse(ctx, emp))
	}
	return responses, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return s.toResponse(ctx, emp), nil
}

// UpdateEmployee implements employee.EmployeeService. The attendance snapshot
// of the employee is refreshed in the same transaction.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	req.Normalize()

	var updated employee.Employee
	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.employeeRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		taken, err := s.employeeRepo.ExistsByEmail(txCtx, req.Email, &req.ID)
		if err != nil {
			return err
		}
		if taken {
			return employee.ErrEmailExists
		}

		current.FullName = req.FullName
		current.Email = req.Email
		current.PhoneNumber = req.PhoneNumber
		current.Position = employee.Position(req.Position)
		current.Department = req.Department
		current.Experience = *req.Experience

		updated, err = s.employeeRepo.Update(txCtx, current)
		if err != nil {
			return err
		}

		refreshed, err := s.attendanceRepo.RefreshSnapshot(txCtx, updated.ID, attendance.NewSnapshot(updated))
		if err != nil {
			return err
		}
		slog.Debug("attendance snapshot refreshed", "employee_id", updated.ID, "rows", refreshed)
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// DeleteEmployee implements employee.EmployeeService. Attendance and leaves
// of the employee are removed in the same transaction.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) (employee.DeleteEmployeeResponse, error) {
	if !validator.IsValidUUID(id) {
		return employee.DeleteEmployeeResponse{}, employee.ErrEmployeeNotFound
	}

	result := employee.DeleteEmployeeResponse{ID: id}
	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.employeeRepo.GetByID(txCtx, id); err != nil {
			return err
		}

		var err error
		if result.AttendanceDeleted, err = s.attendanceRepo.DeleteByEmployeeID(txCtx, id); err != nil {
			return err
		}
		if result.LeaveDeleted, err = s.leaveRepo.DeleteByEmployeeID(txCtx, id); err != nil {
			return err
		}
		return s.employeeRepo.Delete(txCtx, id)
	})
	if err != nil {
		return employee.DeleteEmployeeResponse{}, err
	}

	s.metrics.EmployeeDeleted()
	slog.Info("employee deleted",
		"employee_id", id,
		"attendance_deleted", result.AttendanceDeleted,
		"leave_deleted", result.LeaveDeleted,
	)
	return result, nil
}

// toResponse resolves stored file keys into fetchable URLs.
func (s *EmployeeServiceImpl) toResponse(ctx context.Context, emp employee.Employee) employee.EmployeeResponse {
	resp := employee.ToResponse(emp)
	resp.ProfileImage = s.fileService.ResolveURL(ctx, emp.ProfileImageURL)
	return resp
}
