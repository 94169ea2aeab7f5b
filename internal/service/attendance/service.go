package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
)

type AttendanceServiceImpl struct {
	db             database.Transactor
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	fileService    file.FileService
	location       *time.Location
	metrics        *metrics.Metrics
	now            func() time.Time
}

func NewAttendanceService(
	db database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	location *time.Location,
	m *metrics.Metrics,
) attendance.AttendanceService {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		fileService:    fileService,
		location:       location,
		metrics:        m,
		now:            time.Now,
	}
}

// applySnapshot re-resolves the owning employee and copies its identity
// fields into a. Records whose employee is gone are rejected.
func (s *AttendanceServiceImpl) applySnapshot(ctx context.Context, a *attendance.Attendance) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, a.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, attendance.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve employee %s: %w", a.EmployeeID, err)
	}
	a.ApplySnapshot(attendance.NewSnapshot(emp))
	return emp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	if filter.Date != nil {
		day, err := utils.ParseDay(strings.TrimSpace(*filter.Date), s.location)
		if err != nil {
			return nil, err
		}
		from, to := utils.DayRange(day, s.location)
		filter.From, filter.To = &from, &to
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, s.toResponse(ctx, a))
	}
	return responses, nil
}

// GetAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	if !validator.IsValidUUID(id) {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
	}

	a, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return s.toResponse(ctx, a), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	var updated attendance.Attendance
	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.attendanceRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.Status != nil {
			current.Status = attendance.Status(*req.Status)
		}
		if req.Task != nil {
			current.Task = strings.TrimSpace(*req.Task)
			if current.Task == "" {
				current.Task = attendance.DefaultTask
			}
		}

		emp, err := s.applySnapshot(txCtx, &current)
		if err != nil {
			return err
		}

		updated, err = s.attendanceRepo.Update(txCtx, current)
		if err != nil {
			return err
		}
		updated.EmployeeEmail = &emp.Email
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// Seed implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Seed(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	return s.seed(ctx, employeeID, s.now())
}

func (s *AttendanceServiceImpl) seed(ctx context.Context, employeeID string, date time.Time) (attendance.Attendance, error) {
	a := attendance.Attendance{
		EmployeeID: employeeID,
		Task:       attendance.DefaultTask,
		Status:     attendance.StatusAbsent,
		Date:       date,
	}
	if _, err := s.applySnapshot(ctx, &a); err != nil {
		return attendance.Attendance{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, a)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to seed attendance for employee %s: %w", employeeID, err)
	}
	return created, nil
}

// SeedDaily implements attendance.AttendanceService. Employees deleted while
// the seed runs are skipped.
func (s *AttendanceServiceImpl) SeedDaily(ctx context.Context, day time.Time) (int, error) {
	from, to := utils.DayRange(day, s.location)

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list employees: %w", err)
	}

	created := 0
	var errs []error
	for _, emp := range employees {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		seeded := false
		err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
			exists, err := s.attendanceRepo.ExistsInRange(txCtx, emp.ID, from, to)
			if err != nil || exists {
				return err
			}
			_, err = s.seed(txCtx, emp.ID, from)
			seeded = err == nil
			return err
		})
		switch {
		case err == nil && seeded:
			created++
		case err != nil && !errors.Is(err, attendance.ErrEmployeeNotFound):
			errs = append(errs, fmt.Errorf("employee %s: %w", emp.ID, err))
		}
	}

	s.metrics.AttendanceSeeded(created)
	slog.Info("daily attendance seeded", "day", from.Format("2006-01-02"), "created", created, "employees", len(employees))

	return created, errors.Join(errs...)
}

// toResponse resolves stored file keys into fetchable URLs.
func (s *AttendanceServiceImpl) toResponse(ctx context.Context, a attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.ToResponse(a)
	if url := s.fileService.ResolveURL(ctx, &a.ProfileImage); url != nil {
		resp.ProfileImage = *url
	}
	return resp
}
