package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/utils"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
)

type LeaveServiceImpl struct {
	db             database.Transactor
	leaveRepo      leave.LeaveRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	fileService    file.FileService
	location       *time.Location
	metrics        *metrics.Metrics
}

func NewLeaveService(
	db database.Transactor,
	leaveRepo leave.LeaveRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	location *time.Location,
	m *metrics.Metrics,
) leave.LeaveService {
	if location == nil {
		location = time.UTC
	}
	return &LeaveServiceImpl{
		db:             db,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		fileService:    fileService,
		location:       location,
		metrics:        m,
	}
}

// FileLeave implements leave.LeaveService. The leave date is reduced to its
// calendar day in the configured location and matched against any Present
// record of that day.
func (s *LeaveServiceImpl) FileLeave(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	day, err := utils.ParseDay(strings.TrimSpace(req.LeaveDate), s.location)
	if err != nil {
		return leave.LeaveResponse{}, validator.ValidationErrors{{
			Field:   "leaveDate",
			Message: "leaveDate must be YYYY-MM-DD or an RFC3339 timestamp",
		}}
	}
	from, to := utils.DayRange(day, s.location)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	document := req.LeaveDocument
	if req.File != nil && req.FileHeader != nil {
		path, err := s.fileService.UploadLeaveDocument(ctx, req.EmployeeID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveResponse{}, err
		}
		document = &path
	}

	var created leave.Leave
	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		present, err := s.attendanceRepo.FindPresentInRange(txCtx, req.EmployeeID, from, to)
		if err != nil {
			return err
		}
		if present == nil {
			return leave.ErrNotPresentOnDate
		}

		created, err = s.leaveRepo.Create(txCtx, leave.Leave{
			EmployeeID:    req.EmployeeID,
			FullName:      present.FullName,
			Designation:   present.Position,
			LeaveDate:     from,
			LeaveDocument: document,
			Reason:        strings.TrimSpace(req.Reason),
			Status:        leave.StatusPending,
		})
		return err
	})
	if err != nil {
		if document != req.LeaveDocument {
			if delErr := s.fileService.DeleteFile(ctx, *document); delErr != nil {
				slog.Warn("failed to remove orphaned leave document", "path", *document, "error", delErr)
			}
		}
		if errors.Is(err, leave.ErrNotPresentOnDate) {
			s.metrics.LeaveFiled("rejected")
		}
		return leave.LeaveResponse{}, err
	}

	s.metrics.LeaveFiled("accepted")
	slog.Info("leave filed", "leave_id", created.ID, "employee_id", created.EmployeeID, "leave_date", from.Format("2006-01-02"))
	return s.toResponse(ctx, created), nil
}

// ListLeaves implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaves(ctx context.Context, employeeID string) ([]leave.LeaveResponse, error) {
	if !validator.IsValidUUID(employeeID) {
		return nil, employee.ErrEmployeeNotFound
	}
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	leaves, err := s.leaveRepo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, s.toResponse(ctx, l))
	}
	return responses, nil
}

// UpdateLeaveStatus implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, req leave.UpdateLeaveStatusRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	updated, err := s.leaveRepo.UpdateStatus(ctx, req.ID, leave.Status(req.Status))
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	slog.Info("leave status updated", "leave_id", updated.ID, "status", updated.Status)
	return s.toResponse(ctx, updated), nil
}

// toResponse resolves stored file keys into fetchable URLs.
func (s *LeaveServiceImpl) toResponse(ctx context.Context, l leave.Leave) leave.LeaveResponse {
	resp := leave.ToResponse(l)
	resp.LeaveDocument = s.fileService.ResolveURL(ctx, l.LeaveDocument)
	return resp
}
