package candidate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
	"golang.org/x/sync/errgroup"
)

type CandidateServiceImpl struct {
	db                database.Transactor
	candidateRepo     candidate.CandidateRepository
	employeeRepo      employee.EmployeeRepository
	attendanceService attendance.AttendanceService
	fileService       file.FileService
	metrics           *metrics.Metrics
}

func NewCandidateService(
	db database.Transactor,
	candidateRepo candidate.CandidateRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	fileService file.FileService,
	m *metrics.Metrics,
) candidate.CandidateService {
	return &CandidateServiceImpl{
		db:                db,
		candidateRepo:     candidateRepo,
		employeeRepo:      employeeRepo,
		attendanceService: attendanceService,
		fileService:       fileService,
		metrics:           m,
	}
}

// RegisterCandidate implements candidate.CandidateService. Serial assignment,
// the insert and promotion share one transaction, so a failed promotion leaves
// no candidate behind.
func (s *CandidateServiceImpl) RegisterCandidate(ctx context.Context, req candidate.CreateCandidateRequest) (candidate.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return candidate.CandidateResponse{}, err
	}
	req.Normalize()

	taken, err := s.candidateRepo.ExistsByEmail(ctx, req.Email, nil)
	if err != nil {
		return candidate.CandidateResponse{}, fmt.Errorf("failed to check candidate email: %w", err)
	}
	if taken {
		return candidate.CandidateResponse{}, candidate.ErrEmailExists
	}

	uploaded, err := s.uploadFiles(ctx, &req)
	if err != nil {
		return candidate.CandidateResponse{}, err
	}

	newCandidate := candidate.Candidate{
		FullName:        req.FullName,
		Email:           req.Email,
		PhoneNumber:     req.PhoneNumber,
		Position:        employee.Position(req.Position),
		Status:          candidate.Status(req.Status),
		Experience:      *req.Experience,
		ResumeURL:       uploaded.resume,
		ProfileImageURL: uploaded.profileImage,
	}

	var (
		created  candidate.Candidate
		promoted *employee.Employee
	)
	err = s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.candidateRepo.LockSerial(txCtx); err != nil {
			return err
		}

		// Re-checked under the serial lock; the unique index still backs this up.
		taken, err := s.candidateRepo.ExistsByEmail(txCtx, newCandidate.Email, nil)
		if err != nil {
			return err
		}
		if taken {
			return candidate.ErrEmailExists
		}

		newCandidate.SrNo, err = s.candidateRepo.NextSerial(txCtx)
		if err != nil {
			return err
		}

		created, err = s.candidateRepo.Create(txCtx, newCandidate)
		if err != nil {
			return err
		}

		promoted, err = s.promote(txCtx, created)
		return err
	})
	if err != nil {
		s.removeFiles(ctx, uploaded)
		return candidate.CandidateResponse{}, err
	}

	s.metrics.CandidateRegistered(string(created.Status), promoted != nil)
	resp := s.toResponse(ctx, created)
	if promoted != nil {
		s.metrics.AttendanceSeeded(1)
		resp.EmployeeID = &promoted.ID
	}

	slog.Info("candidate registered", "candidate_id", created.ID, "sr_no", created.SrNo, "status", created.Status, "promoted", promoted != nil)
	return resp, nil
}

type uploadedFiles struct {
	resume       *string
	profileImage *string
}

// uploadFiles stores the resume and profile image concurrently. On failure any
// file that did make it to storage is removed again.
func (s *CandidateServiceImpl) uploadFiles(ctx context.Context, req *candidate.CreateCandidateRequest) (uploadedFiles, error) {
	var out uploadedFiles

	g, gCtx := errgroup.WithContext(ctx)

	if req.Resume != nil && req.ResumeHeader != nil {
		g.Go(func() error {
			path, err := s.fileService.UploadResume(gCtx, req.Resume, req.ResumeHeader.Filename)
			if err != nil {
				return err
			}
			out.resume = &path
			return nil
		})
	}

	if req.ProfileImage != nil && req.ProfileImageHeader != nil {
		g.Go(func() error {
			path, err := s.fileService.UploadProfileImage(gCtx, req.ProfileImage, req.ProfileImageHeader.Filename)
			if err != nil {
				return err
			}
			out.profileImage = &path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.removeFiles(ctx, out)
		return uploadedFiles{}, err
	}
	return out, nil
}

func (s *CandidateServiceImpl) removeFiles(ctx context.Context, files uploadedFiles) {
	for _, path := range []*string{files.resume, files.profileImage} {
		if path == nil {
			continue
		}
		if err := s.fileService.DeleteFile(ctx, *path); err != nil {
			slog.Warn("failed to remove orphaned upload", "path", *path, "error", err)
		}
	}
}

// GetCandidate implements candidate.CandidateService.
func (s *CandidateServiceImpl) GetCandidate(ctx context.Context, id string) (candidate.CandidateResponse, error) {
	if !validator.IsValidUUID(id) {
		return candidate.CandidateResponse{}, candidate.ErrCandidateNotFound
	}

	c, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return candidate.CandidateResponse{}, err
	}
	return s.toResponse(ctx, c), nil
}

// UpdateCandidate implements candidate.CandidateService.
func (s *CandidateServiceImpl) UpdateCandidate(ctx context.Context, req candidate.UpdateCandidateRequest) (candidate.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return candidate.CandidateResponse{}, err
	}
	req.Normalize()

	var updated candidate.Candidate
	err := s.db.WithTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.candidateRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		taken, err := s.candidateRepo.ExistsByEmail(txCtx, req.Email, &req.ID)
		if err != nil {
			return err
		}
		if taken {
			return candidate.ErrEmailExists
		}

		current.FullName = req.FullName
		current.Email = req.Email
		current.PhoneNumber = req.PhoneNumber
		current.Position = employee.Position(req.Position)
		current.Status = candidate.Status(req.Status)
		current.Experience = *req.Experience

		updated, err = s.candidateRepo.Update(txCtx, current)
		return err
	})
	if err != nil {
		return candidate.CandidateResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// DeleteCandidate implements candidate.CandidateService. Employees promoted
// from the candidate are kept.
func (s *CandidateServiceImpl) DeleteCandidate(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return candidate.ErrCandidateNotFound
	}

	c, err := s.candidateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.candidateRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.removeFiles(ctx, uploadedFiles{resume: c.ResumeURL, profileImage: c.ProfileImageURL})
	return nil
}

// ListCandidates implements candidate.CandidateService.
func (s *CandidateServiceImpl) ListCandidates(ctx context.Context) ([]candidate.CandidateResponse, error) {
	return s.list(ctx, nil)
}

// FilterCandidates implements candidate.CandidateService.
func (s *CandidateServiceImpl) FilterCandidates(ctx context.Context, req candidate.FilterCandidateRequest) ([]candidate.CandidateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	status := candidate.Status(req.Status)
	return s.list(ctx, &status)
}

func (s *CandidateServiceImpl) list(ctx context.Context, status *candidate.Status) ([]candidate.CandidateResponse, error) {
	candidates, err := s.candidateRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	responses := make([]candidate.CandidateResponse, 0, len(candidates))
	for _, c := range candidates {
		responses = append(responses, s.toResponse(ctx, c))
	}
	return responses, nil
}

// toResponse resolves stored file keys into fetchable URLs.
func (s *CandidateServiceImpl) toResponse(ctx context.Context, c candidate.Candidate) candidate.CandidateResponse {
	resp := candidate.ToResponse(c)
	resp.Resume = s.fileService.ResolveURL(ctx, c.ResumeURL)
	resp.ProfileImage = s.fileService.ResolveURL(ctx, c.ProfileImageURL)
	return resp
}
