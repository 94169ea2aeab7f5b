package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/storage"
	"github.com/google/uuid"
)

var ErrInvalidFileType = errors.New("invalid file type")

type FileService interface {
	// UploadResume stores a candidate resume, PDF only
	UploadResume(ctx context.Context, file io.Reader, filename string) (string, error)

	// UploadProfileImage stores a candidate profile image, jpg/jpeg/png only
	UploadProfileImage(ctx context.Context, file io.Reader, filename string) (string, error)

	// UploadLeaveDocument stores a leave supporting document
	UploadLeaveDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error)

	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// ResolveURL maps a stored key to a URL clients can fetch, nil when the
	// key is empty or cannot be resolved
	ResolveURL(ctx context.Context, path *string) *string
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

func (s *fileServiceImpl) upload(ctx context.Context, file io.Reader, filename, dir string, allowed ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(allowed, ext) {
		return "", fmt.Errorf("%w: only %s allowed", ErrInvalidFileType, strings.Join(allowed, ", "))
	}

	path := filepath.ToSlash(filepath.Join(dir, fmt.Sprintf("%s-%d%s", uuid.New().String(), time.Now().Unix(), ext)))

	uploadedPath, err := s.storage.Upload(ctx, file, path, contentTypes[ext])
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	return uploadedPath, nil
}

func (s *fileServiceImpl) UploadResume(ctx context.Context, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, file, filename, "resume", ".pdf")
}

func (s *fileServiceImpl) UploadProfileImage(ctx context.Context, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, file, filename, "profileImage", ".jpg", ".jpeg", ".png")
}

func (s *fileServiceImpl) UploadLeaveDocument(ctx context.Context, employeeID string, file io.Reader, filename string) (string, error) {
	return s.upload(ctx, file, filename, filepath.Join("leave", employeeID), ".pdf", ".jpg", ".jpeg", ".png")
}

// DeleteFile deletes a file
func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

// GetFileURL generates URL to access file
func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}

func (s *fileServiceImpl) ResolveURL(ctx context.Context, path *string) *string {
	if path == nil || *path == "" {
		return nil
	}
	url, err := s.GetFileURL(ctx, *path, 0)
	if err != nil {
		slog.Warn("failed to resolve file url", "path", *path, "error", err)
		return nil
	}
	return &url
}
