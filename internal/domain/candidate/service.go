package candidate

import (
	"context"
)

// CandidateService defines business logic for the hiring pipeline
type CandidateService interface {
	// RegisterCandidate stores a candidate and promotes it to an employee when its status allows
	RegisterCandidate(ctx context.Context, req CreateCandidateRequest) (CandidateResponse, error)

	GetCandidate(ctx context.Context, id string) (CandidateResponse, error)

	// UpdateCandidate edits a candidate. Promotion is never re-evaluated here.
	UpdateCandidate(ctx context.Context, req UpdateCandidateRequest) (CandidateResponse, error)

	DeleteCandidate(ctx context.Context, id string) error

	ListCandidates(ctx context.Context) ([]CandidateResponse, error)

	// FilterCandidates lists candidates in one pipeline status
	FilterCandidates(ctx context.Context, req FilterCandidateRequest) ([]CandidateResponse, error)
}
