package candidate

import "context"

type CandidateRepository interface {
	Create(ctx context.Context, newCandidate Candidate) (Candidate, error)
	GetByID(ctx context.Context, id string) (Candidate, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error)
	Update(ctx context.Context, c Candidate) (Candidate, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, status *Status) ([]Candidate, error)

	// LockSerial serializes srNo assignment until the surrounding
	// transaction ends.
	LockSerial(ctx context.Context) error

	// NextSerial returns max(srNo)+1, or 1 when there are no candidates.
	NextSerial(ctx context.Context) (int, error)
}
