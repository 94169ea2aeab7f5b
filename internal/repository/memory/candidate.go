package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/google/uuid"
)

type candidateRepo struct {
	s *Store
}

func (r *candidateRepo) uniqueViolation(c candidate.Candidate) error {
	for id, existing := range r.s.candidates {
		if id == c.ID {
			continue
		}
		if strings.EqualFold(existing.Email, c.Email) {
			return candidate.ErrEmailExists
		}
		if existing.SrNo == c.SrNo {
			return candidate.ErrSerialConflict
		}
	}
	return nil
}

func (r *candidateRepo) Create(ctx context.Context, newCandidate candidate.Candidate) (candidate.Candidate, error) {
	defer r.s.lock(ctx)()

	newCandidate.ID = uuid.NewString()
	if err := r.uniqueViolation(newCandidate); err != nil {
		return candidate.Candidate{}, err
	}
	now := r.s.now()
	newCandidate.CreatedAt, newCandidate.UpdatedAt = now, now
	r.s.candidates[newCandidate.ID] = newCandidate
	return newCandidate, nil
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	defer r.s.lock(ctx)()

	c, ok := r.s.candidates[id]
	if !ok {
		return candidate.Candidate{}, candidate.ErrCandidateNotFound
	}
	return c, nil
}

func (r *candidateRepo) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	defer r.s.lock(ctx)()

	for id, c := range r.s.candidates {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.EqualFold(c.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *candidateRepo) Update(ctx context.Context, c candidate.Candidate) (candidate.Candidate, error) {
	defer r.s.lock(ctx)()

	existing, ok := r.s.candidates[c.ID]
	if !ok {
		return candidate.Candidate{}, candidate.ErrCandidateNotFound
	}
	c.SrNo = existing.SrNo
	if err := r.uniqueViolation(c); err != nil {
		return candidate.Candidate{}, err
	}
	if c.ResumeURL == nil {
		c.ResumeURL = existing.ResumeURL
	}
	if c.ProfileImageURL == nil {
		c.ProfileImageURL = existing.ProfileImageURL
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.candidates[c.ID] = c
	return c, nil
}

func (r *candidateRepo) Delete(ctx context.Context, id string) error {
	defer r.s.lock(ctx)()

	if _, ok := r.s.candidates[id]; !ok {
		return candidate.ErrCandidateNotFound
	}
	delete(r.s.candidates, id)
	return nil
}

func (r *candidateRepo) List(ctx context.Context, status *candidate.Status) ([]candidate.Candidate, error) {
	defer r.s.lock(ctx)()

	out := []candidate.Candidate{}
	for _, c := range r.s.candidates {
		if status != nil && c.Status != *status {
			continue
		}
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b candidate.Candidate) int { return a.SrNo - b.SrNo })
	return out, nil
}

// LockSerial is a no-op: transactions already hold the store lock.
func (r *candidateRepo) LockSerial(ctx context.Context) error {
	return nil
}

func (r *candidateRepo) NextSerial(ctx context.Context) (int, error) {
	defer r.s.lock(ctx)()

	highest := 0
	for _, c := range r.s.candidates {
		highest = max(highest, c.SrNo)
	}
	return highest + 1, nil
}
