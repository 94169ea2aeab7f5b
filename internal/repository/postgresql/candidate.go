package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// candidateSerialLockKey is the advisory lock key guarding sr_no assignment.
const candidateSerialLockKey int64 = 0x5352_4e4f // "SRNO"

const (
	candidateEmailIndex = "candidates_email_lower_key"
	candidateSrNoIndex  = "candidates_sr_no_key"
)

const candidateColumns = `id, sr_no, full_name, email, phone_number, position, status, experience,
			resume_url, profile_image_url, created_at, updated_at`

type candidateRepositoryImpl struct {
	db database.Querier
}

func NewCandidateRepository(db database.Querier) candidate.CandidateRepository {
	return &candidateRepositoryImpl{db: db}
}

func scanCandidate(row pgx.Row) (candidate.Candidate, error) {
	var c candidate.Candidate
	err := row.Scan(
		&c.ID, &c.SrNo, &c.FullName, &c.Email, &c.PhoneNumber, &c.Position, &c.Status, &c.Experience,
		&c.ResumeURL, &c.ProfileImageURL, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func translateCandidateWriteError(err error) error {
	switch {
	case uniqueViolationOn(err, candidateEmailIndex):
		return candidate.ErrEmailExists
	case uniqueViolationOn(err, candidateSrNoIndex):
		return candidate.ErrSerialConflict
	}
	return err
}

// Create implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) Create(ctx context.Context, newCandidate candidate.Candidate) (candidate.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO candidates (
			sr_no, full_name, email, phone_number, position, status, experience, resume_url, profile_image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + candidateColumns

	created, err := scanCandidate(q.QueryRow(ctx, query,
		newCandidate.SrNo, newCandidate.FullName, newCandidate.Email, newCandidate.PhoneNumber,
		string(newCandidate.Position), string(newCandidate.Status), newCandidate.Experience,
		newCandidate.ResumeURL, newCandidate.ProfileImageURL,
	))
	if err != nil {
		return candidate.Candidate{}, translateCandidateWriteError(err)
	}
	return created, nil
}

// GetByID implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) GetByID(ctx context.Context, id string) (candidate.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	c, err := scanCandidate(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrCandidateNotFound
		}
		return candidate.Candidate{}, fmt.Errorf("failed to get candidate with id %s: %w", id, err)
	}
	return c, nil
}

// ExistsByEmail implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM candidates
			WHERE LOWER(email) = LOWER($1) AND ($2::uuid IS NULL OR id <> $2::uuid)
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check candidate email: %w", err)
	}
	return exists, nil
}

// Update implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) Update(ctx context.Context, c candidate.Candidate) (candidate.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE candidates
		SET full_name = $1, email = $2, phone_number = $3, position = $4, status = $5, experience = $6,
			resume_url = COALESCE($7, resume_url), profile_image_url = COALESCE($8, profile_image_url),
			updated_at = NOW()
		WHERE id = $9
		RETURNING ` + candidateColumns

	updated, err := scanCandidate(q.QueryRow(ctx, query,
		c.FullName, c.Email, c.PhoneNumber, string(c.Position), string(c.Status), c.Experience,
		c.ResumeURL, c.ProfileImageURL, c.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return candidate.Candidate{}, candidate.ErrCandidateNotFound
		}
		return candidate.Candidate{}, translateCandidateWriteError(err)
	}
	return updated, nil
}

// Delete implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return candidate.ErrCandidateNotFound
	}
	return nil
}

// List implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) List(ctx context.Context, status *candidate.Status) ([]candidate.Candidate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + candidateColumns + ` FROM candidates`
	var args []interface{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY sr_no ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []candidate.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return candidates, nil
}

// LockSerial implements candidate.CandidateRepository. Outside a transaction
// the lock is released as soon as the statement ends.
func (r *candidateRepositoryImpl) LockSerial(ctx context.Context) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, candidateSerialLockKey); err != nil {
		return fmt.Errorf("failed to lock candidate serial: %w", err)
	}
	return nil
}

// NextSerial implements candidate.CandidateRepository.
func (r *candidateRepositoryImpl) NextSerial(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var next int
	if err := q.QueryRow(ctx, `SELECT COALESCE(MAX(sr_no), 0) + 1 FROM candidates`).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to compute next serial: %w", err)
	}
	return next, nil
}
