package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const leaveColumns = `id, employee_id, full_name, designation, leave_date, leave_document, reason, status,
			created_at, updated_at`

type leaveRepositoryImpl struct {
	db database.Querier
}

func NewLeaveRepository(db database.Querier) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.FullName, &l.Designation, &l.LeaveDate, &l.LeaveDocument, &l.Reason, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, newLeave leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (employee_id, full_name, designation, leave_date, leave_document, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveColumns

	created, err := scanLeave(q.QueryRow(ctx, query,
		newLeave.EmployeeID, newLeave.FullName, newLeave.Designation, newLeave.LeaveDate,
		newLeave.LeaveDocument, newLeave.Reason, string(newLeave.Status),
	))
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return created, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE id = $1`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave with id %s: %w", id, err)
	}
	return l, nil
}

// ListByEmployeeID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListByEmployeeID(ctx context.Context, employeeID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE employee_id = $1 ORDER BY leave_date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves of employee %s: %w", employeeID, err)
	}
	defer rows.Close()

	leaves := []leave.Leave{}
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		leaves = append(leaves, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leaves, nil
}

// UpdateStatus implements leave.LeaveRepository. Only Pending leaves are
// transitioned; a processed leave yields ErrLeaveAlreadyProcessed.
func (r *leaveRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.Status) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + leaveColumns

	updated, err := scanLeave(q.QueryRow(ctx, query, string(status), id, string(leave.StatusPending)))
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return leave.Leave{}, fmt.Errorf("failed to update leave status with id %s: %w", id, err)
	}

	if _, err := r.GetByID(ctx, id); err != nil {
		return leave.Leave{}, err
	}
	return leave.Leave{}, leave.ErrLeaveAlreadyProcessed
}

// DeleteByEmployeeID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete leaves of employee %s: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}
