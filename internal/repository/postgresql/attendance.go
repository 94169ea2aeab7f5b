package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const attendanceColumns = `a.id, a.employee_id, a.full_name, a.position, a.department, a.profile_image,
			a.task, a.status, a.date, a.created_at, a.updated_at`

type attendanceRepositoryImpl struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row, extra ...interface{}) (attendance.Attendance, error) {
	var a attendance.Attendance
	dest := []interface{}{
		&a.ID, &a.EmployeeID, &a.FullName, &a.Position, &a.Department, &a.ProfileImage,
		&a.Task, &a.Status, &a.Date, &a.CreatedAt, &a.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	return a, err
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances AS a (
			employee_id, full_name, position, department, profile_image, task, status, date
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + attendanceColumns

	created, err := scanAttendance(q.QueryRow(ctx, query,
		newAttendance.EmployeeID, newAttendance.FullName, newAttendance.Position, newAttendance.Department,
		newAttendance.ProfileImage, newAttendance.Task, string(newAttendance.Status), newAttendance.Date,
	))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.email
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var email *string
	a, err := scanAttendance(q.QueryRow(ctx, query, id), &email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance with id %s: %w", id, err)
	}
	a.EmployeeEmail = email
	return a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances AS a
		SET full_name = $1, position = $2, department = $3, profile_image = $4,
			task = $5, status = $6, updated_at = NOW()
		WHERE a.id = $7
		RETURNING ` + attendanceColumns

	updated, err := scanAttendance(q.QueryRow(ctx, query,
		att.FullName, att.Position, att.Department, att.ProfileImage, att.Task, string(att.Status), att.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to update attendance with id %s: %w", att.ID, err)
	}
	return updated, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil {
		where += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND a.date < $%d", argIdx)
		args = append(args, *filter.To)
	}

	query := `
		SELECT ` + attendanceColumns + `, e.email
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id` + where + `
		ORDER BY a.date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		var email *string
		a, err := scanAttendance(rows, &email)
		if err != nil {
			return nil, err
		}
		a.EmployeeEmail = email
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// FindPresentInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) FindPresentInRange(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1 AND a.status = $2 AND a.date >= $3 AND a.date < $4
		ORDER BY a.date DESC
		LIMIT 1
		FOR SHARE
	`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, string(attendance.StatusPresent), from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find present attendance: %w", err)
	}
	return &a, nil
}

// ExistsInRange implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ExistsInRange(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM attendances
			WHERE employee_id = $1 AND date >= $2 AND date < $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance: %w", err)
	}
	return exists, nil
}

// RefreshSnapshot implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) RefreshSnapshot(ctx context.Context, employeeID string, snapshot attendance.Snapshot) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET full_name = $1, position = $2, department = $3, profile_image = $4, updated_at = NOW()
		WHERE employee_id = $5
	`

	tag, err := q.Exec(ctx, query,
		snapshot.FullName, snapshot.Position, snapshot.Department, snapshot.ProfileImage, employeeID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to refresh attendance snapshot of employee %s: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE employee_id = $1`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance of employee %s: %w", employeeID, err)
	}
	return tag.RowsAffected(), nil
}
