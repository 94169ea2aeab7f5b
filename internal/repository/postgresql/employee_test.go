package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var employeeCols = []string{
	"id", "full_name", "email", "phone_number", "position", "department", "experience",
	"profile_image_url", "date_of_joining", "created_at", "updated_at",
}

func TestEmployeeRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)
	joined := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	in := employee.Employee{
		FullName: "ada lovelace", Email: "ada@x.com", PhoneNumber: "9998887777", Position: employee.PositionJunior,
		Department: employee.DefaultDepartment, Experience: 2, DateOfJoining: joined,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WithArgs("ada lovelace", "ada@x.com", "9998887777", "Junior", "General", 2.0, (*string)(nil), joined).
		WillReturnRows(pgxmock.NewRows(employeeCols).AddRow(
			"e-1", "ada lovelace", "ada@x.com", "9998887777", employee.PositionJunior, "General", 2.0,
			(*string)(nil), joined, joined, joined,
		))

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "e-1", got.ID)
	assert.Equal(t, "General", got.Department)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_CreateDuplicateEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO employees")).
		WithArgs(pgxmock.AnyArg(), "ada@x.com", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: employeeEmailIndex})

	_, err := repo.Create(context.Background(), employee.Employee{Email: "ada@x.com"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_UpdateNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE employees")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), "e-404").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), employee.Employee{ID: "e-404"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_ListEmpty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees ORDER BY date_of_joining DESC")).
		WillReturnRows(pgxmock.NewRows(employeeCols))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_DeleteNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id = $1")).
		WithArgs("e-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), "e-404"), employee.ErrEmployeeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
