package postgresql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var attendanceCols = []string{
	"id", "employee_id", "full_name", "position", "department", "profile_image",
	"task", "status", "date", "created_at", "updated_at",
}

func TestAttendanceRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAttendanceRepository(mock)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	in := attendance.Attendance{
		EmployeeID: "e-1", FullName: "ada lovelace", Position: "Junior", Department: "General",
		Task: attendance.DefaultTask, Status: attendance.StatusAbsent, Date: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO attendances AS a")).
		WithArgs("e-1", "ada lovelace", "Junior", "General", "", "--", "Absent", now).
		WillReturnRows(pgxmock.NewRows(attendanceCols).AddRow(
			"a-1", "e-1", "ada lovelace", "Junior", "General", "", "--", attendance.StatusAbsent, now, now, now,
		))

	got, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "a-1", got.ID)
	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_ListWithFilter(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAttendanceRepository(mock)
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)
	employeeID := "e-1"
	status := "Present"
	email := "ada@x.com"

	mock.ExpectQuery(regexp.QuoteMeta("AND a.employee_id = $1 AND a.status = $2 AND a.date >= $3 AND a.date < $4")).
		WithArgs(employeeID, status, day, next).
		WillReturnRows(pgxmock.NewRows(append(attendanceCols, "email")).AddRow(
			"a-1", "e-1", "ada lovelace", "Junior", "General", "", "onboarding", attendance.StatusPresent,
			day.Add(9*time.Hour), day, day, &email,
		))

	got, err := repo.List(context.Background(), attendance.AttendanceFilter{
		EmployeeID: &employeeID, Status: &status, From: &day, To: &next,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].EmployeeEmail)
	assert.Equal(t, email, *got[0].EmployeeEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_FindPresentInRange(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	next := day.AddDate(0, 0, 1)

	t.Run("match", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAttendanceRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FOR SHARE")).
			WithArgs("e-1", "Present", day, next).
			WillReturnRows(pgxmock.NewRows(attendanceCols).AddRow(
				"a-1", "e-1", "ada lovelace", "Junior", "General", "", "--", attendance.StatusPresent,
				day.Add(14*time.Hour), day, day,
			))

		got, err := repo.FindPresentInRange(context.Background(), "e-1", day, next)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "a-1", got.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewAttendanceRepository(mock)

		mock.ExpectQuery(regexp.QuoteMeta("FOR SHARE")).
			WithArgs("e-1", "Present", day, next).
			WillReturnError(pgx.ErrNoRows)

		got, err := repo.FindPresentInRange(context.Background(), "e-1", day, next)
		require.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAttendanceRepository_UpdateNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAttendanceRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE attendances AS a")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			"Present", "a-404").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), attendance.Attendance{ID: "a-404", Status: attendance.StatusPresent})
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_RefreshAndDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewAttendanceRepository(mock)
	snap := attendance.Snapshot{FullName: "ada king", Position: "Senior", Department: "Research", ProfileImage: "/p.png"}

	mock.ExpectExec(regexp.QuoteMeta("UPDATE attendances")).
		WithArgs("ada king", "Senior", "Research", "/p.png", "e-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM attendances WHERE employee_id = $1")).
		WithArgs("e-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 3))

	n, err := repo.RefreshSnapshot(context.Background(), "e-1", snap)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	n, err = repo.DeleteByEmployeeID(context.Background(), "e-1")
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
