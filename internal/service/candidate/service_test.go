package candidate

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-recruitment/internal/repository/memory"
	attendancesvc "github.com/cmlabs-hris/hris-recruitment/internal/service/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store *memory.Store
	svc   candidate.CandidateService
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	store := memory.NewStore()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	m := metrics.New()
	files := file.NewFileService(local)
	attendanceService := attendancesvc.NewAttendanceService(store, store.Attendances(), store.Employees(), files, time.UTC, m)
	svc := NewCandidateService(store, store.Candidates(), store.Employees(), attendanceService, files, m)
	return testEnv{store: store, svc: svc}
}

func experience(v float64) *float64 { return &v }

func validRequest(email, status string) candidate.CreateCandidateRequest {
	return candidate.CreateCandidateRequest{
		FullName:    "Ada Lovelace",
		Email:       email,
		PhoneNumber: "9998887777",
		Position:    "Junior",
		Status:      status,
		Experience:  experience(2),
	}
}

func (e testEnv) employees(t *testing.T) []employee.Employee {
	t.Helper()
	list, err := e.store.Employees().List(context.Background())
	require.NoError(t, err)
	return list
}

func (e testEnv) attendance(t *testing.T) []attendance.Attendance {
	t.Helper()
	list, err := e.store.Attendances().List(context.Background(), attendance.AttendanceFilter{})
	require.NoError(t, err)
	return list
}

func TestRegisterCandidate_PromotesPromotableStatuses(t *testing.T) {
	for _, status := range []string{"New", "Scheduled", "Ongoing", "Selected"} {
		t.Run(status, func(t *testing.T) {
			env := newTestEnv(t)

			resp, err := env.svc.RegisterCandidate(context.Background(), validRequest("ada@x.com", status))
			require.NoError(t, err)
			require.NotNil(t, resp.EmployeeID)

			emps := env.employees(t)
			require.Len(t, emps, 1)
			assert.Equal(t, *resp.EmployeeID, emps[0].ID)
			assert.Equal(t, "ada lovelace", emps[0].FullName)
			assert.Equal(t, employee.DefaultDepartment, emps[0].Department)

			records := env.attendance(t)
			require.Len(t, records, 1)
			assert.Equal(t, attendance.StatusAbsent, records[0].Status)
			assert.Equal(t, attendance.DefaultTask, records[0].Task)
			assert.Equal(t, emps[0].ID, records[0].EmployeeID)
			assert.Equal(t, "Junior", records[0].Position)
		})
	}
}

func TestRegisterCandidate_RejectedIsNotPromoted(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.svc.RegisterCandidate(context.Background(), validRequest("ada@x.com", "Rejected"))
	require.NoError(t, err)
	assert.Nil(t, resp.EmployeeID)
	assert.Equal(t, "Rejected", resp.Status)
	assert.Empty(t, env.employees(t))
	assert.Empty(t, env.attendance(t))
}

func TestRegisterCandidate_DefaultsAndNormalizes(t *testing.T) {
	env := newTestEnv(t)

	req := validRequest("  Ada@X.com ", "")
	resp, err := env.svc.RegisterCandidate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Status)
	assert.Equal(t, "ada@x.com", resp.Email)
	assert.Equal(t, "ada lovelace", resp.FullName)
	assert.Equal(t, 1, resp.SrNo)
}

func TestRegisterCandidate_DuplicateEmailAnyCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.svc.RegisterCandidate(ctx, validRequest("ada@x.com", "Rejected"))
	require.NoError(t, err)
	assert.Equal(t, 1, first.SrNo)

	_, err = env.svc.RegisterCandidate(ctx, validRequest("ADA@X.COM", "Rejected"))
	assert.ErrorIs(t, err, candidate.ErrEmailExists)

	second, err := env.svc.RegisterCandidate(ctx, validRequest("bob@x.com", "Rejected"))
	require.NoError(t, err)
	assert.Equal(t, 2, second.SrNo)
}

func TestRegisterCandidate_SerialsUniqueUnderConcurrency(t *testing.T) {
	env := newTestEnv(t)
	const n = 25

	var wg sync.WaitGroup
	serials := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := env.svc.RegisterCandidate(context.Background(), validRequest(fmt.Sprintf("c%d@x.com", i), "Selected"))
			if assert.NoError(t, err) {
				serials <- resp.SrNo
			}
		}(i)
	}
	wg.Wait()
	close(serials)

	seen := map[int]bool{}
	for sr := range serials {
		assert.False(t, seen[sr], "duplicate srNo %d", sr)
		seen[sr] = true
	}
	assert.Len(t, seen, n)
	for i := 1; i <= n; i++ {
		assert.True(t, seen[i], "missing srNo %d", i)
	}
	assert.Len(t, env.employees(t), n)
}

func TestRegisterCandidate_Validation(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]func(*candidate.CreateCandidateRequest){
		"short phone":         func(r *candidate.CreateCandidateRequest) { r.PhoneNumber = "12345" },
		"unknown position":    func(r *candidate.CreateCandidateRequest) { r.Position = "CTO" },
		"unknown status":      func(r *candidate.CreateCandidateRequest) { r.Status = "Hired" },
		"negative experience": func(r *candidate.CreateCandidateRequest) { r.Experience = experience(-1) },
		"missing experience":  func(r *candidate.CreateCandidateRequest) { r.Experience = nil },
		"missing fullname":    func(r *candidate.CreateCandidateRequest) { r.FullName = " " },
		"bad email":           func(r *candidate.CreateCandidateRequest) { r.Email = "ada" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest("ada@x.com", "New")
			mutate(&req)

			_, err := env.svc.RegisterCandidate(context.Background(), req)
			var verrs validator.ValidationErrors
			assert.ErrorAs(t, err, &verrs)
		})
	}
	assert.Empty(t, env.employees(t))
}

func TestRegisterCandidate_PromotionFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.store.Employees().Create(ctx, employee.Employee{FullName: "ada", Email: "ada@x.com"})
	require.NoError(t, err)

	_, err = env.svc.RegisterCandidate(ctx, validRequest("ada@x.com", "Selected"))
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	list, err := env.svc.ListCandidates(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, env.attendance(t))
}

func TestUpdateCandidate_DoesNotPromote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.RegisterCandidate(ctx, validRequest("ada@x.com", "Rejected"))
	require.NoError(t, err)

	updated, err := env.svc.UpdateCandidate(ctx, candidate.UpdateCandidateRequest{
		ID: created.ID, FullName: "Ada King", Email: "ada@x.com", PhoneNumber: "9998887777",
		Position: "Senior", Status: "Selected", Experience: experience(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "Selected", updated.Status)
	assert.Equal(t, "ada king", updated.FullName)
	assert.Equal(t, created.SrNo, updated.SrNo)
	assert.Empty(t, env.employees(t))
}

func TestUpdateCandidate_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ada, err := env.svc.RegisterCandidate(ctx, validRequest("ada@x.com", "Rejected"))
	require.NoError(t, err)
	_, err = env.svc.RegisterCandidate(ctx, validRequest("bob@x.com", "Rejected"))
	require.NoError(t, err)

	req := candidate.UpdateCandidateRequest{
		ID: ada.ID, FullName: "Ada", Email: "BOB@x.com", PhoneNumber: "9998887777",
		Position: "Junior", Status: "New", Experience: experience(2),
	}
	_, err = env.svc.UpdateCandidate(ctx, req)
	assert.ErrorIs(t, err, candidate.ErrEmailExists)

	req.ID = "0f8b3c1e-8d5a-4a55-9d2e-7f1b2c3d4e5f"
	req.Email = "new@x.com"
	_, err = env.svc.UpdateCandidate(ctx, req)
	assert.ErrorIs(t, err, candidate.ErrCandidateNotFound)

	req.ID = ada.ID
	req.Status = ""
	_, err = env.svc.UpdateCandidate(ctx, req)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestDeleteCandidate_KeepsEmployee(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.RegisterCandidate(ctx, validRequest("ada@x.com", "Selected"))
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteCandidate(ctx, created.ID))
	assert.ErrorIs(t, env.svc.DeleteCandidate(ctx, created.ID), candidate.ErrCandidateNotFound)
	assert.ErrorIs(t, env.svc.DeleteCandidate(ctx, "not-a-uuid"), candidate.ErrCandidateNotFound)

	_, err = env.svc.GetCandidate(ctx, created.ID)
	assert.ErrorIs(t, err, candidate.ErrCandidateNotFound)
	assert.Len(t, env.employees(t), 1)
}

func TestListAndFilterCandidates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	empty, err := env.svc.ListCandidates(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for i, status := range []string{"Scheduled", "Rejected", "Scheduled"} {
		_, err := env.svc.RegisterCandidate(ctx, validRequest(fmt.Sprintf("c%d@x.com", i), status))
		require.NoError(t, err)
	}

	all, err := env.svc.ListCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, c := range all {
		assert.Equal(t, i+1, c.SrNo)
	}

	scheduled, err := env.svc.FilterCandidates(ctx, candidate.FilterCandidateRequest{Status: "Scheduled"})
	require.NoError(t, err)
	require.Len(t, scheduled, 2)
	assert.Equal(t, 1, scheduled[0].SrNo)
	assert.Equal(t, 3, scheduled[1].SrNo)

	for _, status := range []string{"", "Hired", "scheduled"} {
		_, err := env.svc.FilterCandidates(ctx, candidate.FilterCandidateRequest{Status: status})
		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "status %q", status)
	}
}
