// Package memory is a process-local implementation of the record stores.
// Every transaction holds the store lock for its whole duration and restores
// the previous state when its function fails.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
)

type txKey struct{}

type Store struct {
	mu sync.Mutex

	candidates  map[string]candidate.Candidate
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	leaves      map[string]leave.Leave

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		candidates:  map[string]candidate.Candidate{},
		employees:   map[string]employee.Employee{},
		attendances: map[string]attendance.Attendance{},
		leaves:      map[string]leave.Leave{},
		now:         time.Now,
	}
}

// SetClock replaces the time source used for created_at/updated_at.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Candidates() candidate.CandidateRepository {
	return &candidateRepo{s: s}
}

func (s *Store) Employees() employee.EmployeeRepository {
	return &employeeRepo{s: s}
}

func (s *Store) Attendances() attendance.AttendanceRepository {
	return &attendanceRepo{s: s}
}

func (s *Store) Leaves() leave.LeaveRepository {
	return &leaveRepo{s: s}
}

// Transactor returns s as a database.Transactor.
func (s *Store) Transactor() database.Transactor {
	return s
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// lock acquires the store lock unless ctx belongs to a running transaction
// of s, which already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// WithTransaction implements database.Transactor.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			s.restore(saved)
			panic(p)
		}
		if err != nil {
			s.restore(saved)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

type state struct {
	candidates  map[string]candidate.Candidate
	employees   map[string]employee.Employee
	attendances map[string]attendance.Attendance
	leaves      map[string]leave.Leave
}

func (s *Store) snapshot() state {
	return state{
		candidates:  maps.Clone(s.candidates),
		employees:   maps.Clone(s.employees),
		attendances: maps.Clone(s.attendances),
		leaves:      maps.Clone(s.leaves),
	}
}

func (s *Store) restore(st state) {
	s.candidates = st.candidates
	s.employees = st.employees
	s.attendances = st.attendances
	s.leaves = st.leaves
}
