package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
	now               func() time.Time
}

// NewAttendanceJobs builds the ledger jobs. interval controls how often the
// daily seed is attempted; seeding is idempotent per employee and day.
func NewAttendanceJobs(attendanceService attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		interval:          interval,
		now:               time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("seed_daily_attendance", j.interval, j.SeedDailyAttendance)
}

// SeedDailyAttendance gives every employee without a row for today an Absent one.
func (j *AttendanceJobs) SeedDailyAttendance(ctx context.Context) error {
	created, err := j.attendanceService.SeedDaily(ctx, j.now())
	if err != nil {
		return fmt.Errorf("seed daily attendance: %w", err)
	}

	if created > 0 {
		slog.Info("Cron: Seeded daily attendance", "count", created)
	}
	return nil
}
