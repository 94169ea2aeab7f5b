package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-recruitment/internal/config"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/candidate"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/hris-recruitment/internal/handler/http"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/database"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-recruitment/internal/repository/memory"
	"github.com/cmlabs-hris/hris-recruitment/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-recruitment/internal/service/attendance"
	candidateService "github.com/cmlabs-hris/hris-recruitment/internal/service/candidate"
	employeeService "github.com/cmlabs-hris/hris-recruitment/internal/service/employee"
	"github.com/cmlabs-hris/hris-recruitment/internal/service/file"
	leaveService "github.com/cmlabs-hris/hris-recruitment/internal/service/leave"
	"github.com/go-chi/httplog/v3"
)

type repositories struct {
	tx          database.Transactor
	candidates  candidate.CandidateRepository
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
	leaves      leave.LeaveRepository
	close       func()
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.close()

	fileStorage, uploadsDir, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	fileService := file.NewFileService(fileStorage)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	loc := cfg.Attendance.Location

	attendanceSvc := attendanceService.NewAttendanceService(repos.tx, repos.attendances, repos.employees, fileService, loc, m)
	candidateSvc := candidateService.NewCandidateService(repos.tx, repos.candidates, repos.employees, attendanceSvc, fileService, m)
	employeeSvc := employeeService.NewEmployeeService(repos.tx, repos.employees, repos.attendances, repos.leaves, fileService, m)
	leaveSvc := leaveService.NewLeaveService(repos.tx, repos.leaves, repos.attendances, repos.employees, fileService, loc, m)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         logger,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
		UploadsDir:     uploadsDir,
	}, JWTService, m, appHTTP.Handlers{
		Candidate:  appHTTP.NewCandidateHandler(candidateSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
	})

	if cfg.Scheduler.Enabled {
		scheduler := cron.NewScheduler(logger)
		cron.NewAttendanceJobs(attendanceSvc, cfg.Scheduler.AttendanceSeedPeriod).RegisterJobs(scheduler)
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "store", cfg.App.StoreBackend, "storage", cfg.Storage.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	if cfg.App.StoreBackend == "memory" {
		store := memory.NewStore()
		return repositories{
			tx:          store.Transactor(),
			candidates:  store.Candidates(),
			employees:   store.Employees(),
			attendances: store.Attendances(),
			leaves:      store.Leaves(),
			close:       func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return repositories{}, fmt.Errorf("connect database: %w", err)
	}

	return repositories{
		tx:          postgresql.NewTransactor(db),
		candidates:  postgresql.NewCandidateRepository(db),
		employees:   postgresql.NewEmployeeRepository(db),
		attendances: postgresql.NewAttendanceRepository(db),
		leaves:      postgresql.NewLeaveRepository(db),
		close:       db.Close,
	}, nil
}

// openStorage returns the configured backend and, for local disk, the
// directory to serve under /uploads.
func openStorage(ctx context.Context, cfg *config.Config) (storage.FileStorage, string, error) {
	switch cfg.Storage.Type {
	case "s3":
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			AccessKey: cfg.Storage.S3AccessKey,
			SecretKey: cfg.Storage.S3SecretKey,
			Bucket:    cfg.Storage.S3Bucket,
		})
		if err != nil {
			return nil, "", fmt.Errorf("initialize s3 storage: %w", err)
		}
		return s3Storage, "", nil
	default:
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			return nil, "", fmt.Errorf("initialize local storage: %w", err)
		}
		return local, cfg.Storage.BasePath, nil
	}
}
