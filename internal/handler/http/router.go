package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-recruitment/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-recruitment/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Candidate  CandidateHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
}

type RouterOptions struct {
	Logger         *slog.Logger
	LogLevel       slog.Level
	AllowedOrigins []string
	// UploadsDir is served under /uploads when files are kept on local disk.
	UploadsDir string
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, m *metrics.Metrics, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(m.Middleware)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	if opts.UploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	if m != nil {
		r.Method("GET", "/metrics", m.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/candidates", func(r chi.Router) {
				r.Get("/", h.Candidate.List)
				r.Post("/", h.Candidate.Register)
				r.Post("/filter", h.Candidate.Filter)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Candidate.Get)
					r.Post("/", h.Candidate.Update)
					r.Delete("/", h.Candidate.Delete)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Employee.Get)
					r.Post("/", h.Employee.Update)
					r.Delete("/", h.Employee.Delete)
					r.Get("/leave", h.Leave.List)
					r.Post("/leave", h.Leave.File)
				})
			})

			r.Post("/leaves/{id}/status", h.Leave.UpdateStatus)

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", h.Attendance.List)
				r.Get("/{id}", h.Attendance.Get)
				r.Post("/{id}", h.Attendance.Update)
			})
		})
	})
	return r
}
