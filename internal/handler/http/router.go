package http

import (
	"log/slog"
	"os"

	"github.com/andeanwork/attendance-backend-go/internal/config"
	"github.com/andeanwork/attendance-backend-go/internal/handler/http/middleware"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	workPointHandler WorkPointHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  logLevel(cfg.App.LogLevel),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
		})

		// Kiosk endpoints: the devices have no user session; the
		// marking itself identifies the employee.
		r.Route("/attendance/marks", func(r chi.Router) {
			r.Post("/", attendanceHandler.Mark)
			r.Post("/unattended", attendanceHandler.MarkUnattended)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/attendance/validate-geo", workPointHandler.ValidateGeo)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", employeeHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Get("/", employeeHandler.List)
				})
			})

			r.Route("/schedules/{employeeID}", func(r chi.Router) {
				r.Get("/day", scheduleHandler.ResolveDay)
				r.Get("/week", scheduleHandler.GetEffective)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Put("/week", scheduleHandler.SetWeek)
					r.Post("/close", scheduleHandler.CloseValidity)
					r.Get("/history", scheduleHandler.History)
					r.Get("/exceptions", scheduleHandler.ListExceptions)
					r.Post("/exceptions", scheduleHandler.AddException)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)
				r.Delete("/schedules/exceptions/{id}", scheduleHandler.DeleteException)

				r.Route("/attendance", func(r chi.Router) {
					r.Get("/", attendanceHandler.List)
					r.Post("/manual", attendanceHandler.CreateManual)
					r.Get("/timeline/{employeeID}", attendanceHandler.Timeline)
					r.Put("/{id}/approve", attendanceHandler.Approve)
					r.Put("/{id}/reject", attendanceHandler.Reject)
					r.Get("/open-days/{employeeID}", attendanceHandler.OldestOpenDay)
					r.Post("/open-days", attendanceHandler.OldestOpenDays)
				})

				r.Route("/work-points", func(r chi.Router) {
					r.Get("/", workPointHandler.List)
					r.Post("/", workPointHandler.Create)
					r.Get("/{id}", workPointHandler.Get)
					r.Put("/{id}", workPointHandler.Update)
					r.Delete("/{id}", workPointHandler.Delete)

					r.Post("/assignments", workPointHandler.Assign)
					r.Delete("/assignments/{id}", workPointHandler.RemoveAssignment)
					r.Put("/assignments/{id}/state", workPointHandler.SetAssignmentState)
					r.Get("/assignments/employee/{employeeID}", workPointHandler.ActiveAssignments)
				})
			})
		})
	})

	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
