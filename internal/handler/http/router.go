package http

import (
	"log/slog"
	"os"

	"github.com/chronohr/attendance-backend-go/internal/handler/http/middleware"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	correctionHandler CorrectionHandler,
	scheduleHandler ScheduleHandler,
	exceptionHandler ExceptionHandler,
	masterHandler MasterHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "chronohr-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/record", attendanceHandler.GetRecord)

				// Direct amendment of a record's punches, HR only. The
				// correction workflow below is the employee-facing path.
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireHR)
					r.Patch("/records/{id}", attendanceHandler.Correct)
				})

				r.Route("/corrections", func(r chi.Router) {
					r.Post("/", correctionHandler.Create)
					r.Get("/", correctionHandler.List)
					r.Get("/{id}", correctionHandler.Get)
					r.Get("/{id}/finalize", correctionHandler.Finalize)

					// Manager or HR
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Patch("/{id}/approve", correctionHandler.ManagerApprove)
						r.Patch("/{id}/reject", correctionHandler.Reject)
						r.Patch("/{id}/escalate", correctionHandler.Escalate)
					})

					// HR only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireHR)
						r.Patch("/{id}/hr-approve", correctionHandler.HRApprove)
					})
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly", attendanceHandler.MonthlyReport)

				// Manager or HR
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/daily", attendanceHandler.DailyReport)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListShifts)

				// Manager or HR
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/", scheduleHandler.CreateShift)
					r.Delete("/{id}", scheduleHandler.DeleteShift)
				})

				r.Route("/assignments", func(r chi.Router) {
					r.Get("/", scheduleHandler.ListAssignments)

					// Manager or HR
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/", scheduleHandler.Assign)
						r.Patch("/{id}/approve", scheduleHandler.ApproveAssignment)
						r.Delete("/{id}", scheduleHandler.DeleteAssignment)
					})
				})
			})

			r.Route("/exceptions", func(r chi.Router) {
				r.Post("/", exceptionHandler.Create)
				r.Get("/", exceptionHandler.List)
				r.Get("/{id}", exceptionHandler.Get)

				// Manager or HR
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Patch("/{id}/approve", exceptionHandler.Approve)
					r.Patch("/{id}/reject", exceptionHandler.Reject)
					r.Delete("/{id}", exceptionHandler.Delete)
				})
			})

			// Reference configuration, HR only
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireHR)

				r.Route("/lateness-rules", func(r chi.Router) {
					r.Post("/", masterHandler.CreateLatenessRule)
					r.Get("/", masterHandler.ListLatenessRules)
					r.Get("/{id}", masterHandler.GetLatenessRule)
					r.Delete("/{id}", masterHandler.DeleteLatenessRule)
				})

				r.Route("/overtime-rules", func(r chi.Router) {
					r.Post("/", masterHandler.CreateOvertimeRule)
					r.Get("/", masterHandler.ListOvertimeRules)
					r.Get("/{id}", masterHandler.GetOvertimeRule)
					r.Delete("/{id}", masterHandler.DeleteOvertimeRule)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Post("/", masterHandler.CreateHoliday)
					r.Get("/", masterHandler.ListHolidays)
					r.Get("/{id}", masterHandler.GetHoliday)
					r.Delete("/{id}", masterHandler.DeleteHoliday)
				})
			})
		})
	})

	return r
}
