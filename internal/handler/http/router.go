package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/kenocia/payroll-backend-go/internal/handler/http/middleware"
	"github.com/kenocia/payroll-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	attendanceHandler AttendanceHandler,
	scheduleHandler ScheduleHandler,
	importHandler ImportHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Post("/", attendanceHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", attendanceHandler.Get)
					r.Put("/", attendanceHandler.Update)
					r.Delete("/", attendanceHandler.Delete)
					r.Post("/recompute", attendanceHandler.Recompute)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.ListSchedules)
				r.Post("/", scheduleHandler.CreateSchedule)
			})

			r.Route("/schedule-changes", func(r chi.Router) {
				r.Post("/", scheduleHandler.Change)
				r.Post("/bulk", scheduleHandler.BulkChange)
				r.Route("/employees/{employeeID}", func(r chi.Router) {
					r.Get("/", scheduleHandler.Timeline)
					r.Get("/as-of", scheduleHandler.AsOf)
				})
			})

			r.Route("/imports", func(r chi.Router) {
				r.Post("/attendance", importHandler.ImportAttendance)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/attendance", payrollHandler.AttendanceReport)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/employees/{employeeID}/worked-day-lines", payrollHandler.WorkedDayLines)
				r.Get("/batches", payrollHandler.ListBatches)
				r.Route("/batches/{batchID}", func(r chi.Router) {
					r.Get("/sheet", payrollHandler.PayrollSheet)
					r.Post("/inputs/import", payrollHandler.ImportPayslipInputs)
				})
			})
		})
	})
	return r
}
