package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-analytic-go/internal/config"
	"github.com/cmlabs-hris/hris-analytic-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-analytic-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	appConfig config.AppConfig,
	JWTService jwt.Service,
	timesheetHandler TimesheetHandler,
	analyticHandler AnalyticHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(appConfig.Env == "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-analytic"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appConfig.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   appConfig.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
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

			r.Route("/timesheets", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionTimesheetManage)).Post("/", timesheetHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionTimesheetView)).Get("/", timesheetHandler.Get)
					r.With(middleware.RequirePermission(user.PermissionTimesheetView)).Get("/export", timesheetHandler.Export)
					r.With(middleware.RequirePermission(user.PermissionTimesheetManage)).Post("/lines", timesheetHandler.RefreshLines)
				})
			})

			r.Route("/analytic-lines", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAnalyticView)).Get("/", analyticHandler.List)
				r.With(middleware.RequirePermission(user.PermissionAnalyticView)).Get("/{id}", analyticHandler.Get)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.With(middleware.RequirePermission(user.PermissionAnalyticRecalculate)).Post("/recalculate", analyticHandler.Recalculate)
					r.With(middleware.RequirePermission(user.PermissionAnalyticScan)).Post("/check-exceptions", analyticHandler.CheckExceptions)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/clock-in", attendanceHandler.ClockIn)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionAttendanceCreate)).Post("/clock-out", attendanceHandler.ClockOut)
					r.With(middleware.RequirePermission(user.PermissionAttendanceViewAll)).Get("/", attendanceHandler.Get)
					r.With(middleware.RequirePermission(user.PermissionAttendanceManage)).Put("/", attendanceHandler.Update)
				})
			})
		})
	})
	return r
}
