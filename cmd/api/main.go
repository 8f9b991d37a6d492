package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/cmlabs-hris/hris-analytic-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-analytic-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-analytic-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-analytic-go/internal/repository/postgresql"
	analyticService "github.com/cmlabs-hris/hris-analytic-go/internal/service/analytic"
	attendanceService "github.com/cmlabs-hris/hris-analytic-go/internal/service/attendance"
	notificationService "github.com/cmlabs-hris/hris-analytic-go/internal/service/notification"
	timesheetService "github.com/cmlabs-hris/hris-analytic-go/internal/service/timesheet"
)

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	txManager := postgresql.NewTransactor(db)
	lineRepo := postgresql.NewAnalyticLineRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	workCalendarRepo := postgresql.NewWorkCalendarRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	publicHolidayRepo := postgresql.NewPublicHolidayRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}
	notifier := notificationService.NewMailNotifier(
		lineRepo,
		timesheetRepo,
		employeeRepo,
		emailService,
		cfg.Analytic.ExceptionThreshold,
	)

	analyticSvc := analyticService.NewAnalyticService(
		txManager,
		lineRepo,
		attendanceRepo,
		contractRepo,
		workCalendarRepo,
		leaveRequestRepo,
		publicHolidayRepo,
		notifier,
		cfg.Analytic,
	)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, attendanceRepo, timesheetRepo, analyticSvc)
	timesheetSvc := timesheetService.NewTimesheetService(txManager, timesheetRepo, employeeRepo, lineRepo, analyticSvc)

	scheduler := cron.NewScheduler(cfg.Analytic.Location())
	if err := cron.NewAnalyticJobs(analyticSvc, cfg.Analytic.ScanSchedule).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("failed to register cron jobs: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		appHTTP.NewTimesheetHandler(timesheetSvc),
		appHTTP.NewAnalyticHandler(analyticSvc),
		appHTTP.NewAttendanceHandler(attendanceSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
