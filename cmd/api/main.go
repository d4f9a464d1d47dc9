package main

import (
	"fmt"
	"net/http"

	"github.com/chronohr/attendance-backend-go/internal/config"
	appHTTP "github.com/chronohr/attendance-backend-go/internal/handler/http"
	"github.com/chronohr/attendance-backend-go/internal/pkg/cron"
	"github.com/chronohr/attendance-backend-go/internal/pkg/database"
	"github.com/chronohr/attendance-backend-go/internal/pkg/jwt"
	"github.com/chronohr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/chronohr/attendance-backend-go/internal/service/attendance"
	correctionService "github.com/chronohr/attendance-backend-go/internal/service/correction"
	exceptionService "github.com/chronohr/attendance-backend-go/internal/service/exception"
	"github.com/chronohr/attendance-backend-go/internal/service/master"
	reportService "github.com/chronohr/attendance-backend-go/internal/service/report"
	scheduleService "github.com/chronohr/attendance-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	correctionRepo := postgresql.NewCorrectionRepository(db)
	exceptionRepo := postgresql.NewExceptionRepository(db)
	latenessRuleRepo := postgresql.NewLatenessRuleRepository(db)
	overtimeRuleRepo := postgresql.NewOvertimeRuleRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	leaveChecker := postgresql.NewLeaveChecker(db)
	offboardingChecker := postgresql.NewOffboardingChecker(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, assignmentRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		scheduleSvc,
		leaveChecker,
		offboardingChecker,
	)
	correctionSvc := correctionService.NewCorrectionService(correctionRepo, attendanceSvc, txManager)
	exceptionSvc := exceptionService.NewExceptionService(exceptionRepo, attendanceRepo)
	masterSvc := master.NewMasterService(latenessRuleRepo, overtimeRuleRepo, holidayRepo)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		scheduleSvc,
		latenessRuleRepo,
		overtimeRuleRepo,
		holidayRepo,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, reportSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	exceptionHandler := appHTTP.NewExceptionHandler(exceptionSvc)
	masterHandler := appHTTP.NewMasterHandler(masterSvc)

	scheduler := cron.NewScheduler()
	cron.NewScheduleJobs(assignmentRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		correctionHandler,
		scheduleHandler,
		exceptionHandler,
		masterHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
