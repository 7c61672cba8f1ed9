package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/andeanwork/attendance-backend-go/internal/config"
	appHTTP "github.com/andeanwork/attendance-backend-go/internal/handler/http"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/calendar"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/database"
	"github.com/andeanwork/attendance-backend-go/internal/pkg/jwt"
	"github.com/andeanwork/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/andeanwork/attendance-backend-go/internal/service/attendance"
	authService "github.com/andeanwork/attendance-backend-go/internal/service/auth"
	scheduleService "github.com/andeanwork/attendance-backend-go/internal/service/schedule"
	workPointService "github.com/andeanwork/attendance-backend-go/internal/service/workpoint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	cal, err := calendar.New(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Failed to load attendance timezone: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	weeklyScheduleRepo := postgresql.NewWeeklyScheduleRepository(db)
	exceptionRepo := postgresql.NewScheduleExceptionRepository(db)
	workPointRepo := postgresql.NewWorkPointRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db, cfg.Attendance.Timezone)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiration)

	schedules := scheduleService.NewScheduleService(db, weeklyScheduleRepo, exceptionRepo, cal)
	workPoints := workPointService.NewWorkPointService(workPointRepo, assignmentRepo, cal)
	auth := authService.NewAuthService(employeeRepo, jwtService)
	attendance := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		schedules,
		workPoints,
		cal,
		cfg.Attendance,
	)

	authHandler := appHTTP.NewAuthHandler(auth)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendance)
	scheduleHandler := appHTTP.NewScheduleHandler(schedules)
	workPointHandler := appHTTP.NewWorkPointHandler(workPoints)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeRepo)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		scheduleHandler,
		workPointHandler,
		employeeHandler,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
