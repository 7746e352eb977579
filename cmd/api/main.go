package main

import (
	"fmt"
	"net/http"

	"github.com/kenocia/payroll-backend-go/internal/config"
	appHTTP "github.com/kenocia/payroll-backend-go/internal/handler/http"
	"github.com/kenocia/payroll-backend-go/internal/pkg/database"
	"github.com/kenocia/payroll-backend-go/internal/pkg/jwt"
	"github.com/kenocia/payroll-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kenocia/payroll-backend-go/internal/service/attendance"
	importerService "github.com/kenocia/payroll-backend-go/internal/service/importer"
	payrollService "github.com/kenocia/payroll-backend-go/internal/service/payroll"
	scheduleService "github.com/kenocia/payroll-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	loc := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	contractRepo := postgresql.NewContractRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	scheduleChangeRepo := postgresql.NewScheduleChangeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiration,
		cfg.JWT.RefreshExpiration,
	)

	scheduleSvc := scheduleService.NewScheduleService(
		db,
		scheduleRepo,
		scheduleChangeRepo,
		employeeRepo,
		contractRepo,
		loc,
	)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		scheduleSvc,
		loc,
	)
	importSvc := importerService.NewImportService(
		employeeRepo,
		contractRepo,
		scheduleRepo,
		attendanceRepo,
		loc,
	)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		attendanceRepo,
		employeeRepo,
		contractRepo,
		scheduleRepo,
		loc,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	importHandler := appHTTP.NewImportHandler(importSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(
		JWTService,
		attendanceHandler,
		scheduleHandler,
		importHandler,
		payrollHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
