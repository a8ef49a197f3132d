package app

import (
	"database/sql"
	"zeiterfassung/internal/auth"
	"zeiterfassung/internal/dashboard"
	"zeiterfassung/internal/employee"
	"zeiterfassung/internal/fileupload"
	"zeiterfassung/internal/leave"
	"zeiterfassung/internal/messaging/kafka"
	"zeiterfassung/internal/project"
	"zeiterfassung/internal/report"
	"zeiterfassung/internal/timeentry"
	"zeiterfassung/internal/vehicle"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	dashboardRepo := dashboard.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	fileuploadRepo := fileupload.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	projectRepo := project.NewRepository(gormDB)
	timeentryRepo := timeentry.NewRepository(gormDB)
	vehicleRepo := vehicle.NewRepository(gormDB)

	// --- Services ---
	authService := auth.NewService(employeeRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb)
	timeentryService := timeentry.NewServiceWithOutbox(db, timeentryRepo, outboxRepo)
	// Leave debits vacation balances on the employee side and writes
	// synthetic vacation entries on the time entry side.
	leaveService := leave.NewService(db, leaveRepo, employeeService, timeentryService)
	projectService := project.NewService(db, projectRepo)
	vehicleService := vehicle.NewService(db, vehicleRepo)
	fileuploadService := fileupload.NewService(db, fileuploadRepo)
	dashboardService := dashboard.NewService(dashboardRepo, timeentryRepo, rdb)
	reportService := report.NewService(timeentryRepo, employeeRepo)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	employeeHandler := employee.NewHandler(employeeService)
	fileuploadHandler := fileupload.NewHandler(fileuploadService)
	leaveHandler := leave.NewHandler(leaveService)
	projectHandler := project.NewHandler(projectService)
	reportHandler := report.NewHandler(reportService)
	timeentryHandler := timeentry.NewHandler(timeentryService)
	vehicleHandler := vehicle.NewHandler(vehicleService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		dashboard.RegisterRoutes(api, dashboardHandler)
		employee.RegisterRoutes(api, employeeHandler)
		fileupload.RegisterRoutes(api, fileuploadHandler)
		leave.RegisterRoutes(api, leaveHandler)
		project.RegisterRoutes(api, projectHandler)
		report.RegisterRoutes(api, reportHandler)
		timeentry.RegisterRoutes(api, timeentryHandler, rdb)
		vehicle.RegisterRoutes(api, vehicleHandler)
	}

	return nil
}
