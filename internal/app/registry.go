package app

import (
	"hr-portal/internal/attendance"
	"hr-portal/internal/config"
	"hr-portal/internal/dashboard"
	"hr-portal/internal/employee"
	"hr-portal/internal/messaging/kafka"
	"hr-portal/internal/middleware"
	"hr-portal/internal/notification"
	"hr-portal/internal/payrollreport"
	"hr-portal/internal/recruitment"
	"hr-portal/internal/request"
	"hr-portal/internal/session"
	"hr-portal/internal/shared/counter"
	"hr-portal/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.CORS(cfg.Server.CORSAllowedOrigins),
	)

	// --- Session ---
	policy, err := session.NewPolicy(cfg.Session.PolicyPath)
	if err != nil {
		return err
	}
	gate := session.NewGate(session.NewReader(cfg.Session.Secret), policy, cfg.Session.LandingPath, logger)

	// --- Infrastructure ---
	// documents are only reachable through the gated employee routes
	files, err := storage.NewLocalStorage(cfg.Storage.DocumentDir, cfg.Storage.MaxUpload)
	if err != nil {
		return err
	}

	// --- Repositories ---
	counterRepo := counter.NewRepository(db)
	outboxRepo := kafka.NewOutboxRepository(db)
	attendanceRepo := attendance.NewRepository(db)
	employeeRepo := employee.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	payrollReportRepo := payrollreport.NewRepository(db)
	requestRepo := request.NewRepository(db)

	// --- Services ---
	attendanceService, err := attendance.NewService(db, attendanceRepo, attendance.Options{
		LateAfter:      cfg.Dashboard.LateAfter,
		RandomCalendar: cfg.Fixtures.Enabled,
		Seed:           cfg.Fixtures.Seed,
	}, logger)
	if err != nil {
		return err
	}
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo, files, rdb, cfg.Redis.ListTTL, logger)
	notificationService := notification.NewService(notificationRepo, logger)
	payrollReportService := payrollreport.NewService(db, payrollReportRepo, outboxRepo, logger)
	requestService := request.NewService(db, requestRepo, counterRepo, outboxRepo, rdb, cfg.Redis.ListTTL, logger)
	dashboardService := dashboard.NewService(requestService, payrollReportService, attendanceService, dashboard.Options{
		VacationDaysPerYear: cfg.Dashboard.VacationDaysPerYear,
		SavingsFundLimit:    cfg.Dashboard.SavingsFundLimit,
	}, logger)
	recruitmentModule := recruitment.NewModule(db, logger)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService, logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	notificationHandler := notification.NewHandler(notificationService, logger)
	payrollReportHandler := payrollreport.NewHandler(payrollReportService, logger)
	requestHandler := request.NewHandler(requestService, gate, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		attendance.RegisterRoutes(api, attendanceHandler, gate)
		employee.RegisterRoutes(api, employeeHandler, gate)
		notification.RegisterRoutes(api, notificationHandler, gate)
		payrollreport.RegisterRoutes(api, payrollReportHandler, gate)
		recruitment.RegisterRoutes(api, recruitmentModule, gate)
		request.RegisterRoutes(api, requestHandler, gate, rdb)
	}

	dashboard.RegisterRoutes(&router.RouterGroup, dashboardHandler, gate)

	return nil
}
