package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"helpdesk-system/internal/listeners"
	"helpdesk-system/internal/repositories"
	"helpdesk-system/internal/services"
	"helpdesk-system/pkg/config"
	"helpdesk-system/pkg/eventbus"
	"helpdesk-system/pkg/middleware"
	"helpdesk-system/pkg/service"
)

// InitRouter собирает весь граф зависимостей и вешает маршруты на /api.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, bus *eventbus.Bus, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, logger)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, logger)
	ticketRepo := repositories.NewTicketRepository(dbConn, logger)
	commentRepo := repositories.NewCommentRepository(dbConn)
	notificationRepo := repositories.NewNotificationRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЛУШАТЕЛИ СОБЫТИЙ ---
	listeners.NewNotificationListener(notificationRepo, userRepo, logger).Register(bus)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg, bus, logger)
	userService := services.NewUserService(userRepo, bus, logger)
	departmentService := services.NewDepartmentService(departmentRepo, userRepo, bus, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, userRepo, bus, logger)
	ticketService := services.NewTicketService(ticketRepo, userRepo, bus, logger)
	commentService := services.NewCommentService(commentRepo, ticketRepo, userRepo, bus, logger)
	notificationService := services.NewNotificationService(notificationRepo)
	reportService := services.NewReportService(reportRepo, userRepo)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runUserRouter(secureGroup, userService, logger)
	runDepartmentRouter(secureGroup, departmentService, logger)
	runEquipmentRouter(secureGroup, equipmentService, logger)
	runTicketRouter(secureGroup, ticketService, commentService, logger)
	runNotificationRouter(secureGroup, notificationService, logger)
	runReportRouter(secureGroup, reportService, logger)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
