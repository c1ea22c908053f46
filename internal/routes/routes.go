package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-access/internal/repositories"
	"equipment-access/internal/services"
	"equipment-access/pkg/config"
	"equipment-access/pkg/filestorage"
	"equipment-access/pkg/middleware"
	"equipment-access/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		logger.Fatal("failed to create file storage", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)

	userRepo := repositories.NewUserRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	accessRepo := repositories.NewAccessRecordRepository(dbConn)
	auditRepo := repositories.NewAuditLogRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(userRepo, jwtSvc, auditService, logger)
	userService := services.NewUserService(userRepo, auditService, logger)
	qrService := service.NewQRCodeService()
	equipmentService := services.NewEquipmentService(equipmentRepo, fileStorage, qrService, auditService, logger)
	accessService := services.NewAccessControlService(
		accessRepo, equipmentRepo, txManager, auditService, cacheRepo, logger,
		cfg.Access.MaxStay, cfg.Access.ActiveCacheTTL,
	)
	reportService := services.NewReportService(reportRepo, auditService, logger)

	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, authService, logger)
	runAccessRouter(secureGroup, accessService, userService, logger, authMW)
	runEquipmentRouter(secureGroup, equipmentService, logger, authMW)
	runUserRouter(secureGroup, userService, logger, authMW)
	runAuditRouter(secureGroup, auditService, logger, authMW)
	runReportRouter(secureGroup, reportService, logger, authMW)
}
