package routes

import (
	"equipment-access/internal/controllers"
	"equipment-access/internal/services"
	"equipment-access/pkg/constants"
	"equipment-access/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAuditRouter(secureGroup *echo.Group, auditService services.AuditServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	auditCtrl := controllers.NewAuditController(auditService, logger)

	secureGroup.GET("/audit", auditCtrl.List, authMW.RequireRole(constants.RoleAdmin))
}
