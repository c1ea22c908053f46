package routes

import (
	"equipment-access/internal/controllers"
	"equipment-access/internal/services"
	"equipment-access/pkg/constants"
	"equipment-access/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runAccessRouter(secureGroup *echo.Group, accessService *services.AccessControlService, userService services.UserServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	accessCtrl := controllers.NewAccessControlController(accessService, userService, logger)

	secureGroup.POST("/access/entry", accessCtrl.RegisterEntry)
	secureGroup.POST("/access/exit", accessCtrl.RegisterExit)
	secureGroup.GET("/access/active", accessCtrl.GetActive)
	secureGroup.GET("/access/expired", accessCtrl.GetExpired)
	secureGroup.GET("/access/equipment/:id", accessCtrl.GetEquipmentHistory)
	secureGroup.GET("/access/user/:id", accessCtrl.GetUserHistory)
	secureGroup.GET("/access/date-range", accessCtrl.GetByDateRange)

	secureGroup.POST("/access/force-exit/:id", accessCtrl.ForceExit, authMW.RequireRole(constants.RoleAdmin))
}
