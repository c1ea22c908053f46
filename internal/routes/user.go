package routes

import (
	"equipment-access/internal/controllers"
	"equipment-access/internal/services"
	"equipment-access/pkg/constants"
	"equipment-access/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runUserRouter(secureGroup *echo.Group, userService services.UserServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	userCtrl := controllers.NewUserController(userService, logger)

	adminGroup := secureGroup.Group("", authMW.RequireRole(constants.RoleAdmin))
	adminGroup.GET("/users", userCtrl.List)
	adminGroup.GET("/user/:id", userCtrl.FindByID)
	adminGroup.POST("/user", userCtrl.Create)
	adminGroup.PUT("/user/:id", userCtrl.Update)
	adminGroup.DELETE("/user/:id", userCtrl.Deactivate)
}
