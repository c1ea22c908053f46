package routes

import (
	"equipment-access/internal/controllers"
	"equipment-access/internal/services"
	"equipment-access/pkg/constants"
	"equipment-access/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentService services.EquipmentServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	secureGroup.GET("/equipments", equipmentCtrl.List)
	secureGroup.GET("/equipment/:id", equipmentCtrl.FindByID)
	secureGroup.GET("/equipment/:id/qr", equipmentCtrl.GetQRImage)

	secureGroup.POST("/equipment", equipmentCtrl.Create, authMW.RequireRole(constants.RoleIT))
	secureGroup.PUT("/equipment/:id", equipmentCtrl.Update, authMW.RequireRole(constants.RoleIT))
	secureGroup.DELETE("/equipment/:id", equipmentCtrl.Deactivate, authMW.RequireRole(constants.RoleAdmin))
}
