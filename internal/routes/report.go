package routes

import (
	"equipment-access/internal/controllers"
	"equipment-access/internal/services"
	"equipment-access/pkg/constants"
	"equipment-access/pkg/middleware"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func runReportRouter(secureGroup *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	reportCtrl := controllers.NewReportController(reportService, logger)

	secureGroup.GET("/reports/access", reportCtrl.GetAccessReport, authMW.RequireRole(constants.RoleIT))
}
