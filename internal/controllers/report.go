package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"equipment-access/internal/dto"
	"equipment-access/internal/services"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetAccessReport returns the access report for a date range, either as
// JSON or as an XLSX attachment when format=xlsx.
func (c *ReportController) GetAccessReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	from, err := time.Parse(time.RFC3339, ctx.QueryParam("start_date"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid start_date, expected RFC3339", err, nil), c.logger)
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("end_date"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid end_date, expected RFC3339", err, nil), c.logger)
	}

	format := strings.ToLower(ctx.QueryParam("format"))
	p := utils.ParsePagination(ctx.Request().URL.Query())
	if format == "xlsx" {
		// Export ignores pagination, the full range goes into the file.
		p.Limit = 100000
		p.Offset = 0
	}

	rows, total, err := c.reportService.AccessReport(reqCtx, from, to, p.Limit, p.Offset, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}

	return utils.SuccessResponse(ctx, rows, "access report generated", http.StatusOK, total)
}

var accessReportHeaders = []string{
	"Record ID", "Equipment", "Serial Number", "QR Code", "Category",
	"User", "Status", "Entry Time", "Exit Time", "Expected Exit", "Notes",
}

func accessRowToSlice(item dto.AccessReportRow) []interface{} {
	timeFmt := "02.01.2006 15:04"
	var exitTime string
	if item.ExitTime.Valid {
		exitTime = item.ExitTime.Time.Format(timeFmt)
	}

	return []interface{}{
		item.RecordID, item.EquipmentName, item.EquipmentSerial.String, item.EquipmentQRCode.String,
		item.Category, item.UserFullName, item.Status,
		item.EntryTime.Format(timeFmt), exitTime, item.ExpectedExitTime.Format(timeFmt),
		item.Notes.String,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, data []dto.AccessReportRow) error {
	f := excelize.NewFile()
	sheet := "Access Report"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &accessReportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "K1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := accessRowToSlice(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "F", 20)
	f.SetColWidth(sheet, "H", "J", 18)
	f.SetColWidth(sheet, "K", "K", 50)

	fileName := fmt.Sprintf("access_report_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
