package controllers

import (
	"net/http"
	"strconv"
	"time"

	"equipment-access/internal/repositories"
	"equipment-access/internal/services"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuditController struct {
	service services.AuditServiceInterface
	logger  *zap.Logger
}

func NewAuditController(service services.AuditServiceInterface, logger *zap.Logger) *AuditController {
	return &AuditController{service: service, logger: logger}
}

func (c *AuditController) List(ctx echo.Context) error {
	query := ctx.Request().URL.Query()

	var filter repositories.AuditLogFilter
	if v := query.Get("action"); v != "" {
		filter.Action = utils.StringPtr(v)
	}
	if v := query.Get("entity_type"); v != "" {
		filter.EntityType = utils.StringPtr(v)
	}
	if v := query.Get("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid user_id", err, nil), c.logger)
		}
		filter.UserID = utils.Uint64Ptr(id)
	}
	if v := query.Get("start_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid start_date, expected RFC3339", err, nil), c.logger)
		}
		filter.From = &t
	}
	if v := query.Get("end_date"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid end_date, expected RFC3339", err, nil), c.logger)
		}
		filter.To = &t
	}

	p := utils.ParsePagination(query)
	logs, total, err := c.service.List(ctx.Request().Context(), filter, p.Limit, p.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, logs, "audit log retrieved", http.StatusOK, total)
}
