package controllers

import (
	"net/http"
	"strconv"
	"time"

	"equipment-access/internal/dto"
	"equipment-access/internal/services"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AccessControlController struct {
	accessService *services.AccessControlService
	userService   services.UserServiceInterface
	logger        *zap.Logger
}

func NewAccessControlController(
	accessService *services.AccessControlService,
	userService services.UserServiceInterface,
	logger *zap.Logger,
) *AccessControlController {
	return &AccessControlController{
		accessService: accessService,
		userService:   userService,
		logger:        logger,
	}
}

func (c *AccessControlController) RegisterEntry(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	var payload dto.RegisterEntryDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.accessService.RegisterEntry(reqCtx, payload.EquipmentIdentifier, userID, payload.Notes)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.AccessRecordDTOFromEntity(record), "entry registered", http.StatusCreated)
}

func (c *AccessControlController) RegisterExit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	var payload dto.RegisterExitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.accessService.RegisterExit(reqCtx, payload.EquipmentIdentifier, userID, payload.Notes)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.AccessRecordDTOFromEntity(record), "exit registered", http.StatusOK)
}

func (c *AccessControlController) GetActive(ctx echo.Context) error {
	list, err := c.accessService.GetActive(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, list, "active equipment retrieved", http.StatusOK)
}

// GetExpired runs the expiration scan and returns every overdue record.
// Qualifying active records are flagged as a side effect.
func (c *AccessControlController) GetExpired(ctx echo.Context) error {
	records, err := c.accessService.ScanExpired(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.AccessRecordDTOsFromEntities(records), "expired records retrieved", http.StatusOK)
}

func (c *AccessControlController) ForceExit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	recordID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid record id", err, nil), c.logger)
	}

	var payload dto.ForceExitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	actor, err := c.userService.FindUser(reqCtx, userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	record, err := c.accessService.ForceExit(reqCtx, recordID, actor, payload.Reason)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.AccessRecordDTOFromEntity(record), "forced exit completed", http.StatusOK)
}

func (c *AccessControlController) GetEquipmentHistory(ctx echo.Context) error {
	equipmentID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid equipment id", err, nil), c.logger)
	}

	p := utils.ParsePagination(ctx.Request().URL.Query())
	records, total, err := c.accessService.GetEquipmentHistory(ctx.Request().Context(), equipmentID, p.Limit, p.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.AccessRecordDTOsFromEntities(records), "equipment history retrieved", http.StatusOK, total)
}

func (c *AccessControlController) GetUserHistory(ctx echo.Context) error {
	userID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid user id", err, nil), c.logger)
	}

	p := utils.ParsePagination(ctx.Request().URL.Query())
	records, total, err := c.accessService.GetUserHistory(ctx.Request().Context(), userID, p.Limit, p.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.AccessRecordDTOsFromEntities(records), "user history retrieved", http.StatusOK, total)
}

func (c *AccessControlController) GetByDateRange(ctx echo.Context) error {
	from, err := time.Parse(time.RFC3339, ctx.QueryParam("start_date"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid start_date, expected RFC3339", err, nil), c.logger)
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("end_date"))
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid end_date, expected RFC3339", err, nil), c.logger)
	}

	p := utils.ParsePagination(ctx.Request().URL.Query())
	records, total, err := c.accessService.GetByDateRange(ctx.Request().Context(), from, to, p.Limit, p.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, dto.AccessRecordDTOsFromEntities(records), "records retrieved", http.StatusOK, total)
}
