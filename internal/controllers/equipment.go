package controllers

import (
	"io"
	"net/http"
	"strconv"

	"equipment-access/internal/dto"
	"equipment-access/internal/services"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type EquipmentController struct {
	service services.EquipmentServiceInterface
	logger  *zap.Logger
}

func NewEquipmentController(service services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{service: service, logger: logger}
}

// Create accepts multipart form data so a photo can be attached in the
// same request. The photo part is optional for technological equipment.
func (c *EquipmentController) Create(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var photo io.Reader
	var photoName string
	if fileHeader, err := ctx.FormFile("photo"); err == nil {
		src, err := fileHeader.Open()
		if err != nil {
			return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "could not read uploaded photo", err, nil), c.logger)
		}
		defer src.Close()
		photo = src
		photoName = fileHeader.Filename
	}

	equipment, err := c.service.CreateEquipment(reqCtx, payload, photo, photoName, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "equipment created", http.StatusCreated)
}

func (c *EquipmentController) Update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid equipment id", err, nil), c.logger)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	equipment, err := c.service.UpdateEquipment(reqCtx, id, payload, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "equipment updated", http.StatusOK)
}

func (c *EquipmentController) Deactivate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid equipment id", err, nil), c.logger)
	}

	if err := c.service.SetEquipmentActive(reqCtx, id, false, actorID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "equipment deactivated", http.StatusOK)
}

func (c *EquipmentController) FindByID(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid equipment id", err, nil), c.logger)
	}

	equipment, err := c.service.FindEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, equipment, "equipment retrieved", http.StatusOK)
}

// GetQRImage streams the equipment's QR label as a PNG.
func (c *EquipmentController) GetQRImage(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid equipment id", err, nil), c.logger)
	}

	img, err := c.service.GenerateQRImage(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return ctx.Blob(http.StatusOK, "image/png", img)
}

func (c *EquipmentController) List(ctx echo.Context) error {
	p := utils.ParsePagination(ctx.Request().URL.Query())
	items, total, err := c.service.GetEquipments(ctx.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, items, "equipment list retrieved", http.StatusOK, total)
}
