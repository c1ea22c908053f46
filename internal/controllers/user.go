package controllers

import (
	"net/http"
	"strconv"

	"equipment-access/internal/dto"
	"equipment-access/internal/services"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserController struct {
	service services.UserServiceInterface
	logger  *zap.Logger
}

func NewUserController(service services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{service: service, logger: logger}
}

func (c *UserController) Create(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.service.CreateUser(reqCtx, payload, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, user, "user created", http.StatusCreated)
}

func (c *UserController) Update(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid user id", err, nil), c.logger)
	}

	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid request body", err, nil), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	user, err := c.service.UpdateUser(reqCtx, id, payload, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, user, "user updated", http.StatusOK)
}

func (c *UserController) FindByID(ctx echo.Context) error {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid user id", err, nil), c.logger)
	}

	user, err := c.service.FindUser(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if user == nil {
		return utils.ErrorResponse(ctx, apperrors.NewNotFound("user not found"), c.logger)
	}

	return utils.SuccessResponse(ctx, dto.UserDTOFromEntity(user), "user retrieved", http.StatusOK)
}

func (c *UserController) List(ctx echo.Context) error {
	p := utils.ParsePagination(ctx.Request().URL.Query())
	users, total, err := c.service.GetUsers(ctx.Request().Context(), p.Limit, p.Offset)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, users, "users retrieved", http.StatusOK, total)
}

func (c *UserController) Deactivate(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusUnauthorized, "unauthorized", err, nil), c.logger)
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewHttpError(http.StatusBadRequest, "invalid user id", err, nil), c.logger)
	}

	if err := c.service.DeactivateUser(reqCtx, id, actorID); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	return utils.SuccessResponse(ctx, nil, "user deactivated", http.StatusOK)
}
