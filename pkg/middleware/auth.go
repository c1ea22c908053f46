package middleware

import (
	"context"
	"strings"

	"equipment-access/pkg/constants"
	"equipment-access/pkg/contextkeys"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/service"
	"equipment-access/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth validates the bearer token and puts the user id and role into
// the request context.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, "authorization header is missing", apperrors.ErrEmptyAuthHeader, nil), m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, "invalid authorization header", apperrors.ErrInvalidAuthHeader, nil), m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("token validation failed", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, "invalid token", err, nil), m.logger)
		}

		if claims.IsRefreshToken {
			return utils.ErrorResponse(c, apperrors.NewHttpError(401, "access token required", apperrors.ErrTokenIsNotAccess, nil), m.logger)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole guards privileged routes. The role hierarchy is
// admin > it > security.
func (m *AuthMiddleware) RequireRole(required string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetUserRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, apperrors.NewHttpError(401, "unauthorized", err, nil), m.logger)
			}
			if !constants.RoleAtLeast(role, required) {
				return utils.ErrorResponse(c, apperrors.NewForbidden("insufficient permissions"), m.logger)
			}
			return next(c)
		}
	}
}
