package services

import (
	"context"

	"equipment-access/internal/dto"
	"equipment-access/internal/repositories"
	"equipment-access/pkg/constants"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/service"
	"equipment-access/pkg/utils"

	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepository repositories.UserRepositoryInterface
	jwtService     service.JWTService
	audit          AuditRecorder
	logger         *zap.Logger
}

func NewAuthService(
	userRepository repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	audit AuditRecorder,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepository: userRepository,
		jwtService:     jwtService,
		audit:          audit,
		logger:         logger,
	}
}

func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.TokenPairDTO, error) {
	user, err := s.userRepository.GetByUsername(ctx, payload.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.NewHttpError(401, "invalid credentials", apperrors.ErrInvalidCredentials, nil)
	}

	if err := utils.CheckPassword(user.HashedPassword, payload.Password); err != nil {
		s.logger.Warn("failed login attempt", zap.String("username", payload.Username))
		return nil, apperrors.NewHttpError(401, "invalid credentials", apperrors.ErrInvalidCredentials, nil)
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionUserLogin, constants.AuditEntityUser, &user.ID, &user.ID, nil)

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		User:         dto.UserDTOFromEntity(user),
	}, nil
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, apperrors.NewHttpError(401, "invalid refresh token", err, nil)
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.NewHttpError(401, "token is not a refresh token", apperrors.ErrTokenIsNotRefresh, nil)
	}

	user, err := s.userRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, apperrors.NewHttpError(401, "user no longer active", apperrors.ErrUnauthorized, nil)
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &dto.TokenPairDTO{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "bearer",
		User:         dto.UserDTOFromEntity(user),
	}, nil
}
