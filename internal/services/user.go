package services

import (
	"context"
	"strings"

	"equipment-access/internal/dto"
	"equipment-access/internal/entities"
	"equipment-access/internal/repositories"
	"equipment-access/pkg/constants"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/utils"

	"go.uber.org/zap"
)

type UserServiceInterface interface {
	CreateUser(ctx context.Context, payload dto.CreateUserDTO, actorID uint64) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, actorID uint64) (*dto.UserDTO, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	GetUsers(ctx context.Context, limit, offset uint64) ([]dto.UserDTO, uint64, error)
	DeactivateUser(ctx context.Context, id uint64, actorID uint64) error
}

type UserService struct {
	userRepository repositories.UserRepositoryInterface
	audit          AuditRecorder
	logger         *zap.Logger
}

func NewUserService(userRepository repositories.UserRepositoryInterface, audit AuditRecorder, logger *zap.Logger) UserServiceInterface {
	return &UserService{
		userRepository: userRepository,
		audit:          audit,
		logger:         logger,
	}
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO, actorID uint64) (*dto.UserDTO, error) {
	existing, err := s.userRepository.GetByUsername(ctx, payload.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("username already taken")
	}

	hashed, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:       strings.TrimSpace(payload.Username),
		Email:          strings.ToLower(strings.TrimSpace(payload.Email)),
		FullName:       strings.TrimSpace(payload.FullName),
		Role:           payload.Role,
		HashedPassword: hashed,
		IsActive:       true,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionUserCreated, constants.AuditEntityUser, &user.ID, &actorID, map[string]interface{}{
		"username": user.Username,
		"role":     user.Role,
	})

	out := dto.UserDTOFromEntity(user)
	return &out, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO, actorID uint64) (*dto.UserDTO, error) {
	user, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user not found")
	}

	if payload.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.FullName != nil {
		user.FullName = strings.TrimSpace(*payload.FullName)
	}
	if payload.Role != nil {
		user.Role = *payload.Role
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}

	if err := s.userRepository.Update(ctx, user); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionUserUpdated, constants.AuditEntityUser, &id, &actorID, nil)

	out := dto.UserDTOFromEntity(user)
	return &out, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user not found")
	}
	return user, nil
}

func (s *UserService) GetUsers(ctx context.Context, limit, offset uint64) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepository.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return dto.UserDTOsFromEntities(users), total, nil
}

func (s *UserService) DeactivateUser(ctx context.Context, id uint64, actorID uint64) error {
	user, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewNotFound("user not found")
	}

	user.IsActive = false
	if err := s.userRepository.Update(ctx, user); err != nil {
		return err
	}

	s.audit.Record(ctx, constants.AuditActionUserDeleted, constants.AuditEntityUser, &id, &actorID, nil)
	return nil
}
