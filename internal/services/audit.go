package services

import (
	"context"

	"equipment-access/internal/dto"
	"equipment-access/internal/entities"
	"equipment-access/internal/repositories"

	"go.uber.org/zap"
)

// AuditRecorder is the write side of the audit trail. Recording is
// best-effort: failures are logged and swallowed, never surfaced to the
// operation that triggered the event.
type AuditRecorder interface {
	Record(ctx context.Context, action, entityType string, entityID, actorID *uint64, details map[string]interface{})
}

type AuditServiceInterface interface {
	AuditRecorder
	List(ctx context.Context, filter repositories.AuditLogFilter, limit, offset uint64) ([]dto.AuditLogDTO, uint64, error)
}

type AuditService struct {
	auditRepository repositories.AuditLogRepositoryInterface
	logger          *zap.Logger
}

func NewAuditService(auditRepository repositories.AuditLogRepositoryInterface, logger *zap.Logger) *AuditService {
	return &AuditService{
		auditRepository: auditRepository,
		logger:          logger,
	}
}

func (s *AuditService) Record(ctx context.Context, action, entityType string, entityID, actorID *uint64, details map[string]interface{}) {
	log := &entities.AuditLog{
		UserID:     actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}

	if err := s.auditRepository.Create(ctx, log); err != nil {
		s.logger.Error("failed to record audit event",
			zap.String("action", action),
			zap.String("entity_type", entityType),
			zap.Error(err),
		)
	}
}

func (s *AuditService) List(ctx context.Context, filter repositories.AuditLogFilter, limit, offset uint64) ([]dto.AuditLogDTO, uint64, error) {
	logs, total, err := s.auditRepository.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return dto.AuditLogDTOsFromEntities(logs), total, nil
}
