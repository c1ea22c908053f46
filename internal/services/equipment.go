package services

import (
	"context"
	"io"
	"strings"

	"equipment-access/internal/dto"
	"equipment-access/internal/entities"
	"equipment-access/internal/repositories"
	"equipment-access/pkg/constants"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/filestorage"
	"equipment-access/pkg/service"

	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO, photo io.Reader, photoName string, actorID uint64) (*dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO, actorID uint64) (*dto.EquipmentDTO, error)
	SetEquipmentActive(ctx context.Context, id uint64, active bool, actorID uint64) error
	FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error)
	GetEquipments(ctx context.Context, limit, offset uint64) ([]dto.EquipmentDTO, uint64, error)
	GenerateQRImage(ctx context.Context, id uint64) ([]byte, error)
}

type EquipmentService struct {
	equipmentRepository repositories.EquipmentRepositoryInterface
	storage             filestorage.FileStorageInterface
	qrService           service.QRCodeService
	audit               AuditRecorder
	logger              *zap.Logger
}

func NewEquipmentService(
	equipmentRepository repositories.EquipmentRepositoryInterface,
	storage filestorage.FileStorageInterface,
	qrService service.QRCodeService,
	audit AuditRecorder,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepository: equipmentRepository,
		storage:             storage,
		qrService:           qrService,
		audit:               audit,
		logger:              logger,
	}
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO, photo io.Reader, photoName string, actorID uint64) (*dto.EquipmentDTO, error) {
	equipment := &entities.Equipment{
		Name:          strings.TrimSpace(payload.Name),
		EquipmentType: entities.EquipmentType(payload.EquipmentType),
		Category:      entities.EquipmentCategory(payload.Category),
		SerialNumber:  trimPtr(payload.SerialNumber),
		Description:   payload.Description,
		IsActive:      true,
	}

	// QR codes exist only for frequent-type items and are assigned
	// here, never taken from the caller.
	if equipment.IsFrequent() {
		code := s.qrService.GenerateUniqueCode()
		equipment.QRCode = &code
	}

	// Biomedical items require a photographic record at creation time.
	if equipment.RequiresPhoto() && photo == nil {
		return nil, apperrors.NewInvalidState("biomedical equipment requires a photo")
	}

	if photo != nil {
		path, err := s.storage.Save(photo, photoName, "equipment")
		if err != nil {
			s.logger.Error("failed to store equipment photo", zap.Error(err))
			return nil, err
		}
		url := "/uploads/" + path
		equipment.ImageURL = &url
	}

	if err := s.equipmentRepository.Create(ctx, equipment); err != nil {
		s.logger.Error("failed to create equipment", zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionEquipmentCreated, constants.AuditEntityEquipment, &equipment.ID, &actorID, map[string]interface{}{
		"name":     equipment.Name,
		"category": string(equipment.Category),
	})

	out := dto.EquipmentDTOFromEntity(equipment)
	return &out, nil
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO, actorID uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, apperrors.NewNotFound("equipment not found")
	}

	if payload.Name != nil {
		equipment.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.SerialNumber != nil {
		equipment.SerialNumber = trimPtr(payload.SerialNumber)
	}
	if payload.Description != nil {
		equipment.Description = payload.Description
	}
	if payload.IsActive != nil {
		equipment.IsActive = *payload.IsActive
	}

	if err := s.equipmentRepository.Update(ctx, equipment); err != nil {
		s.logger.Error("failed to update equipment", zap.Uint64("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionEquipmentUpdated, constants.AuditEntityEquipment, &id, &actorID, nil)

	out := dto.EquipmentDTOFromEntity(equipment)
	return &out, nil
}

func (s *EquipmentService) SetEquipmentActive(ctx context.Context, id uint64, active bool, actorID uint64) error {
	if err := s.equipmentRepository.SetActive(ctx, id, active); err != nil {
		return err
	}

	action := constants.AuditActionEquipmentUpdated
	if !active {
		action = constants.AuditActionEquipmentDeleted
	}
	s.audit.Record(ctx, action, constants.AuditEntityEquipment, &id, &actorID, map[string]interface{}{
		"is_active": active,
	})
	return nil
}

func (s *EquipmentService) FindEquipment(ctx context.Context, id uint64) (*dto.EquipmentDTO, error) {
	equipment, err := s.equipmentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, apperrors.NewNotFound("equipment not found")
	}
	out := dto.EquipmentDTOFromEntity(equipment)
	return &out, nil
}

func (s *EquipmentService) GetEquipments(ctx context.Context, limit, offset uint64) ([]dto.EquipmentDTO, uint64, error) {
	items, total, err := s.equipmentRepository.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return dto.EquipmentDTOsFromEntities(items), total, nil
}

// GenerateQRImage renders the PNG label for an equipment's assigned
// QR code.
func (s *EquipmentService) GenerateQRImage(ctx context.Context, id uint64) ([]byte, error) {
	equipment, err := s.equipmentRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, apperrors.NewNotFound("equipment not found")
	}
	if equipment.QRCode == nil {
		return nil, apperrors.NewInvalidState("equipment does not have a qr code assigned")
	}

	payload := s.qrService.EquipmentPayload(equipment.ID, *equipment.QRCode)
	return s.qrService.GenerateImage(payload)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
