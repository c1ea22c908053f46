package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"equipment-access/internal/dto"
	"equipment-access/internal/entities"
	"equipment-access/internal/repositories"
	"equipment-access/pkg/constants"
	apperrors "equipment-access/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const activeRecordsCacheKey = "access:active"

// AccessControlService mediates every state change of an access record.
// It owns the single-active-record invariant: for a given equipment
// item there is never more than one record in status active. The
// invariant is enforced inside one transaction (lock the active row,
// then create), backed by a partial unique index on the table.
type AccessControlService struct {
	accessRepository    repositories.AccessRecordRepositoryInterface
	equipmentRepository repositories.EquipmentRepositoryInterface
	txManager           repositories.TxManagerInterface
	audit               AuditRecorder
	cache               repositories.CacheRepositoryInterface
	logger              *zap.Logger

	// maxStay is applied once, at entry, to compute the expected exit.
	maxStay  time.Duration
	cacheTTL time.Duration
	now      func() time.Time
}

func NewAccessControlService(
	accessRepository repositories.AccessRecordRepositoryInterface,
	equipmentRepository repositories.EquipmentRepositoryInterface,
	txManager repositories.TxManagerInterface,
	audit AuditRecorder,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
	maxStay time.Duration,
	cacheTTL time.Duration,
) *AccessControlService {
	return &AccessControlService{
		accessRepository:    accessRepository,
		equipmentRepository: equipmentRepository,
		txManager:           txManager,
		audit:               audit,
		cache:               cache,
		logger:              logger,
		maxStay:             maxStay,
		cacheTTL:            cacheTTL,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// findEquipment resolves a scanned identifier, QR code first, then
// serial number.
func (s *AccessControlService) findEquipment(ctx context.Context, identifier string) (*entities.Equipment, error) {
	equipment, err := s.equipmentRepository.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if equipment == nil {
		return nil, apperrors.NewNotFound("equipment not found with the provided identifier")
	}
	return equipment, nil
}

// RegisterEntry opens a new access record for the identified equipment.
func (s *AccessControlService) RegisterEntry(ctx context.Context, identifier string, actorID uint64, notes *string) (*entities.AccessRecord, error) {
	equipment, err := s.findEquipment(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if !equipment.IsActive {
		return nil, apperrors.NewInvalidState("equipment is not active")
	}

	var record *entities.AccessRecord
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		existing, err := s.accessRepository.GetActiveByEquipmentForUpdate(ctx, tx, equipment.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewConflict("equipment already inside since %s", existing.EntryTime.Format(time.RFC3339))
		}

		now := s.now()
		record = &entities.AccessRecord{
			EquipmentID:      equipment.ID,
			UserID:           actorID,
			AccessType:       entities.AccessTypeEntry,
			Status:           entities.AccessStatusActive,
			EntryTime:        now,
			ExpectedExitTime: now.Add(s.maxStay),
			Notes:            notes,
		}
		return s.accessRepository.CreateInTx(ctx, tx, record)
	})
	if err != nil {
		// Two concurrent entries can both pass the active-row check;
		// the partial unique index picks the winner, and the loser
		// lands here. Re-read the committed row for its entry time.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_access_records_active" {
			if active, lookupErr := s.accessRepository.GetActiveByEquipment(ctx, equipment.ID); lookupErr == nil && active != nil {
				return nil, apperrors.NewConflict("equipment already inside since %s", active.EntryTime.Format(time.RFC3339))
			}
			return nil, apperrors.NewConflict("equipment already inside")
		}
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionAccessEntry, constants.AuditEntityAccessRecord, &record.ID, &actorID, map[string]interface{}{
		"equipment_id":       equipment.ID,
		"identifier":         identifier,
		"expected_exit_time": record.ExpectedExitTime,
	})
	s.invalidateActiveCache(ctx)

	s.logger.Info("equipment entry registered",
		zap.Uint64("record_id", record.ID),
		zap.Uint64("equipment_id", equipment.ID),
		zap.Uint64("user_id", actorID),
	)
	return record, nil
}

// RegisterExit closes the active record for the identified equipment.
// If the stored active record does not belong to the resolved equipment
// the record is blocked and the caller gets a forbidden error.
func (s *AccessControlService) RegisterExit(ctx context.Context, identifier string, actorID uint64, notes *string) (*entities.AccessRecord, error) {
	equipment, err := s.findEquipment(ctx, identifier)
	if err != nil {
		return nil, err
	}

	var record *entities.AccessRecord
	var mismatch bool
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		active, err := s.accessRepository.GetActiveByEquipmentForUpdate(ctx, tx, equipment.ID)
		if err != nil {
			return err
		}
		if active == nil {
			return apperrors.NewInvalidState("no active entry found for this equipment")
		}
		record = active

		if active.EquipmentID != equipment.ID {
			// Stale or spoofed record. Block it instead of closing it.
			mismatch = true
			if err := active.Transition(entities.AccessStatusBlocked); err != nil {
				return err
			}
			now := s.now()
			active.ExitTime = &now
			active.AppendNote("Exit blocked: equipment identifier mismatch")
			return s.accessRepository.UpdateInTx(ctx, tx, active)
		}

		if err := active.Transition(entities.AccessStatusCompleted); err != nil {
			return apperrors.NewInvalidState("record is not in a state that allows exit")
		}
		now := s.now()
		active.ExitTime = &now
		if notes != nil && *notes != "" {
			active.AppendNote("Exit: " + *notes)
		}
		return s.accessRepository.UpdateInTx(ctx, tx, active)
	})
	if err != nil {
		return nil, err
	}

	if mismatch {
		s.audit.Record(ctx, constants.AuditActionAccessBlocked, constants.AuditEntityAccessRecord, &record.ID, &actorID, map[string]interface{}{
			"equipment_id": equipment.ID,
			"identifier":   identifier,
		})
		s.invalidateActiveCache(ctx)
		s.logger.Warn("equipment mismatch on exit, record blocked",
			zap.Uint64("record_id", record.ID),
			zap.Uint64("equipment_id", equipment.ID),
		)
		return nil, apperrors.NewForbidden("equipment mismatch detected, exit blocked for security reasons")
	}

	s.audit.Record(ctx, constants.AuditActionAccessExit, constants.AuditEntityAccessRecord, &record.ID, &actorID, map[string]interface{}{
		"equipment_id": equipment.ID,
		"identifier":   identifier,
	})
	s.invalidateActiveCache(ctx)

	s.logger.Info("equipment exit registered",
		zap.Uint64("record_id", record.ID),
		zap.Uint64("equipment_id", equipment.ID),
		zap.Uint64("user_id", actorID),
	)
	return record, nil
}

// ScanExpired flags every active record past its expected exit time and
// returns the full overdue set. Re-running the scan is a no-op for
// records already flagged: they are returned again but not re-written
// and not re-audited.
func (s *AccessControlService) ScanExpired(ctx context.Context) ([]entities.AccessRecord, error) {
	var result []entities.AccessRecord
	var newlyExpired []entities.AccessRecord

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		result = nil
		newlyExpired = nil

		candidates, err := s.accessRepository.GetExpiredCandidatesForUpdate(ctx, tx, s.now())
		if err != nil {
			return err
		}

		for i := range candidates {
			record := &candidates[i]
			if record.Status == entities.AccessStatusActive {
				if err := record.Transition(entities.AccessStatusExpired); err != nil {
					return err
				}
				if err := s.accessRepository.UpdateInTx(ctx, tx, record); err != nil {
					return err
				}
				newlyExpired = append(newlyExpired, *record)
			}
		}
		result = candidates
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range newlyExpired {
		record := &newlyExpired[i]
		s.audit.Record(ctx, constants.AuditActionAlertGenerated, constants.AuditEntityAccessRecord, &record.ID, nil, map[string]interface{}{
			"equipment_id":       record.EquipmentID,
			"expected_exit_time": record.ExpectedExitTime,
		})
	}
	if len(newlyExpired) > 0 {
		s.invalidateActiveCache(ctx)
		s.logger.Info("overdue records flagged", zap.Int("count", len(newlyExpired)))
	}

	return result, nil
}

// ForceExit administratively closes an active or expired record.
func (s *AccessControlService) ForceExit(ctx context.Context, recordID uint64, actor *entities.User, reason string) (*entities.AccessRecord, error) {
	var record *entities.AccessRecord
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		found, err := s.accessRepository.GetByIDForUpdate(ctx, tx, recordID)
		if err != nil {
			return err
		}
		if found == nil {
			return apperrors.NewNotFound("access record not found")
		}

		if err := found.Transition(entities.AccessStatusCompleted); err != nil {
			return apperrors.NewInvalidState("record is not active or expired")
		}
		now := s.now()
		found.ExitTime = &now
		found.AppendNote(fmt.Sprintf("Forced exit by %s: %s", actor.FullName, reason))

		record = found
		return s.accessRepository.UpdateInTx(ctx, tx, found)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, constants.AuditActionAccessForcedExit, constants.AuditEntityAccessRecord, &record.ID, &actor.ID, map[string]interface{}{
		"equipment_id": record.EquipmentID,
		"reason":       reason,
	})
	s.invalidateActiveCache(ctx)

	s.logger.Info("forced exit completed",
		zap.Uint64("record_id", record.ID),
		zap.Uint64("admin_id", actor.ID),
		zap.String("reason", reason),
	)
	return record, nil
}

// GetActive returns the dashboard view of everything currently inside
// the facility. The list is served from a short-TTL cache when present.
func (s *AccessControlService) GetActive(ctx context.Context) ([]dto.ActiveEquipmentDTO, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, activeRecordsCacheKey); err == nil && cached != "" {
			var out []dto.ActiveEquipmentDTO
			if err := json.Unmarshal([]byte(cached), &out); err == nil {
				return out, nil
			}
		}
	}

	items, err := s.accessRepository.GetActiveAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]dto.ActiveEquipmentDTO, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, dto.ActiveEquipmentDTO{
			AccessRecordID:   item.ID,
			EquipmentID:      item.EquipmentID,
			EquipmentName:    item.EquipmentName,
			EquipmentQRCode:  null.NewString(item.EquipmentQRCode.String, item.EquipmentQRCode.Valid),
			EquipmentSerial:  null.NewString(item.EquipmentSerial.String, item.EquipmentSerial.Valid),
			EntryTime:        item.EntryTime,
			ExpectedExitTime: item.ExpectedExitTime,
			UserFullName:     item.UserFullName,
			DaysInside:       int(now.Sub(item.EntryTime).Hours() / 24),
			IsExpired:        item.IsExpired(now),
			Status:           string(item.Status),
		})
	}

	if s.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			if err := s.cache.Set(ctx, activeRecordsCacheKey, payload, s.cacheTTL); err != nil {
				s.logger.Debug("failed to cache active records", zap.Error(err))
			}
		}
	}

	return out, nil
}

// GetEquipmentHistory lists the access history of one equipment item,
// most recent first.
func (s *AccessControlService) GetEquipmentHistory(ctx context.Context, equipmentID uint64, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	equipment, err := s.equipmentRepository.GetByID(ctx, equipmentID)
	if err != nil {
		return nil, 0, err
	}
	if equipment == nil {
		return nil, 0, apperrors.NewNotFound("equipment not found")
	}
	return s.accessRepository.ListByEquipment(ctx, equipmentID, limit, offset)
}

// GetUserHistory lists every record registered by one user.
func (s *AccessControlService) GetUserHistory(ctx context.Context, userID uint64, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	return s.accessRepository.ListByUser(ctx, userID, limit, offset)
}

// GetByDateRange lists every record whose entry falls inside the range.
func (s *AccessControlService) GetByDateRange(ctx context.Context, from, to time.Time, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	if from.After(to) {
		return nil, 0, apperrors.NewInvalidState("start date must be before end date")
	}
	return s.accessRepository.ListByDateRange(ctx, from, to, limit, offset)
}

func (s *AccessControlService) invalidateActiveCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, activeRecordsCacheKey); err != nil {
		s.logger.Debug("failed to invalidate active records cache", zap.Error(err))
	}
}
