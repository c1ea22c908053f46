package services

import (
	"context"
	"time"

	"equipment-access/internal/dto"
	"equipment-access/internal/repositories"
	"equipment-access/pkg/constants"
	apperrors "equipment-access/pkg/errors"

	"go.uber.org/zap"
)

type ReportServiceInterface interface {
	AccessReport(ctx context.Context, from, to time.Time, limit, offset uint64, actorID uint64) ([]dto.AccessReportRow, uint64, error)
}

type ReportService struct {
	reportRepository repositories.ReportRepositoryInterface
	audit            AuditRecorder
	logger           *zap.Logger
}

func NewReportService(reportRepository repositories.ReportRepositoryInterface, audit AuditRecorder, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{
		reportRepository: reportRepository,
		audit:            audit,
		logger:           logger,
	}
}

func (s *ReportService) AccessReport(ctx context.Context, from, to time.Time, limit, offset uint64, actorID uint64) ([]dto.AccessReportRow, uint64, error) {
	if from.After(to) {
		return nil, 0, apperrors.NewInvalidState("start date must be before end date")
	}

	rows, total, err := s.reportRepository.AccessByDateRange(ctx, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	s.audit.Record(ctx, constants.AuditActionReportGenerated, constants.AuditEntityReport, nil, &actorID, map[string]interface{}{
		"from":  from,
		"to":    to,
		"total": total,
	})

	return rows, total, nil
}
