package dto

import (
	"time"

	"equipment-access/internal/entities"

	"github.com/aarondl/null/v8"
)

type AuditLogDTO struct {
	ID         uint64                 `json:"id"`
	UserID     null.Uint64            `json:"user_id"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   null.Uint64            `json:"entity_id"`
	Details    map[string]interface{} `json:"details"`
	IPAddress  null.String            `json:"ip_address"`
	UserAgent  null.String            `json:"user_agent"`
	CreatedAt  time.Time              `json:"created_at"`
}

func AuditLogDTOFromEntity(l *entities.AuditLog) AuditLogDTO {
	return AuditLogDTO{
		ID:         l.ID,
		UserID:     null.Uint64FromPtr(l.UserID),
		Action:     l.Action,
		EntityType: l.EntityType,
		EntityID:   null.Uint64FromPtr(l.EntityID),
		Details:    l.Details,
		IPAddress:  null.StringFromPtr(l.IPAddress),
		UserAgent:  null.StringFromPtr(l.UserAgent),
		CreatedAt:  l.CreatedAt,
	}
}

func AuditLogDTOsFromEntities(logs []entities.AuditLog) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(logs))
	for i := range logs {
		out = append(out, AuditLogDTOFromEntity(&logs[i]))
	}
	return out
}
