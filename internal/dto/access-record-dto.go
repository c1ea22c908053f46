package dto

import (
	"time"

	"equipment-access/internal/entities"

	"github.com/aarondl/null/v8"
)

type RegisterEntryDTO struct {
	EquipmentIdentifier string  `json:"equipment_identifier" validate:"required"`
	Notes               *string `json:"notes,omitempty"`
}

type RegisterExitDTO struct {
	EquipmentIdentifier string  `json:"equipment_identifier" validate:"required"`
	Notes               *string `json:"notes,omitempty"`
}

type ForceExitDTO struct {
	Reason string `json:"reason" validate:"required"`
}

type AccessRecordDTO struct {
	ID               uint64      `json:"id"`
	EquipmentID      uint64      `json:"equipment_id"`
	UserID           uint64      `json:"user_id"`
	AccessType       string      `json:"access_type"`
	Status           string      `json:"status"`
	EntryTime        time.Time   `json:"entry_time"`
	ExitTime         null.Time   `json:"exit_time"`
	ExpectedExitTime time.Time   `json:"expected_exit_time"`
	Notes            null.String `json:"notes"`
	CreatedAt        time.Time   `json:"created_at"`
}

func AccessRecordDTOFromEntity(r *entities.AccessRecord) AccessRecordDTO {
	return AccessRecordDTO{
		ID:               r.ID,
		EquipmentID:      r.EquipmentID,
		UserID:           r.UserID,
		AccessType:       string(r.AccessType),
		Status:           string(r.Status),
		EntryTime:        r.EntryTime,
		ExitTime:         null.TimeFromPtr(r.ExitTime),
		ExpectedExitTime: r.ExpectedExitTime,
		Notes:            null.StringFromPtr(r.Notes),
		CreatedAt:        r.CreatedAt,
	}
}

func AccessRecordDTOsFromEntities(records []entities.AccessRecord) []AccessRecordDTO {
	out := make([]AccessRecordDTO, 0, len(records))
	for i := range records {
		out = append(out, AccessRecordDTOFromEntity(&records[i]))
	}
	return out
}

// ActiveEquipmentDTO is the dashboard view of one open record joined
// with its equipment and registering user.
type ActiveEquipmentDTO struct {
	AccessRecordID   uint64      `json:"access_record_id"`
	EquipmentID      uint64      `json:"equipment_id"`
	EquipmentName    string      `json:"equipment_name"`
	EquipmentQRCode  null.String `json:"equipment_qr_code"`
	EquipmentSerial  null.String `json:"equipment_serial_number"`
	EntryTime        time.Time   `json:"entry_time"`
	ExpectedExitTime time.Time   `json:"expected_exit_time"`
	UserFullName     string      `json:"user_full_name"`
	DaysInside       int         `json:"days_inside"`
	IsExpired        bool        `json:"is_expired"`
	Status           string      `json:"status"`
}
