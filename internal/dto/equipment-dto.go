package dto

import (
	"time"

	"equipment-access/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	Name          string  `json:"name" form:"name" validate:"required"`
	EquipmentType string  `json:"equipment_type" form:"equipment_type" validate:"required,equipment_type"`
	Category      string  `json:"category" form:"category" validate:"required,equipment_category"`
	SerialNumber  *string `json:"serial_number" form:"serial_number"`
	Description   *string `json:"description" form:"description"`
}

type UpdateEquipmentDTO struct {
	Name         *string `json:"name"`
	SerialNumber *string `json:"serial_number"`
	Description  *string `json:"description"`
	IsActive     *bool   `json:"is_active"`
}

type EquipmentDTO struct {
	ID            uint64      `json:"id"`
	Name          string      `json:"name"`
	EquipmentType string      `json:"equipment_type"`
	Category      string      `json:"category"`
	SerialNumber  null.String `json:"serial_number"`
	QRCode        null.String `json:"qr_code"`
	ImageURL      null.String `json:"image_url"`
	Description   null.String `json:"description"`
	IsActive      bool        `json:"is_active"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func EquipmentDTOFromEntity(e *entities.Equipment) EquipmentDTO {
	return EquipmentDTO{
		ID:            e.ID,
		Name:          e.Name,
		EquipmentType: string(e.EquipmentType),
		Category:      string(e.Category),
		SerialNumber:  null.StringFromPtr(e.SerialNumber),
		QRCode:        null.StringFromPtr(e.QRCode),
		ImageURL:      null.StringFromPtr(e.ImageURL),
		Description:   null.StringFromPtr(e.Description),
		IsActive:      e.IsActive,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func EquipmentDTOsFromEntities(items []entities.Equipment) []EquipmentDTO {
	out := make([]EquipmentDTO, 0, len(items))
	for i := range items {
		out = append(out, EquipmentDTOFromEntity(&items[i]))
	}
	return out
}
