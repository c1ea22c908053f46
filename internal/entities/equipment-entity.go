package entities

import "time"

type EquipmentType string

const (
	EquipmentTypeFrequent    EquipmentType = "frequent"
	EquipmentTypeNonFrequent EquipmentType = "non_frequent"
)

func (t EquipmentType) Valid() bool {
	return t == EquipmentTypeFrequent || t == EquipmentTypeNonFrequent
}

type EquipmentCategory string

const (
	EquipmentCategoryTechnological EquipmentCategory = "technological"
	EquipmentCategoryBiomedical    EquipmentCategory = "biomedical"
)

func (c EquipmentCategory) Valid() bool {
	return c == EquipmentCategoryTechnological || c == EquipmentCategoryBiomedical
}

// Equipment is a physical asset tracked by the system. Created and
// managed by the equipment module; the access lifecycle only reads it.
type Equipment struct {
	ID            uint64
	Name          string
	EquipmentType EquipmentType
	Category      EquipmentCategory
	SerialNumber  *string
	QRCode        *string
	ImageURL      *string
	Description   *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RequiresPhoto reports whether a photographic record is mandatory at
// creation time. Biomedical items always require one.
func (e *Equipment) RequiresPhoto() bool {
	return e.Category == EquipmentCategoryBiomedical
}

// IsFrequent reports whether the item may carry a QR code.
func (e *Equipment) IsFrequent() bool {
	return e.EquipmentType == EquipmentTypeFrequent
}
