package customvalidator

import (
	"regexp"

	"equipment-access/internal/entities"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the domain-specific rules on the
// shared validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("equipment_type", isEquipmentType); err != nil {
		return err
	}
	if err := v.RegisterValidation("equipment_category", isEquipmentCategory); err != nil {
		return err
	}
	if err := v.RegisterValidation("user_role", isUserRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}
	return nil
}

func isEquipmentType(fl validator.FieldLevel) bool {
	return entities.EquipmentType(fl.Field().String()).Valid()
}

func isEquipmentCategory(fl validator.FieldLevel) bool {
	return entities.EquipmentCategory(fl.Field().String()).Valid()
}

func isUserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "it", "security":
		return true
	}
	return false
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(fl.Field().String())
}
