package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentRequiresPhoto(t *testing.T) {
	biomedical := &Equipment{Category: EquipmentCategoryBiomedical}
	technological := &Equipment{Category: EquipmentCategoryTechnological}

	assert.True(t, biomedical.RequiresPhoto())
	assert.False(t, technological.RequiresPhoto())
}

func TestEquipmentIsFrequent(t *testing.T) {
	frequent := &Equipment{EquipmentType: EquipmentTypeFrequent}
	nonFrequent := &Equipment{EquipmentType: EquipmentTypeNonFrequent}

	assert.True(t, frequent.IsFrequent())
	assert.False(t, nonFrequent.IsFrequent())
}

func TestEquipmentTypeValid(t *testing.T) {
	assert.True(t, EquipmentTypeFrequent.Valid())
	assert.True(t, EquipmentTypeNonFrequent.Valid())
	assert.False(t, EquipmentType("portable").Valid())
}

func TestEquipmentCategoryValid(t *testing.T) {
	assert.True(t, EquipmentCategoryTechnological.Valid())
	assert.True(t, EquipmentCategoryBiomedical.Valid())
	assert.False(t, EquipmentCategory("office").Valid())
}
