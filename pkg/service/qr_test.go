package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRCodeServiceGenerateUniqueCode(t *testing.T) {
	svc := NewQRCodeService()

	first := svc.GenerateUniqueCode()
	second := svc.GenerateUniqueCode()

	assert.True(t, strings.HasPrefix(first, "HSR-"))
	assert.Len(t, first, 16)
	assert.Equal(t, strings.ToUpper(first), first)
	assert.NotEqual(t, first, second)
}

func TestQRCodeServiceEquipmentPayload(t *testing.T) {
	svc := NewQRCodeService()

	payload := svc.EquipmentPayload(12, "HSR-AAAABBBBCCCC")
	assert.Equal(t, "EQUIPMENT|ID:12|CODE:HSR-AAAABBBBCCCC", payload)
}

func TestQRCodeServiceGenerateImage(t *testing.T) {
	svc := NewQRCodeService()

	img, err := svc.GenerateImage("EQUIPMENT|ID:1|CODE:HSR-AAAABBBBCCCC")
	require.NoError(t, err)
	assert.NotEmpty(t, img)

	_, err = svc.GenerateImage("")
	require.Error(t, err)
}
