package service

import (
	"fmt"
	"strings"

	apperrors "equipment-access/pkg/errors"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	qrCodePrefix    = "HSR"
	qrCodeImageSize = 256
)

type QRCodeService interface {
	GenerateUniqueCode() string
	EquipmentPayload(equipmentID uint64, code string) string
	GenerateImage(data string) ([]byte, error)
}

type qrCodeService struct{}

func NewQRCodeService() QRCodeService {
	return &qrCodeService{}
}

// GenerateUniqueCode returns a new scannable identifier, a fixed
// prefix followed by twelve hex characters.
func (s *qrCodeService) GenerateUniqueCode() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return qrCodePrefix + "-" + strings.ToUpper(hex[:12])
}

// EquipmentPayload builds the string encoded into an equipment QR
// image, carrying both the row id and the scannable code.
func (s *qrCodeService) EquipmentPayload(equipmentID uint64, code string) string {
	return fmt.Sprintf("EQUIPMENT|ID:%d|CODE:%s", equipmentID, code)
}

// GenerateImage renders the payload as a PNG with high error
// correction, so labels stay readable when partially worn.
func (s *qrCodeService) GenerateImage(data string) ([]byte, error) {
	if data == "" {
		return nil, apperrors.NewInvalidState("qr payload cannot be empty")
	}
	return qrcode.Encode(data, qrcode.High, qrCodeImageSize)
}
