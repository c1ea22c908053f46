package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"equipment-access/internal/dto"
	"equipment-access/internal/entities"
	apperrors "equipment-access/pkg/errors"
	"equipment-access/pkg/service"
	"equipment-access/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFileStorage struct {
	saved []string
}

func (s *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	path := prefix + "/" + originalFileName
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeFileStorage) Delete(fileURL string) error { return nil }

func newEquipmentService(t *testing.T) (EquipmentServiceInterface, *fakeEquipmentRepo, *fakeFileStorage, *fakeAudit) {
	t.Helper()
	repo := &fakeEquipmentRepo{items: map[uint64]*entities.Equipment{}}
	storage := &fakeFileStorage{}
	audit := &fakeAudit{}
	svc := NewEquipmentService(repo, storage, service.NewQRCodeService(), audit, zap.NewNop())
	return svc, repo, storage, audit
}

func TestCreateEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns a generated qr code to frequent equipment", func(t *testing.T) {
		svc, _, _, audit := newEquipmentService(t)

		out, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name:          "  Maintenance Laptop ",
			EquipmentType: "frequent",
			Category:      "technological",
			SerialNumber:  utils.StringPtr("SN-100"),
		}, nil, "", 1)
		require.NoError(t, err)

		assert.Equal(t, "Maintenance Laptop", out.Name)
		assert.True(t, out.IsActive)
		require.True(t, out.QRCode.Valid)
		assert.True(t, strings.HasPrefix(out.QRCode.String, "HSR-"))
		assert.Len(t, out.QRCode.String, 16)
		require.Len(t, audit.entries, 1)
	})

	t.Run("assigns distinct codes across creations", func(t *testing.T) {
		svc, _, _, _ := newEquipmentService(t)

		first, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name: "Cart A", EquipmentType: "frequent", Category: "technological",
		}, nil, "", 1)
		require.NoError(t, err)
		second, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name: "Cart B", EquipmentType: "frequent", Category: "technological",
		}, nil, "", 1)
		require.NoError(t, err)

		assert.NotEqual(t, first.QRCode.String, second.QRCode.String)
	})

	t.Run("leaves non-frequent equipment without a qr code", func(t *testing.T) {
		svc, _, _, _ := newEquipmentService(t)

		out, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name:          "Network Analyzer",
			EquipmentType: "non_frequent",
			Category:      "technological",
			SerialNumber:  utils.StringPtr("SN-200"),
		}, nil, "", 1)
		require.NoError(t, err)
		assert.False(t, out.QRCode.Valid)
	})

	t.Run("requires a photo for biomedical equipment", func(t *testing.T) {
		svc, _, _, _ := newEquipmentService(t)

		_, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name:          "Infusion Pump",
			EquipmentType: "non_frequent",
			Category:      "biomedical",
			SerialNumber:  utils.StringPtr("SN-300"),
		}, nil, "", 1)
		require.Error(t, err)
	})

	t.Run("stores the photo and records its url", func(t *testing.T) {
		svc, _, storage, _ := newEquipmentService(t)

		out, err := svc.CreateEquipment(ctx, dto.CreateEquipmentDTO{
			Name:          "Infusion Pump",
			EquipmentType: "non_frequent",
			Category:      "biomedical",
			SerialNumber:  utils.StringPtr("SN-300"),
		}, strings.NewReader("jpeg-bytes"), "pump.jpg", 1)
		require.NoError(t, err)

		require.Len(t, storage.saved, 1)
		assert.Equal(t, "/uploads/equipment/pump.jpg", out.ImageURL.String)
	})
}

func TestGenerateQRImage(t *testing.T) {
	ctx := context.Background()

	t.Run("renders a png for equipment with a qr code", func(t *testing.T) {
		svc, repo, _, _ := newEquipmentService(t)
		repo.items[1] = &entities.Equipment{
			ID: 1, Name: "Maintenance Laptop", EquipmentType: entities.EquipmentTypeFrequent,
			Category: entities.EquipmentCategoryTechnological,
			QRCode:   utils.StringPtr("HSR-AAAABBBBCCCC"), IsActive: true,
		}

		img, err := svc.GenerateQRImage(ctx, 1)
		require.NoError(t, err)
		assert.NotEmpty(t, img)
	})

	t.Run("400s for equipment without a qr code", func(t *testing.T) {
		svc, repo, _, _ := newEquipmentService(t)
		repo.items[2] = &entities.Equipment{
			ID: 2, Name: "Infusion Pump", EquipmentType: entities.EquipmentTypeNonFrequent,
			Category: entities.EquipmentCategoryBiomedical, IsActive: true,
		}

		_, err := svc.GenerateQRImage(ctx, 2)
		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 400, httpErr.Code)
	})

	t.Run("404s for unknown equipment", func(t *testing.T) {
		svc, _, _, _ := newEquipmentService(t)

		_, err := svc.GenerateQRImage(ctx, 99)
		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})
}

func TestUpdateEquipment(t *testing.T) {
	ctx := context.Background()

	t.Run("404s for unknown equipment", func(t *testing.T) {
		svc, _, _, _ := newEquipmentService(t)

		_, err := svc.UpdateEquipment(ctx, 77, dto.UpdateEquipmentDTO{}, 1)
		require.Error(t, err)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 404, httpErr.Code)
	})

	t.Run("applies only the provided fields", func(t *testing.T) {
		svc, repo, _, _ := newEquipmentService(t)
		repo.items[1] = &entities.Equipment{
			ID: 1, Name: "Old Name", EquipmentType: entities.EquipmentTypeFrequent,
			Category: entities.EquipmentCategoryTechnological,
			QRCode:   utils.StringPtr("QR-1"), IsActive: true,
		}

		out, err := svc.UpdateEquipment(ctx, 1, dto.UpdateEquipmentDTO{
			Name: utils.StringPtr("New Name"),
		}, 1)
		require.NoError(t, err)
		assert.Equal(t, "New Name", out.Name)
		assert.Equal(t, "QR-1", out.QRCode.String)
		assert.True(t, out.IsActive)
	})
}
