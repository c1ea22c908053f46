package repositories

import (
	"context"
	"database/sql"
	"errors"

	"equipment-access/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipmentFields = "id, name, equipment_type, category, serial_number, qr_code, image_url, description, is_active, created_at, updated_at"

// EquipmentRepositoryInterface is the equipment registry. The access
// lifecycle only reads from it; writes come from the equipment module.
type EquipmentRepositoryInterface interface {
	// FindByIdentifier resolves a scanned identifier. Lookup policy:
	// QR code first, then serial number. Returns nil when neither matches.
	FindByIdentifier(ctx context.Context, identifier string) (*entities.Equipment, error)
	GetByID(ctx context.Context, id uint64) (*entities.Equipment, error)
	GetByQRCode(ctx context.Context, code string) (*entities.Equipment, error)
	GetBySerialNumber(ctx context.Context, serial string) (*entities.Equipment, error)
	Create(ctx context.Context, equipment *entities.Equipment) error
	Update(ctx context.Context, equipment *entities.Equipment) error
	SetActive(ctx context.Context, id uint64, active bool) error
	List(ctx context.Context, limit, offset uint64) ([]entities.Equipment, uint64, error)
}

type EquipmentRepository struct {
	storage *pgxpool.Pool
}

func NewEquipmentRepository(storage *pgxpool.Pool) EquipmentRepositoryInterface {
	return &EquipmentRepository{storage: storage}
}

func scanEquipment(row pgx.Row) (*entities.Equipment, error) {
	var e entities.Equipment
	var serial, qr, imageURL, description sql.NullString

	err := row.Scan(
		&e.ID, &e.Name, &e.EquipmentType, &e.Category,
		&serial, &qr, &imageURL, &description,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if serial.Valid {
		e.SerialNumber = &serial.String
	}
	if qr.Valid {
		e.QRCode = &qr.String
	}
	if imageURL.Valid {
		e.ImageURL = &imageURL.String
	}
	if description.Valid {
		e.Description = &description.String
	}
	return &e, nil
}

func (r *EquipmentRepository) getByColumn(ctx context.Context, column string, value interface{}) (*entities.Equipment, error) {
	query, args, err := psql.
		Select(equipmentFields).
		From("equipments").
		Where(sq.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, err
	}

	equipment, err := scanEquipment(r.storage.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return equipment, err
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id uint64) (*entities.Equipment, error) {
	return r.getByColumn(ctx, "id", id)
}

func (r *EquipmentRepository) GetByQRCode(ctx context.Context, code string) (*entities.Equipment, error) {
	return r.getByColumn(ctx, "qr_code", code)
}

func (r *EquipmentRepository) GetBySerialNumber(ctx context.Context, serial string) (*entities.Equipment, error) {
	return r.getByColumn(ctx, "serial_number", serial)
}

func (r *EquipmentRepository) FindByIdentifier(ctx context.Context, identifier string) (*entities.Equipment, error) {
	equipment, err := r.GetByQRCode(ctx, identifier)
	if err != nil || equipment != nil {
		return equipment, err
	}
	return r.GetBySerialNumber(ctx, identifier)
}

func (r *EquipmentRepository) Create(ctx context.Context, equipment *entities.Equipment) error {
	query := `
		INSERT INTO equipments
			(name, equipment_type, category, serial_number, qr_code, image_url, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	return r.storage.QueryRow(ctx, query,
		equipment.Name, equipment.EquipmentType, equipment.Category,
		equipment.SerialNumber, equipment.QRCode, equipment.ImageURL,
		equipment.Description, equipment.IsActive,
	).Scan(&equipment.ID, &equipment.CreatedAt, &equipment.UpdatedAt)
}

func (r *EquipmentRepository) Update(ctx context.Context, equipment *entities.Equipment) error {
	query := `
		UPDATE equipments
		SET name = $1, serial_number = $2, description = $3, is_active = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $5`

	tag, err := r.storage.Exec(ctx, query,
		equipment.Name, equipment.SerialNumber, equipment.Description,
		equipment.IsActive, equipment.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EquipmentRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	tag, err := r.storage.Exec(ctx,
		"UPDATE equipments SET is_active = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		active, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *EquipmentRepository) List(ctx context.Context, limit, offset uint64) ([]entities.Equipment, uint64, error) {
	query, args, err := psql.
		Select(equipmentFields).
		From("equipments").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []entities.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, "SELECT COUNT(*) FROM equipments").Scan(&total); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}
