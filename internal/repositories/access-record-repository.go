package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"equipment-access/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accessRecordFields = "id, equipment_id, user_id, access_type, status, entry_time, exit_time, expected_exit_time, notes, created_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ActiveRecordItem is an active access record joined with equipment and
// user names for the dashboard view.
type ActiveRecordItem struct {
	entities.AccessRecord
	EquipmentName   string
	EquipmentQRCode sql.NullString
	EquipmentSerial sql.NullString
	UserFullName    string
}

// AccessRecordRepositoryInterface is the persistence port of the access
// lifecycle. The mutating methods come in transactional variants; the
// lifecycle service is the only writer of access_records.
type AccessRecordRepositoryInterface interface {
	CreateInTx(ctx context.Context, tx pgx.Tx, record *entities.AccessRecord) error
	GetByID(ctx context.Context, id uint64) (*entities.AccessRecord, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AccessRecord, error)
	GetActiveByEquipment(ctx context.Context, equipmentID uint64) (*entities.AccessRecord, error)
	GetActiveByEquipmentForUpdate(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.AccessRecord, error)
	GetActiveAll(ctx context.Context) ([]ActiveRecordItem, error)
	GetExpiredCandidatesForUpdate(ctx context.Context, tx pgx.Tx, now time.Time) ([]entities.AccessRecord, error)
	UpdateInTx(ctx context.Context, tx pgx.Tx, record *entities.AccessRecord) error
	ListByEquipment(ctx context.Context, equipmentID uint64, limit, offset uint64) ([]entities.AccessRecord, uint64, error)
	ListByUser(ctx context.Context, userID uint64, limit, offset uint64) ([]entities.AccessRecord, uint64, error)
	ListByDateRange(ctx context.Context, from, to time.Time, limit, offset uint64) ([]entities.AccessRecord, uint64, error)
}

type AccessRecordRepository struct {
	storage *pgxpool.Pool
}

func NewAccessRecordRepository(storage *pgxpool.Pool) AccessRecordRepositoryInterface {
	return &AccessRecordRepository{storage: storage}
}

func scanAccessRecord(row pgx.Row) (*entities.AccessRecord, error) {
	var r entities.AccessRecord
	var exitTime sql.NullTime
	var notes sql.NullString

	err := row.Scan(
		&r.ID, &r.EquipmentID, &r.UserID, &r.AccessType, &r.Status,
		&r.EntryTime, &exitTime, &r.ExpectedExitTime, &notes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if exitTime.Valid {
		r.ExitTime = &exitTime.Time
	}
	if notes.Valid {
		r.Notes = &notes.String
	}
	return &r, nil
}

func collectAccessRecords(rows pgx.Rows) ([]entities.AccessRecord, error) {
	defer rows.Close()
	var records []entities.AccessRecord
	for rows.Next() {
		r, err := scanAccessRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *r)
	}
	return records, rows.Err()
}

func (r *AccessRecordRepository) CreateInTx(ctx context.Context, tx pgx.Tx, record *entities.AccessRecord) error {
	query := `
		INSERT INTO access_records
			(equipment_id, user_id, access_type, status, entry_time, exit_time, expected_exit_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	return tx.QueryRow(ctx, query,
		record.EquipmentID, record.UserID, record.AccessType, record.Status,
		record.EntryTime, record.ExitTime, record.ExpectedExitTime, record.Notes,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *AccessRecordRepository) getByID(ctx context.Context, q querier, id uint64, forUpdate bool) (*entities.AccessRecord, error) {
	query := "SELECT " + accessRecordFields + " FROM access_records WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	record, err := scanAccessRecord(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return record, err
}

func (r *AccessRecordRepository) GetByID(ctx context.Context, id uint64) (*entities.AccessRecord, error) {
	return r.getByID(ctx, r.storage, id, false)
}

func (r *AccessRecordRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uint64) (*entities.AccessRecord, error) {
	return r.getByID(ctx, tx, id, true)
}

func (r *AccessRecordRepository) getActiveByEquipment(ctx context.Context, q querier, equipmentID uint64, forUpdate bool) (*entities.AccessRecord, error) {
	query := "SELECT " + accessRecordFields + " FROM access_records WHERE equipment_id = $1 AND status = $2"
	if forUpdate {
		query += " FOR UPDATE"
	}

	record, err := scanAccessRecord(q.QueryRow(ctx, query, equipmentID, entities.AccessStatusActive))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return record, err
}

func (r *AccessRecordRepository) GetActiveByEquipment(ctx context.Context, equipmentID uint64) (*entities.AccessRecord, error) {
	return r.getActiveByEquipment(ctx, r.storage, equipmentID, false)
}

// GetActiveByEquipmentForUpdate locks the active row (if any) so a
// concurrent entry or exit for the same equipment serializes behind it.
func (r *AccessRecordRepository) GetActiveByEquipmentForUpdate(ctx context.Context, tx pgx.Tx, equipmentID uint64) (*entities.AccessRecord, error) {
	return r.getActiveByEquipment(ctx, tx, equipmentID, true)
}

func (r *AccessRecordRepository) GetActiveAll(ctx context.Context) ([]ActiveRecordItem, error) {
	query := `
		SELECT ar.id, ar.equipment_id, ar.user_id, ar.access_type, ar.status,
		       ar.entry_time, ar.exit_time, ar.expected_exit_time, ar.notes, ar.created_at,
		       e.name, e.qr_code, e.serial_number,
		       u.full_name
		FROM access_records ar
		JOIN equipments e ON e.id = ar.equipment_id
		JOIN users u ON u.id = ar.user_id
		WHERE ar.status = $1
		ORDER BY ar.entry_time DESC`

	rows, err := r.storage.Query(ctx, query, entities.AccessStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ActiveRecordItem
	for rows.Next() {
		var item ActiveRecordItem
		var exitTime sql.NullTime
		var notes sql.NullString
		err := rows.Scan(
			&item.ID, &item.EquipmentID, &item.UserID, &item.AccessType, &item.Status,
			&item.EntryTime, &exitTime, &item.ExpectedExitTime, &notes, &item.CreatedAt,
			&item.EquipmentName, &item.EquipmentQRCode, &item.EquipmentSerial,
			&item.UserFullName,
		)
		if err != nil {
			return nil, err
		}
		if exitTime.Valid {
			item.ExitTime = &exitTime.Time
		}
		if notes.Valid {
			item.Notes = &notes.String
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetExpiredCandidatesForUpdate returns every open record past its
// expected exit: active ones still to be flagged plus already expired
// ones. Rows are locked so the caller can transition them safely.
func (r *AccessRecordRepository) GetExpiredCandidatesForUpdate(ctx context.Context, tx pgx.Tx, now time.Time) ([]entities.AccessRecord, error) {
	query := `
		SELECT ` + accessRecordFields + `
		FROM access_records
		WHERE status IN ($1, $2)
		  AND expected_exit_time < $3
		  AND exit_time IS NULL
		ORDER BY expected_exit_time ASC
		FOR UPDATE`

	rows, err := tx.Query(ctx, query, entities.AccessStatusActive, entities.AccessStatusExpired, now)
	if err != nil {
		return nil, err
	}
	return collectAccessRecords(rows)
}

func (r *AccessRecordRepository) UpdateInTx(ctx context.Context, tx pgx.Tx, record *entities.AccessRecord) error {
	query := `
		UPDATE access_records
		SET status = $1, exit_time = $2, notes = $3
		WHERE id = $4`

	tag, err := tx.Exec(ctx, query, record.Status, record.ExitTime, record.Notes, record.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AccessRecordRepository) listWhere(ctx context.Context, cond sq.Sqlizer, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	query, args, err := psql.
		Select(accessRecordFields).
		From("access_records").
		Where(cond).
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
	records, err := collectAccessRecords(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := psql.
		Select("COUNT(*)").
		From("access_records").
		Where(cond).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *AccessRecordRepository) ListByEquipment(ctx context.Context, equipmentID uint64, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	return r.listWhere(ctx, sq.Eq{"equipment_id": equipmentID}, limit, offset)
}

func (r *AccessRecordRepository) ListByUser(ctx context.Context, userID uint64, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	return r.listWhere(ctx, sq.Eq{"user_id": userID}, limit, offset)
}

func (r *AccessRecordRepository) ListByDateRange(ctx context.Context, from, to time.Time, limit, offset uint64) ([]entities.AccessRecord, uint64, error) {
	cond := sq.And{
		sq.GtOrEq{"entry_time": from},
		sq.LtOrEq{"entry_time": to},
	}
	return r.listWhere(ctx, cond, limit, offset)
}
