package repositories

import (
	"context"
	"time"

	"equipment-access/internal/dto"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepositoryInterface interface {
	AccessByDateRange(ctx context.Context, from, to time.Time, limit, offset uint64) ([]dto.AccessReportRow, uint64, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

func (r *ReportRepository) AccessByDateRange(ctx context.Context, from, to time.Time, limit, offset uint64) ([]dto.AccessReportRow, uint64, error) {
	query := `
		SELECT ar.id, e.name, e.serial_number, e.qr_code, e.category,
		       u.full_name, ar.status, ar.entry_time, ar.exit_time,
		       ar.expected_exit_time, ar.notes
		FROM access_records ar
		JOIN equipments e ON e.id = ar.equipment_id
		JOIN users u ON u.id = ar.user_id
		WHERE ar.entry_time >= $1 AND ar.entry_time <= $2
		ORDER BY ar.entry_time DESC, ar.id DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.storage.Query(ctx, query, from, to, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var report []dto.AccessReportRow
	for rows.Next() {
		var row dto.AccessReportRow
		err := rows.Scan(
			&row.RecordID, &row.EquipmentName, &row.EquipmentSerial, &row.EquipmentQRCode,
			&row.Category, &row.UserFullName, &row.Status, &row.EntryTime,
			&row.ExitTime, &row.ExpectedExitTime, &row.Notes,
		)
		if err != nil {
			return nil, 0, err
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total uint64
	err = r.storage.QueryRow(ctx,
		"SELECT COUNT(*) FROM access_records WHERE entry_time >= $1 AND entry_time <= $2",
		from, to,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	return report, total, nil
}
