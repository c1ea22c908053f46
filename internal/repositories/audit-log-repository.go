package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"equipment-access/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditLogFilter narrows the audit trail query. Nil fields are ignored.
type AuditLogFilter struct {
	Action     *string
	EntityType *string
	UserID     *uint64
	From       *time.Time
	To         *time.Time
}

type AuditLogRepositoryInterface interface {
	Create(ctx context.Context, log *entities.AuditLog) error
	List(ctx context.Context, filter AuditLogFilter, limit, offset uint64) ([]entities.AuditLog, uint64, error)
}

type AuditLogRepository struct {
	storage *pgxpool.Pool
}

func NewAuditLogRepository(storage *pgxpool.Pool) AuditLogRepositoryInterface {
	return &AuditLogRepository{storage: storage}
}

func (r *AuditLogRepository) Create(ctx context.Context, log *entities.AuditLog) error {
	var details []byte
	if log.Details != nil {
		var err error
		details, err = json.Marshal(log.Details)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, details, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.storage.QueryRow(ctx, query,
		log.UserID, log.Action, log.EntityType, log.EntityID,
		details, log.IPAddress, log.UserAgent,
	).Scan(&log.ID, &log.CreatedAt)
}

func (r *AuditLogRepository) List(ctx context.Context, filter AuditLogFilter, limit, offset uint64) ([]entities.AuditLog, uint64, error) {
	cond := sq.And{}
	if filter.Action != nil {
		cond = append(cond, sq.Eq{"action": *filter.Action})
	}
	if filter.EntityType != nil {
		cond = append(cond, sq.Eq{"entity_type": *filter.EntityType})
	}
	if filter.UserID != nil {
		cond = append(cond, sq.Eq{"user_id": *filter.UserID})
	}
	if filter.From != nil {
		cond = append(cond, sq.GtOrEq{"created_at": *filter.From})
	}
	if filter.To != nil {
		cond = append(cond, sq.LtOrEq{"created_at": *filter.To})
	}

	builder := psql.
		Select("id, user_id, action, entity_type, entity_id, details, ip_address, user_agent, created_at").
		From("audit_logs").
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		Offset(offset)
	countBuilder := psql.Select("COUNT(*)").From("audit_logs")
	if len(cond) > 0 {
		builder = builder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var logs []entities.AuditLog
	for rows.Next() {
		var l entities.AuditLog
		var userID, entityID sql.NullInt64
		var details []byte
		var ip, agent sql.NullString

		err := rows.Scan(&l.ID, &userID, &l.Action, &l.EntityType, &entityID, &details, &ip, &agent, &l.CreatedAt)
		if err != nil {
			return nil, 0, err
		}
		if userID.Valid {
			v := uint64(userID.Int64)
			l.UserID = &v
		}
		if entityID.Valid {
			v := uint64(entityID.Int64)
			l.EntityID = &v
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &l.Details); err != nil {
				return nil, 0, err
			}
		}
		if ip.Valid {
			l.IPAddress = &ip.String
		}
		if agent.Valid {
			l.UserAgent = &agent.String
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
