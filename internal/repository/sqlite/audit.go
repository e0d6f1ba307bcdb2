package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/HafsaFatima26/hospital-management-system/internal/model"
	"github.com/HafsaFatima26/hospital-management-system/internal/repository"
)

type auditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, entry *model.AuditLog) error {
	query := `
        INSERT INTO audit_logs (username, role, action, detail, timestamp)
        VALUES (?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		entry.Username,
		entry.Role,
		entry.Action,
		entry.Detail,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read audit entry id: %w", err)
	}
	entry.ID = id
	return nil
}

func (r *auditRepository) List(ctx context.Context, filter model.AuditFilter) ([]*model.AuditLog, error) {
	query := `SELECT * FROM audit_logs WHERE 1=1`
	var args []interface{}

	if filter.Action != "" {
		query += " AND action = ?"
		args = append(args, filter.Action)
	}
	if filter.Role != "" {
		query += " AND role = ?"
		args = append(args, filter.Role)
	}

	query += " ORDER BY id"

	var logs []*model.AuditLog
	if err := r.db.SelectContext(ctx, &logs, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
