package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// dbtx lo cumplen *pgxpool.Pool y pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// AuditRepo implementación del puerto AuditRepository sobre PostgreSQL.
type AuditRepo struct {
	db dbtx
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(db dbtx) *AuditRepo {
	return &AuditRepo{db: db}
}

// Record inserta un evento. El ID repetido se ignora.
func (r *AuditRepo) Record(ctx context.Context, e *entity.AuditEvent) error {
	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return fmt.Errorf("serializar detail: %w", err)
	}
	query := `
		INSERT INTO partnership_audit_events (id, action, partnership_id, actor, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`
	var partnershipID *int64
	if e.PartnershipID != 0 {
		partnershipID = &e.PartnershipID
	}
	_, err = r.db.Exec(ctx, query, e.ID, e.Action, partnershipID, e.Actor, detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List devuelve los eventos más recientes primero.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditEvent, error) {
	query := `
		SELECT id, action, partnership_id, actor, detail, created_at
		FROM partnership_audit_events
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var list []*entity.AuditEvent
	for rows.Next() {
		var (
			e             entity.AuditEvent
			partnershipID *int64
			detail        []byte
		)
		if err := rows.Scan(&e.ID, &e.Action, &partnershipID, &e.Actor, &detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		if partnershipID != nil {
			e.PartnershipID = *partnershipID
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("decode audit detail %s: %w", e.ID, err)
			}
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return list, nil
}
