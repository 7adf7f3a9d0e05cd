package repository

import (
	"context"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// AuditRepository define el puerto de persistencia de la bitácora.
type AuditRepository interface {
	Record(ctx context.Context, event *entity.AuditEvent) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditEvent, error)
}
