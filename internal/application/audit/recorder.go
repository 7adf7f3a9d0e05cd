// Package audit registra y lista la bitácora de acciones del painel.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
	"github.com/jhoicas/parcerias-admin/pkg/logger"
)

// Recorder escribe eventos en la bitácora sin interrumpir el flujo que los origina:
// una falla de persistencia sólo se registra en el log. Un *Recorder nil o sin repositorio
// no hace nada.
type Recorder struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewRecorder construye el recorder. repo puede ser nil (bitácora desactivada).
func NewRecorder(repo repository.AuditRepository, log *logger.Logger) *Recorder {
	if log == nil {
		log = logger.Nop()
	}
	return &Recorder{repo: repo, log: log, now: time.Now}
}

// Record completa ID y fecha del evento y lo persiste.
func (r *Recorder) Record(ctx context.Context, event *entity.AuditEvent) {
	if r == nil || r.repo == nil || event == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = r.now().UTC()
	}
	if err := r.repo.Record(ctx, event); err != nil {
		r.log.Warn().Err(err).Str("action", event.Action).Msg("no se pudo registrar evento de auditoría")
	}
}

// UseCase consulta la bitácora.
type UseCase struct {
	repo repository.AuditRepository
}

// NewUseCase construye el caso de uso. Con repo nil la bitácora siempre está vacía.
func NewUseCase(repo repository.AuditRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List lista eventos recientes con paginación.
func (uc *UseCase) List(ctx context.Context, limit, offset int) (*dto.AuditListResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out := &dto.AuditListResponse{
		Items: []dto.AuditEventResponse{},
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	if uc.repo == nil {
		return out, nil
	}
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, e := range list {
		out.Items = append(out.Items, dto.AuditEventResponse{
			ID:            e.ID,
			Action:        e.Action,
			PartnershipID: e.PartnershipID,
			Actor:         e.Actor,
			Detail:        e.Detail,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out, nil
}
