package partnership

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
)

// Lister lee la colección de parcerias.
type Lister interface {
	List(ctx context.Context, params repository.ListPartnershipsParams) ([]entity.Partnership, error)
}

// CoalescingLister agrupa listados idénticos concurrentes en una sola llamada al backend.
// La llamada compartida no se cancela si el primer solicitante se va; cada solicitante
// deja de esperar cuando su propio contexto termina.
type CoalescingLister struct {
	next  Lister
	group singleflight.Group
}

// NewCoalescingLister envuelve next.
func NewCoalescingLister(next Lister) *CoalescingLister {
	return &CoalescingLister{next: next}
}

// List implementa Lister.
func (l *CoalescingLister) List(ctx context.Context, params repository.ListPartnershipsParams) ([]entity.Partnership, error) {
	key := fmt.Sprintf("%q|%q|%d|%d", params.Search, params.Status, params.Page, params.Limit)
	ch := l.group.DoChan(key, func() (any, error) {
		return l.next.List(context.WithoutCancel(ctx), params)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		items := res.Val.([]entity.Partnership)
		// cada solicitante recibe su propia copia
		out := make([]entity.Partnership, len(items))
		copy(out, items)
		return out, nil
	}
}
