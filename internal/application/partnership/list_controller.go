package partnership

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
	"github.com/jhoicas/parcerias-admin/pkg/logger"
	"github.com/jhoicas/parcerias-admin/pkg/metrics"
)

// Updater actualiza una parceria en el backend.
type Updater interface {
	Update(ctx context.Context, id int64, in repository.UpdatePartnershipInput) (*entity.Partnership, error)
}

// RowLock impide dos cambios de estado simultáneos sobre la misma parceria.
// release siempre es no-nil cuando ok es true.
type RowLock interface {
	TryAcquire(ctx context.Context, partnershipID int64) (release func(), ok bool, err error)
}

// ListDeps dependencias compartidas entre controladores de listado.
type ListDeps struct {
	Lister Lister
	// Reader lectura directa usada tras tomar el candado de un toggle. Nil usa Lister.
	Reader  Lister
	Updater Updater
	Locks   RowLock
	Audit   *audit.Recorder
	Metrics *metrics.Metrics
	Logger  *logger.Logger
}

// View estado observable del listado.
type View struct {
	Partnerships []entity.Partnership // colección completa
	Filtered     []entity.Partnership
	Stats        Stats
	Loading      bool
	Error        string
	SearchTerm   string
	StatusFilter string
}

// ListController estado de la pantalla de parcerias: colección, loading, error, filtros y la
// vista filtrada derivada. Cada cambio de filtros o de colección recalcula la vista de forma
// síncrona y notifica a los suscriptores.
type ListController struct {
	deps ListDeps
	log  *logger.Logger

	mu           sync.Mutex
	partnerships []entity.Partnership
	filtered     []entity.Partnership
	loading      bool
	err          string
	searchTerm   string
	statusFilter string
	subs         map[int]func(View)
	nextSub      int
}

// NewListController construye un controlador con filtros por defecto (sin búsqueda, estado "all").
func NewListController(deps ListDeps) *ListController {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &ListController{
		deps:         deps,
		log:          log,
		filtered:     []entity.Partnership{},
		statusFilter: StatusFilterAll,
		subs:         make(map[int]func(View)),
	}
}

// Subscribe registra un listener que recibe la vista después de cada cambio.
// La función devuelta cancela la suscripción.
func (c *ListController) Subscribe(fn func(View)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Snapshot devuelve una copia del estado actual.
func (c *ListController) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// SetSearchTerm cambia el término de búsqueda y recalcula la vista.
func (c *ListController) SetSearchTerm(term string) {
	c.mutate(func() { c.searchTerm = term })
}

// SetStatusFilter cambia el filtro de estado ("all", "ativa", "inativa", "pendente").
func (c *ListController) SetStatusFilter(status string) {
	c.mutate(func() { c.statusFilter = status })
}

// Fetch pide la colección completa. Durante la llamada Loading es true. Si falla, el error
// queda en el estado y la colección anterior no cambia; si no, se reemplaza completa.
func (c *ListController) Fetch(ctx context.Context) error {
	return c.fetchFrom(ctx, c.deps.Lister)
}

func (c *ListController) fetchFrom(ctx context.Context, lister Lister) error {
	c.mutate(func() {
		c.loading = true
		c.err = ""
	})

	items, err := lister.List(ctx, repository.ListPartnershipsParams{})

	c.mutate(func() {
		c.loading = false
		if err != nil {
			c.err = err.Error()
			return
		}
		c.partnerships = items
	})
	if err != nil {
		c.log.Error().Err(err).Msg("erro ao carregar parcerias")
	}
	return err
}

// Find busca una parceria de la colección actual por ID.
func (c *ListController) Find(id int64) (entity.Partnership, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.partnerships {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Partnership{}, false
}

// ToggleStatus alterna ativa ⇄ inativa. Con cualquier otro estado no hace nada y devuelve
// false sin llamar al backend. Con el candado tomado vuelve a leer la fila y decide sobre el
// estado vigente; el update lleva storeId y oscId de esa lectura. Si tiene éxito se vuelve a
// pedir la colección completa (sin actualización optimista).
func (c *ListController) ToggleStatus(ctx context.Context, actor string, p entity.Partnership) (bool, error) {
	if _, ok := p.Status.Toggled(); !ok {
		c.deps.Metrics.IncToggle("noop")
		return false, nil
	}

	release, acquired, err := c.deps.Locks.TryAcquire(ctx, p.ID)
	if err != nil {
		c.deps.Metrics.IncToggle("failed")
		return false, fmt.Errorf("bloquear parceria %d: %w", p.ID, err)
	}
	if !acquired {
		c.deps.Metrics.IncToggle("busy")
		return false, ErrToggleInFlight
	}
	defer release()

	current, err := c.reread(ctx, p.ID)
	if err != nil {
		c.deps.Metrics.IncToggle("failed")
		return false, err
	}
	next, ok := current.Status.Toggled()
	if !ok {
		c.deps.Metrics.IncToggle("noop")
		return false, nil
	}

	_, err = c.deps.Updater.Update(ctx, current.ID, repository.UpdatePartnershipInput{
		Status:  next,
		StoreID: current.StoreID,
		OSCID:   current.OSCID,
	})
	if err != nil {
		c.deps.Metrics.IncToggle("failed")
		c.log.Error().Err(err).Int64("partnership_id", current.ID).Msg("erro ao atualizar status da parceria")
		return false, err
	}

	c.deps.Metrics.IncToggle("changed")
	c.deps.Audit.Record(ctx, &entity.AuditEvent{
		Action:        entity.AuditPartnershipStatusToggled,
		PartnershipID: current.ID,
		Actor:         actor,
		Detail:        map[string]any{"from": string(current.Status), "to": string(next)},
	})

	// el cambio ya se aplicó; una falla del refetch queda en el estado del listado
	_ = c.Fetch(ctx)
	return true, nil
}

// reread trae la colección sin agrupar con otras lecturas y devuelve la fila id.
func (c *ListController) reread(ctx context.Context, id int64) (entity.Partnership, error) {
	reader := c.deps.Reader
	if reader == nil {
		reader = c.deps.Lister
	}
	if err := c.fetchFrom(ctx, reader); err != nil {
		return entity.Partnership{}, err
	}
	current, ok := c.Find(id)
	if !ok {
		return entity.Partnership{}, fmt.Errorf("parceria %d: %w", id, domain.ErrNotFound)
	}
	return current, nil
}

// mutate aplica fn bajo el lock, recalcula la vista derivada y notifica fuera del lock.
func (c *ListController) mutate(fn func()) {
	c.mu.Lock()
	fn()
	c.filtered = Filter(c.partnerships, Criteria{SearchTerm: c.searchTerm, StatusFilter: c.statusFilter})
	view := c.viewLocked()
	listeners := make([]func(View), 0, len(c.subs))
	for _, l := range c.subs {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l(view)
	}
}

func (c *ListController) viewLocked() View {
	all := make([]entity.Partnership, len(c.partnerships))
	copy(all, c.partnerships)
	filtered := make([]entity.Partnership, len(c.filtered))
	copy(filtered, c.filtered)
	return View{
		Partnerships: all,
		Filtered:     filtered,
		Stats:        ComputeStats(all),
		Loading:      c.loading,
		Error:        c.err,
		SearchTerm:   c.searchTerm,
		StatusFilter: c.statusFilter,
	}
}
