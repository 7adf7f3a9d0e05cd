package partnership_test

import (
	"context"
	"sync"

	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
)

// fakeBackend implementa los puertos de parcerias y directorios en memoria.
type fakeBackend struct {
	mu sync.Mutex

	items     []entity.Partnership
	listErr   error
	listCalls int
	listGate  chan struct{} // si no es nil, List espera a que se cierre

	updateErr error
	updates   []updateCall
	// listErrAfterUpdate pasa a ser listErr después de un update exitoso
	listErrAfterUpdate error

	oscs       []entity.OSC
	oscErr     error
	oscQueries []string

	stores     []entity.Store
	storeErr   error
	storeCodes []int64

	campaign      *entity.Campaign
	campaignErr   error
	campaignCalls int

	created   *entity.Partnership
	createErr error
	creates   []repository.CreatePartnershipInput
}

type updateCall struct {
	ID    int64
	Input repository.UpdatePartnershipInput
}

func (f *fakeBackend) List(ctx context.Context, _ repository.ListPartnershipsParams) ([]entity.Partnership, error) {
	f.mu.Lock()
	f.listCalls++
	gate := f.listGate
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Partnership, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeBackend) Create(_ context.Context, in repository.CreatePartnershipInput) (*entity.Partnership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, in)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakeBackend) Update(_ context.Context, id int64, in repository.UpdatePartnershipInput) (*entity.Partnership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, updateCall{ID: id, Input: in})
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if f.listErrAfterUpdate != nil {
		f.listErr = f.listErrAfterUpdate
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = in.Status
			p := f.items[i]
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackend) FindOSCsByCNPJ(_ context.Context, cnpj string) ([]entity.OSC, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oscQueries = append(f.oscQueries, cnpj)
	return f.oscs, f.oscErr
}

func (f *fakeBackend) FindStoresByCode(_ context.Context, code int64) ([]entity.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.storeCodes = append(f.storeCodes, code)
	return f.stores, f.storeErr
}

func (f *fakeBackend) GetCampaign(_ context.Context, _ int64) (*entity.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaignCalls++
	return f.campaign, f.campaignErr
}

func (f *fakeBackend) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.oscQueries) + len(f.storeCodes) + f.campaignCalls + len(f.creates)
}

// setStatus cambia el estado de una fila como lo haría otra réplica.
func (f *fakeBackend) setStatus(id int64, status entity.PartnershipStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
		}
	}
}

func (f *fakeBackend) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// fakeAuditRepo guarda los eventos registrados.
type fakeAuditRepo struct {
	mu     sync.Mutex
	events []*entity.AuditEvent
}

func (r *fakeAuditRepo) Record(_ context.Context, e *entity.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *fakeAuditRepo) List(_ context.Context, _, _ int) ([]*entity.AuditEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.events, nil
}

func (r *fakeAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Action)
	}
	return out
}

// busyLock simula una fila con un toggle en curso.
type busyLock struct{}

func (busyLock) TryAcquire(context.Context, int64) (func(), bool, error) { return nil, false, nil }

// publicError error del backend con mensaje apto para el operador.
type publicError struct{ msg string }

func (e *publicError) Error() string         { return "backend: " + e.msg }
func (e *publicError) PublicMessage() string { return e.msg }

func sampleCollection() []entity.Partnership {
	return []entity.Partnership{
		{ID: 1, OSC: "Casa Verde", Loja: "Loja Centro", Status: entity.StatusAtiva, StoreID: 10, OSCID: 100, Campanhas: 3},
		{ID: 2, OSC: "Lar Feliz", Loja: "Loja Norte", Status: entity.StatusInativa, StoreID: 11, OSCID: 101},
		{ID: 3, OSC: "Instituto Sol", Loja: "Casa & Cia", Status: entity.StatusPendente, StoreID: 12, OSCID: 102},
	}
}
