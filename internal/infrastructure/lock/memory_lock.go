package lock

import (
	"context"
	"sync"

	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
)

var _ partnership.RowLock = (*MemoryRowLock)(nil)

// MemoryRowLock candado de proceso, usado cuando no hay Redis configurado.
type MemoryRowLock struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

// NewMemoryRowLock construye el candado vacío.
func NewMemoryRowLock() *MemoryRowLock {
	return &MemoryRowLock{held: make(map[int64]struct{})}
}

// TryAcquire toma el candado de la parceria si está libre. release es idempotente.
func (l *MemoryRowLock) TryAcquire(_ context.Context, partnershipID int64) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[partnershipID]; busy {
		return nil, false, nil
	}
	l.held[partnershipID] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, partnershipID)
			l.mu.Unlock()
		})
	}, true, nil
}
