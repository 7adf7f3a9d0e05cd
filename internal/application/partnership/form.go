package partnership

import (
	"context"
	"sync"

	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// ListPath vista a la que se vuelve después de crear una parceria.
const ListPath = "/parcerias"

type creator interface {
	Execute(ctx context.Context, actor string, in dto.CreatePartnershipRequest) (*entity.Partnership, error)
}

// SubmitResult resultado exitoso de un envío del formulario.
type SubmitResult struct {
	Partnership *entity.Partnership
	RedirectTo  string
}

// CreateForm estado del formulario "Nova Parceria": loading y el mensaje de error visible.
// Mientras hay un envío en curso el formulario no acepta otro.
type CreateForm struct {
	uc creator

	mu           sync.Mutex
	loading      bool
	errorMessage string
}

// NewCreateForm construye el formulario sobre el caso de uso de creación.
func NewCreateForm(uc creator) *CreateForm {
	return &CreateForm{uc: uc}
}

// Submit envía el formulario. loading vuelve a false en cualquier salida.
// Ante una falla el mensaje queda en ErrorMessage y el formulario sigue editable.
func (f *CreateForm) Submit(ctx context.Context, actor string, in dto.CreatePartnershipRequest) (*SubmitResult, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.loading = true
	f.errorMessage = ""
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	p, err := f.uc.Execute(ctx, actor, in)
	if err != nil {
		f.mu.Lock()
		f.errorMessage = UserMessage(err)
		f.mu.Unlock()
		return nil, err
	}
	return &SubmitResult{Partnership: p, RedirectTo: ListPath}, nil
}

// Loading indica si hay un envío en curso.
func (f *CreateForm) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// ErrorMessage último mensaje de error, vacío si el último envío fue exitoso.
func (f *CreateForm) ErrorMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorMessage
}

// FormRegistry mantiene un formulario por operador, de modo que un segundo envío del mismo
// operador mientras el primero sigue en curso sea rechazado.
type FormRegistry struct {
	uc    creator
	mu    sync.Mutex
	forms map[string]*CreateForm
}

// NewFormRegistry construye el registro.
func NewFormRegistry(uc creator) *FormRegistry {
	return &FormRegistry{uc: uc, forms: make(map[string]*CreateForm)}
}

// For devuelve el formulario del operador, creándolo si no existe.
func (r *FormRegistry) For(actor string) *CreateForm {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.forms[actor]
	if !ok {
		f = NewCreateForm(r.uc)
		r.forms[actor] = f
	}
	return f
}
