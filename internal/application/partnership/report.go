package partnership

import (
	"context"
	"time"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// Report contenido del relatorio de parcerias: la vista filtrada y los contadores de la colección.
type Report struct {
	GeneratedAt  time.Time
	SearchTerm   string
	StatusFilter string
	Stats        Stats
	Items        []entity.Partnership
}

// ReportGenerator genera el documento del relatorio (implementado en infrastructure/pdf).
type ReportGenerator interface {
	GenerateReport(ctx context.Context, r Report) ([]byte, error)
}

// NewReport arma el relatorio a partir de una vista del listado.
func NewReport(v View, now time.Time) Report {
	return Report{
		GeneratedAt:  now,
		SearchTerm:   v.SearchTerm,
		StatusFilter: v.StatusFilter,
		Stats:        v.Stats,
		Items:        v.Filtered,
	}
}
