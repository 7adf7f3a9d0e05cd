package partnership

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// StatusFilterAll deja pasar todos los estados.
const StatusFilterAll = "all"

// Criteria filtros de la vista de listado.
type Criteria struct {
	SearchTerm   string
	StatusFilter string
}

// Filter aplica los filtros en memoria. SearchTerm busca como subcadena, sin distinguir
// mayúsculas, en el nombre de la OSC o de la loja. StatusFilter "all" (o vacío) no filtra;
// cualquier otro valor se compara exacto sin distinguir mayúsculas.
func Filter(items []entity.Partnership, c Criteria) []entity.Partnership {
	folder := cases.Fold()
	term := folder.String(c.SearchTerm)
	status := strings.TrimSpace(c.StatusFilter)
	filterStatus := status != "" && !strings.EqualFold(status, StatusFilterAll)

	out := make([]entity.Partnership, 0, len(items))
	for _, p := range items {
		if term != "" &&
			!strings.Contains(folder.String(p.OSC), term) &&
			!strings.Contains(folder.String(p.Loja), term) {
			continue
		}
		if filterStatus && !strings.EqualFold(string(p.Status), status) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Stats contadores por estado.
type Stats struct {
	Ativas    int
	Inativas  int
	Pendentes int
	Total     int
}

// ComputeStats cuenta la colección completa (no la filtrada).
func ComputeStats(items []entity.Partnership) Stats {
	s := Stats{Total: len(items)}
	for _, p := range items {
		switch entity.PartnershipStatus(strings.ToLower(string(p.Status))) {
		case entity.StatusAtiva:
			s.Ativas++
		case entity.StatusInativa:
			s.Inativas++
		case entity.StatusPendente:
			s.Pendentes++
		}
	}
	return s
}
