package partnership_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

func ids(items []entity.Partnership) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	items := sampleCollection()

	cases := []struct {
		name string
		c    partnership.Criteria
		want []int64
	}{
		{"sin filtros", partnership.Criteria{StatusFilter: "all"}, []int64{1, 2, 3}},
		{"estado vacío equivale a all", partnership.Criteria{}, []int64{1, 2, 3}},
		{"búsqueda por OSC sin distinguir mayúsculas", partnership.Criteria{SearchTerm: "casa verde", StatusFilter: "all"}, []int64{1}},
		{"búsqueda también en el nombre de la loja", partnership.Criteria{SearchTerm: "CASA", StatusFilter: "all"}, []int64{1, 3}},
		{"búsqueda más estado", partnership.Criteria{SearchTerm: "casa", StatusFilter: "pendente"}, []int64{3}},
		{"sólo estado", partnership.Criteria{StatusFilter: "inativa"}, []int64{2}},
		{"estado sin distinguir mayúsculas", partnership.Criteria{StatusFilter: "ATIVA"}, []int64{1}},
		{"sin coincidencias", partnership.Criteria{SearchTerm: "Lar Feliz", StatusFilter: "ativa"}, []int64{}},
		{"el término no se recorta", partnership.Criteria{SearchTerm: " Feliz ", StatusFilter: "all"}, []int64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(partnership.Filter(items, tc.c))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFilter_NoModificaLaColeccion(t *testing.T) {
	items := sampleCollection()
	before := sampleCollection()

	_ = partnership.Filter(items, partnership.Criteria{SearchTerm: "casa", StatusFilter: "ativa"})
	assert.Empty(t, cmp.Diff(before, items))
}

func TestComputeStats(t *testing.T) {
	items := append(sampleCollection(), entity.Partnership{ID: 4, Status: entity.StatusAtiva})

	got := partnership.ComputeStats(items)
	assert.Equal(t, partnership.Stats{Ativas: 2, Inativas: 1, Pendentes: 1, Total: 4}, got)
	assert.Equal(t, partnership.Stats{}, partnership.ComputeStats(nil))
}
