package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"":                          "-",
		"2024-03-01T10:00:00.000Z":  "01/03/2024",
		"2024-03-01T23:30:00-03:00": "01/03/2024",
		"2024-12-31T08:15:00":       "31/12/2024",
		"2024-12-31 08:15:00":       "31/12/2024",
		"2024-07-04":                "04/07/2024",
		"ontem":                     "ontem",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatDate(in), "entrada %q", in)
	}
}

func TestStatusFilterLabel(t *testing.T) {
	assert.Equal(t, "Todos", statusFilterLabel(""))
	assert.Equal(t, "Todos", statusFilterLabel(partnership.StatusFilterAll))
	assert.Equal(t, "Ativa", statusFilterLabel("ativa"))
	assert.Equal(t, "Inativa", statusFilterLabel("inativa"))
	assert.Equal(t, "Pendente", statusFilterLabel("pendente"))
}

func TestGenerateReport_GeneraPDF(t *testing.T) {
	items := []entity.Partnership{
		{ID: 1, OSC: "Casa Verde", Loja: "Loja Centro", DataInicio: "2024-03-01T10:00:00.000Z", Status: entity.StatusAtiva, Campanhas: 3},
		{ID: 2, OSC: "Lar Feliz", Loja: "Loja Norte", Status: entity.StatusInativa},
		{ID: 3, OSC: "Instituto Sol", Loja: "Casa & Cia", Status: entity.StatusPendente},
	}
	report := partnership.Report{
		GeneratedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		SearchTerm:   "casa",
		StatusFilter: partnership.StatusFilterAll,
		Stats:        partnership.ComputeStats(items),
		Items:        items,
	}

	out, err := NewMarotoPDFGenerator().GenerateReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento empieza con la firma PDF")
}

func TestGenerateReport_SinItems(t *testing.T) {
	out, err := NewMarotoPDFGenerator().GenerateReport(context.Background(), partnership.Report{
		GeneratedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
