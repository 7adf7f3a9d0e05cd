package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

func TestPartnershipStatus_Toggled(t *testing.T) {
	next, ok := entity.StatusAtiva.Toggled()
	assert.True(t, ok)
	assert.Equal(t, entity.StatusInativa, next)

	next, ok = entity.StatusInativa.Toggled()
	assert.True(t, ok)
	assert.Equal(t, entity.StatusAtiva, next)

	next, ok = entity.StatusPendente.Toggled()
	assert.False(t, ok)
	assert.Equal(t, entity.StatusPendente, next)
}

func TestParsePartnershipStatus(t *testing.T) {
	s, err := entity.ParsePartnershipStatus("  ATIVA ")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusAtiva, s)

	_, err = entity.ParsePartnershipStatus("cancelada")
	assert.Error(t, err)
}
