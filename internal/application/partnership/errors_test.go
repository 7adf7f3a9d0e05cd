package partnership_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
)

func TestUserMessage(t *testing.T) {
	assert.Empty(t, partnership.UserMessage(nil))
	assert.Equal(t, "Erro ao criar parceria.", partnership.UserMessage(errors.New("boom")))
	assert.Equal(t, "Parceria duplicada.",
		partnership.UserMessage(fmt.Errorf("create: %w", &publicError{msg: "Parceria duplicada."})))
	assert.Equal(t, partnership.ErrSubmitInFlight.Error(), partnership.UserMessage(partnership.ErrSubmitInFlight))
}

func TestKindOf(t *testing.T) {
	_, ok := partnership.KindOf(errors.New("otro"))
	assert.False(t, ok)

	ve := &partnership.ValidationError{Kind: partnership.KindCampaignNotFound, Message: "x"}
	kind, ok := partnership.KindOf(fmt.Errorf("wrap: %w", ve))
	assert.True(t, ok)
	assert.Equal(t, partnership.KindCampaignNotFound, kind)
}
