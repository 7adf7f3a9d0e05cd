package partnership_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/application/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
	"github.com/jhoicas/parcerias-admin/pkg/metrics"
)

// happyBackend responde como el backend para el alta 11.222.333/0001-81 + loja 42 + campanha 3.
func happyBackend() *fakeBackend {
	return &fakeBackend{
		oscs:     []entity.OSC{{ID: 5, CNPJ: "11222333000181", Name: "Casa Verde"}},
		stores:   []entity.Store{{ID: 9, StoreCode: 42, Name: "Loja Centro"}},
		campaign: &entity.Campaign{ID: 3, Name: "Natal"},
		created: &entity.Partnership{
			ID: 77, OSC: "Casa Verde", Loja: "Loja Centro",
			Status: entity.StatusPendente, Campanhas: 3, StoreID: 9, OSCID: 5,
		},
	}
}

func validRequest() dto.CreatePartnershipRequest {
	return dto.CreatePartnershipRequest{OSCCNPJ: "11.222.333/0001-81", StoreCode: "42", CampaignID: "3"}
}

func newCreateUC(b *fakeBackend, auditRepo *fakeAuditRepo, m *metrics.Metrics) *partnership.CreatePartnershipUseCase {
	var repo repository.AuditRepository
	if auditRepo != nil {
		repo = auditRepo
	}
	return partnership.NewCreatePartnershipUseCase(partnership.CreatePartnershipDeps{
		OSCs:         b,
		Stores:       b,
		Campaigns:    b,
		Partnerships: b,
		Audit:        audit.NewRecorder(repo, nil),
		Metrics:      m,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePartnership_FlujoCompleto(t *testing.T) {
	b := happyBackend()
	auditRepo := &fakeAuditRepo{}
	reg := prometheus.NewRegistry()
	uc := newCreateUC(b, auditRepo, metrics.New(reg))

	p, err := uc.Execute(context.Background(), "op@test", validRequest())
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(77), p.ID)

	// la búsqueda de OSC va con los dígitos, sin máscara
	assert.Equal(t, []string{"11222333000181"}, b.oscQueries)
	assert.Equal(t, []int64{42}, b.storeCodes)
	require.Len(t, b.creates, 1)
	assert.Equal(t, repository.CreatePartnershipInput{
		OSCID:      5,
		StoreID:    9,
		CampaignID: 3,
		Status:     entity.StatusPendente,
	}, b.creates[0])

	assert.Equal(t, []string{entity.AuditPartnershipCreated}, auditRepo.actions())
	assert.Equal(t, int64(77), auditRepo.events[0].PartnershipID)
	assert.Equal(t, "op@test", auditRepo.events[0].Actor)

	n, err := testutil.GatherAndCount(reg, "partnership_creations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreatePartnership_CNPJSinMascaraYEspacios(t *testing.T) {
	b := happyBackend()
	uc := newCreateUC(b, nil, nil)

	_, err := uc.Execute(context.Background(), "op", dto.CreatePartnershipRequest{
		OSCCNPJ: "  11222333000181 ", StoreCode: " 42", CampaignID: "3 ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"11222333000181"}, b.oscQueries)
}

// ──────────────────────────────────────────────────────────────────────────────
// Etapas locales: no deben tocar la red
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePartnership_ValidacionLocal(t *testing.T) {
	cases := []struct {
		name    string
		in      dto.CreatePartnershipRequest
		kind    partnership.ErrorKind
		field   string
		message string
	}{
		{
			name:    "todos vacíos",
			in:      dto.CreatePartnershipRequest{},
			kind:    partnership.KindMissingField,
			field:   partnership.FieldOSCCNPJ,
			message: "Preencha todos os campos obrigatórios.",
		},
		{
			name:    "loja sólo espacios",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "   ", CampaignID: "3"},
			kind:    partnership.KindMissingField,
			field:   partnership.FieldStoreCode,
			message: "Preencha todos os campos obrigatórios.",
		},
		{
			name:    "campanha vacía",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "42"},
			kind:    partnership.KindMissingField,
			field:   partnership.FieldCampaignID,
			message: "Preencha todos os campos obrigatórios.",
		},
		{
			name:    "código de loja no numérico",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "abc", CampaignID: "3"},
			kind:    partnership.KindInvalidNumber,
			field:   partnership.FieldStoreCode,
			message: "Código da Loja deve ser um número válido.",
		},
		{
			name:    "código de loja con sufijo",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "42x", CampaignID: "3"},
			kind:    partnership.KindInvalidNumber,
			field:   partnership.FieldStoreCode,
			message: "Código da Loja deve ser um número válido.",
		},
		{
			name:    "código de loja decimal",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "42.0", CampaignID: "3"},
			kind:    partnership.KindInvalidNumber,
			field:   partnership.FieldStoreCode,
			message: "Código da Loja deve ser um número válido.",
		},
		{
			name:    "código de loja en notación exponencial",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "1e2", CampaignID: "3"},
			kind:    partnership.KindInvalidNumber,
			field:   partnership.FieldStoreCode,
			message: "Código da Loja deve ser um número válido.",
		},
		{
			name:    "ID de campanha decimal",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "42", CampaignID: "3.0"},
			kind:    partnership.KindInvalidNumber,
			field:   partnership.FieldCampaignID,
			message: "ID da Campanha deve ser um número válido.",
		},
		{
			name:    "ID de campanha no numérico",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11222333000181", StoreCode: "42", CampaignID: "três"},
			kind:    partnership.KindInvalidNumber,
			field:   partnership.FieldCampaignID,
			message: "ID da Campanha deve ser um número válido.",
		},
		{
			name:    "CNPJ con 13 dígitos",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "11.222.333/0001-8", StoreCode: "42", CampaignID: "3"},
			kind:    partnership.KindInvalidCNPJLength,
			field:   partnership.FieldOSCCNPJ,
			message: "CNPJ da OSC deve conter 14 dígitos.",
		},
		{
			name:    "CNPJ con 15 dígitos",
			in:      dto.CreatePartnershipRequest{OSCCNPJ: "112223330001810", StoreCode: "42", CampaignID: "3"},
			kind:    partnership.KindInvalidCNPJLength,
			field:   partnership.FieldOSCCNPJ,
			message: "CNPJ da OSC deve conter 14 dígitos.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := happyBackend()
			auditRepo := &fakeAuditRepo{}
			uc := newCreateUC(b, auditRepo, nil)

			p, err := uc.Execute(context.Background(), "op", tc.in)
			require.Error(t, err)
			assert.Nil(t, p)

			var ve *partnership.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.kind, ve.Kind)
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, tc.message, ve.Message)
			assert.Equal(t, tc.message, partnership.UserMessage(err))

			assert.Zero(t, b.networkCalls(), "las etapas locales no llaman al backend")
			assert.Equal(t, []string{entity.AuditPartnershipCreateRejected}, auditRepo.actions())
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Etapas remotas
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePartnership_ResolucionRemota(t *testing.T) {
	netErr := fmt.Errorf("dial tcp: %w", domain.ErrUpstream)

	cases := []struct {
		name    string
		mutate  func(b *fakeBackend)
		kind    partnership.ErrorKind
		field   string
		message string
		creates int
	}{
		{
			name:    "OSC inexistente",
			mutate:  func(b *fakeBackend) { b.oscs = nil },
			kind:    partnership.KindOSCNotFoundOrAmbiguous,
			field:   partnership.FieldOSCCNPJ,
			message: "CNPJ da OSC não encontrado ou ambíguo.",
		},
		{
			name: "OSC ambigua",
			mutate: func(b *fakeBackend) {
				b.oscs = []entity.OSC{{ID: 5}, {ID: 6}}
			},
			kind:    partnership.KindOSCNotFoundOrAmbiguous,
			field:   partnership.FieldOSCCNPJ,
			message: "CNPJ da OSC não encontrado ou ambíguo.",
		},
		{
			name:    "OSC 404 cuenta como cero resultados",
			mutate:  func(b *fakeBackend) { b.oscs, b.oscErr = nil, domain.ErrNotFound },
			kind:    partnership.KindOSCNotFoundOrAmbiguous,
			field:   partnership.FieldOSCCNPJ,
			message: "CNPJ da OSC não encontrado ou ambíguo.",
		},
		{
			name:    "falla de red buscando OSC",
			mutate:  func(b *fakeBackend) { b.oscErr = netErr },
			kind:    partnership.KindNetworkOrServer,
			field:   partnership.FieldOSCCNPJ,
			message: "Erro ao buscar OSC. Verifique o CNPJ informado.",
		},
		{
			name:    "loja inexistente",
			mutate:  func(b *fakeBackend) { b.stores = []entity.Store{} },
			kind:    partnership.KindStoreNotFoundOrAmbiguous,
			field:   partnership.FieldStoreCode,
			message: "Código da Loja não encontrado ou ambíguo.",
		},
		{
			name: "loja ambigua",
			mutate: func(b *fakeBackend) {
				b.stores = []entity.Store{{ID: 9}, {ID: 10}}
			},
			kind:    partnership.KindStoreNotFoundOrAmbiguous,
			field:   partnership.FieldStoreCode,
			message: "Código da Loja não encontrado ou ambíguo.",
		},
		{
			name:    "falla de red buscando loja",
			mutate:  func(b *fakeBackend) { b.storeErr = netErr },
			kind:    partnership.KindNetworkOrServer,
			field:   partnership.FieldStoreCode,
			message: "Erro ao buscar Loja. Verifique o código informado.",
		},
		{
			name:    "campanha 404",
			mutate:  func(b *fakeBackend) { b.campaign, b.campaignErr = nil, domain.ErrNotFound },
			kind:    partnership.KindCampaignNotFound,
			field:   partnership.FieldCampaignID,
			message: "ID da Campanha não encontrado.",
		},
		{
			name:    "campanha sin data",
			mutate:  func(b *fakeBackend) { b.campaign = nil },
			kind:    partnership.KindCampaignNotFound,
			field:   partnership.FieldCampaignID,
			message: "ID da Campanha não encontrado.",
		},
		{
			name:    "falla de red buscando campanha",
			mutate:  func(b *fakeBackend) { b.campaign, b.campaignErr = nil, netErr },
			kind:    partnership.KindNetworkOrServer,
			field:   partnership.FieldCampaignID,
			message: "Erro ao buscar Campanha. Verifique o ID informado.",
		},
		{
			name:    "backend rechaza el alta sin mensaje",
			mutate:  func(b *fakeBackend) { b.createErr = netErr },
			kind:    partnership.KindNetworkOrServer,
			message: "Erro ao criar parceria.",
			creates: 1,
		},
		{
			name:    "backend rechaza el alta con mensaje",
			mutate:  func(b *fakeBackend) { b.createErr = &publicError{msg: "Parceria já existe."} },
			kind:    partnership.KindNetworkOrServer,
			message: "Parceria já existe.",
			creates: 1,
		},
		{
			name: "respuesta del alta malformada",
			mutate: func(b *fakeBackend) {
				b.createErr = fmt.Errorf("parceria 77 sin store: %w", domain.ErrMalformedRecord)
			},
			kind:    partnership.KindMalformedRecord,
			message: "Resposta inválida do servidor ao criar parceria.",
			creates: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := happyBackend()
			tc.mutate(b)
			uc := newCreateUC(b, nil, nil)

			_, err := uc.Execute(context.Background(), "op", validRequest())
			require.Error(t, err)

			kind, ok := partnership.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, kind)

			var ve *partnership.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.Equal(t, tc.message, ve.Message)
			assert.Len(t, b.creates, tc.creates)
		})
	}
}

func TestCreatePartnership_ErrorConservaCausa(t *testing.T) {
	b := happyBackend()
	b.storeErr = fmt.Errorf("timeout: %w", domain.ErrUpstream)
	uc := newCreateUC(b, nil, nil)

	_, err := uc.Execute(context.Background(), "op", validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
