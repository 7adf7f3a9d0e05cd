package partnership

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/parcerias-admin/internal/application/audit"
	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
	"github.com/jhoicas/parcerias-admin/pkg/cnpj"
	"github.com/jhoicas/parcerias-admin/pkg/logger"
	"github.com/jhoicas/parcerias-admin/pkg/metrics"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// CreatePartnershipDeps dependencias del caso de uso de creación.
type CreatePartnershipDeps struct {
	OSCs         repository.OSCDirectory
	Stores       repository.StoreDirectory
	Campaigns    repository.CampaignDirectory
	Partnerships repository.PartnershipRepository
	Audit        *audit.Recorder
	Metrics      *metrics.Metrics
	Logger       *logger.Logger
}

// CreatePartnershipUseCase resuelve CNPJ, código de loja e ID de campanha en IDs internos
// y crea la parceria en estado pendente.
//
// Las etapas son secuenciales y la primera falla corta el flujo: presencia, conversión
// numérica, largo del CNPJ, OSC, loja, campanha y envío. Las búsquedas no se paralelizan
// porque cada una tiene su propio mensaje y el orden de los campos decide cuál se muestra.
type CreatePartnershipUseCase struct {
	oscs         repository.OSCDirectory
	stores       repository.StoreDirectory
	campaigns    repository.CampaignDirectory
	partnerships repository.PartnershipRepository
	audit        *audit.Recorder
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// NewCreatePartnershipUseCase construye el caso de uso.
func NewCreatePartnershipUseCase(deps CreatePartnershipDeps) *CreatePartnershipUseCase {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &CreatePartnershipUseCase{
		oscs:         deps.OSCs,
		stores:       deps.Stores,
		campaigns:    deps.Campaigns,
		partnerships: deps.Partnerships,
		audit:        deps.Audit,
		metrics:      deps.Metrics,
		log:          log,
	}
}

// Execute corre el flujo completo. Los errores de validación son *ValidationError.
func (uc *CreatePartnershipUseCase) Execute(ctx context.Context, actor string, in dto.CreatePartnershipRequest) (*entity.Partnership, error) {
	p, err := uc.execute(ctx, in)
	uc.observe(ctx, actor, in, p, err)
	return p, err
}

func (uc *CreatePartnershipUseCase) execute(ctx context.Context, in dto.CreatePartnershipRequest) (*entity.Partnership, error) {
	in = in.Normalized()

	if err := validate.Struct(in); err != nil {
		return nil, newValidationError(KindMissingField, firstInvalidField(err), msgMissingField, nil)
	}

	storeCode, err := strconv.ParseInt(in.StoreCode, 10, 64)
	if err != nil {
		return nil, newValidationError(KindInvalidNumber, FieldStoreCode, msgStoreCodeNumber, err)
	}
	campaignID, err := strconv.ParseInt(in.CampaignID, 10, 64)
	if err != nil {
		return nil, newValidationError(KindInvalidNumber, FieldCampaignID, msgCampaignIDNumber, err)
	}

	digits := cnpj.Unformat(in.OSCCNPJ)
	if len(digits) != cnpj.Length {
		return nil, newValidationError(KindInvalidCNPJLength, FieldOSCCNPJ, msgCNPJLength, nil)
	}

	oscs, err := uc.oscs.FindOSCsByCNPJ(ctx, digits)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, newValidationError(KindNetworkOrServer, FieldOSCCNPJ, msgOSCLookupFailed, err)
	}
	if len(oscs) != 1 {
		return nil, newValidationError(KindOSCNotFoundOrAmbiguous, FieldOSCCNPJ, msgOSCNotFound, nil)
	}

	stores, err := uc.stores.FindStoresByCode(ctx, storeCode)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, newValidationError(KindNetworkOrServer, FieldStoreCode, msgStoreLookupFailed, err)
	}
	if len(stores) != 1 {
		return nil, newValidationError(KindStoreNotFoundOrAmbiguous, FieldStoreCode, msgStoreNotFound, nil)
	}

	campaign, err := uc.campaigns.GetCampaign(ctx, campaignID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, newValidationError(KindCampaignNotFound, FieldCampaignID, msgCampaignNotFound, err)
	case err != nil:
		return nil, newValidationError(KindNetworkOrServer, FieldCampaignID, msgCampaignLookupFailed, err)
	case campaign == nil:
		return nil, newValidationError(KindCampaignNotFound, FieldCampaignID, msgCampaignNotFound, nil)
	}

	created, err := uc.partnerships.Create(ctx, repository.CreatePartnershipInput{
		OSCID:      oscs[0].ID,
		StoreID:    stores[0].ID,
		CampaignID: campaignID,
		Status:     entity.StatusPendente,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMalformedRecord) {
			return nil, newValidationError(KindMalformedRecord, "", msgMalformedCreateResult, err)
		}
		msg := publicMessage(err)
		if msg == "" {
			msg = msgCreateFailed
		}
		return nil, newValidationError(KindNetworkOrServer, "", msg, err)
	}
	return created, nil
}

func (uc *CreatePartnershipUseCase) observe(ctx context.Context, actor string, in dto.CreatePartnershipRequest, p *entity.Partnership, err error) {
	if err == nil {
		uc.metrics.IncCreation("created")
		uc.log.Info().Int64("partnership_id", p.ID).Str("actor", actor).Msg("parceria criada")
		uc.audit.Record(ctx, &entity.AuditEvent{
			Action:        entity.AuditPartnershipCreated,
			PartnershipID: p.ID,
			Actor:         actor,
			Detail: map[string]any{
				"osc_id":      p.OSCID,
				"store_id":    p.StoreID,
				"campaign_id": p.Campanhas,
			},
		})
		return
	}

	kind, ok := KindOf(err)
	if !ok {
		kind = KindNetworkOrServer
	}
	uc.metrics.IncCreation(string(kind))
	ev := uc.log.Warn()
	if kind == KindNetworkOrServer || kind == KindMalformedRecord {
		ev = uc.log.Error()
	}
	ev.Err(err).Str("kind", string(kind)).Str("actor", actor).Msg("criação de parceria rejeitada")
	uc.audit.Record(ctx, &entity.AuditEvent{
		Action: entity.AuditPartnershipCreateRejected,
		Actor:  actor,
		Detail: map[string]any{
			"kind":        string(kind),
			"osc_cnpj":    cnpj.Unformat(in.OSCCNPJ),
			"store_code":  strings.TrimSpace(in.StoreCode),
			"campaign_id": strings.TrimSpace(in.CampaignID),
		},
	})
}

// firstInvalidField devuelve el primer campo que falló la validación de presencia.
func firstInvalidField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
