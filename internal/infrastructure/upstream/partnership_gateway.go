package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
	"github.com/jhoicas/parcerias-admin/internal/domain/partnership"
	"github.com/jhoicas/parcerias-admin/internal/domain/repository"
)

const partnershipPath = "/partnership/"

// Codificación del estado en el body del update.
const (
	StatusEncodingLabel  = "label"
	StatusEncodingNumber = "number"
)

var _ repository.PartnershipRepository = (*PartnershipGateway)(nil)

// PartnershipGateway adaptador del puerto PartnershipRepository sobre /partnership/.
type PartnershipGateway struct {
	client         *Client
	statusEncoding string
}

// NewPartnershipGateway construye el adaptador. statusEncoding vacío equivale a "label":
// el backend lee el estado numérico pero, en lo observado, recibe el texto en updates.
func NewPartnershipGateway(client *Client, statusEncoding string) *PartnershipGateway {
	if statusEncoding == "" {
		statusEncoding = StatusEncodingLabel
	}
	return &PartnershipGateway{client: client, statusEncoding: statusEncoding}
}

type createPartnershipBody struct {
	StoreID   int64  `json:"storeId"`
	OSCID     int64  `json:"oscId"`
	Campanhas int64  `json:"campanhas,omitempty"`
	Status    string `json:"status,omitempty"`
}

type updatePartnershipBody struct {
	Status  any   `json:"status,omitempty"`
	StoreID int64 `json:"storeId,omitempty"`
	OSCID   int64 `json:"oscId,omitempty"`
}

// List GET /partnership/?search=&status=&page=&limit= (los parámetros vacíos no se envían).
func (g *PartnershipGateway) List(ctx context.Context, params repository.ListPartnershipsParams) ([]entity.Partnership, error) {
	q := url.Values{}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	if params.Status != "" {
		q.Set("status", params.Status)
	}
	if params.Page > 0 {
		q.Set("page", strconv.Itoa(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	data, err := g.client.do(ctx, "partnership.list", http.MethodGet, partnershipPath, q, nil)
	if err != nil {
		return nil, err
	}
	var raws []partnership.RawPartnership
	if err := decode("partnership.list", data, &raws); err != nil {
		if errors.Is(err, errEmptyData) {
			return []entity.Partnership{}, nil
		}
		return nil, err
	}
	return partnership.MapRawList(raws)
}

// Create POST /partnership/.
func (g *PartnershipGateway) Create(ctx context.Context, in repository.CreatePartnershipInput) (*entity.Partnership, error) {
	body := createPartnershipBody{
		StoreID:   in.StoreID,
		OSCID:     in.OSCID,
		Campanhas: in.CampaignID,
		Status:    string(in.Status),
	}
	data, err := g.client.do(ctx, "partnership.create", http.MethodPost, partnershipPath, nil, body)
	if err != nil {
		return nil, err
	}
	return decodePartnership("partnership.create", data)
}

// Update PUT /partnership/{id}.
func (g *PartnershipGateway) Update(ctx context.Context, id int64, in repository.UpdatePartnershipInput) (*entity.Partnership, error) {
	body := updatePartnershipBody{StoreID: in.StoreID, OSCID: in.OSCID}
	if in.Status != "" {
		if g.statusEncoding == StatusEncodingNumber {
			body.Status = partnership.StatusToNumber(in.Status)
		} else {
			body.Status = string(in.Status)
		}
	}
	path := partnershipPath + strconv.FormatInt(id, 10)
	data, err := g.client.do(ctx, "partnership.update", http.MethodPut, path, nil, body)
	if err != nil {
		return nil, err
	}
	return decodePartnership("partnership.update", data)
}

func decodePartnership(operation string, data []byte) (*entity.Partnership, error) {
	var raw partnership.RawPartnership
	if err := decode(operation, data, &raw); err != nil {
		if errors.Is(err, errEmptyData) {
			return nil, fmt.Errorf("upstream %s: respuesta sin data: %w", operation, domain.ErrMalformedRecord)
		}
		return nil, err
	}
	p, err := partnership.MapRawToDisplay(raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
