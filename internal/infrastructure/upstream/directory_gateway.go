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

const (
	oscPath      = "/osc/"
	storePath    = "/store/"
	campaignPath = "/campaign/"
)

var (
	_ repository.OSCDirectory      = (*DirectoryGateway)(nil)
	_ repository.StoreDirectory    = (*DirectoryGateway)(nil)
	_ repository.CampaignDirectory = (*DirectoryGateway)(nil)
)

// DirectoryGateway búsquedas de OSCs, lojas y campanhas que usa el alta de parcerias.
type DirectoryGateway struct {
	client *Client
}

// NewDirectoryGateway construye el adaptador.
func NewDirectoryGateway(client *Client) *DirectoryGateway {
	return &DirectoryGateway{client: client}
}

type campaignRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FindOSCsByCNPJ GET /osc/?cnpj=<dígitos>.
func (g *DirectoryGateway) FindOSCsByCNPJ(ctx context.Context, cnpj string) ([]entity.OSC, error) {
	data, err := g.client.do(ctx, "osc.find", http.MethodGet, oscPath, url.Values{"cnpj": {cnpj}}, nil)
	if err != nil {
		return nil, err
	}
	var raws []partnership.RawOSC
	if err := decode("osc.find", data, &raws); err != nil {
		if errors.Is(err, errEmptyData) {
			return []entity.OSC{}, nil
		}
		return nil, err
	}
	out := make([]entity.OSC, 0, len(raws))
	for _, r := range raws {
		out = append(out, entity.OSC{ID: r.ID, CNPJ: r.CNPJ, Name: r.Name, PartnershipCount: r.PartnershipCount})
	}
	return out, nil
}

// FindStoresByCode GET /store/?store_code=<código>.
func (g *DirectoryGateway) FindStoresByCode(ctx context.Context, storeCode int64) ([]entity.Store, error) {
	q := url.Values{"store_code": {strconv.FormatInt(storeCode, 10)}}
	data, err := g.client.do(ctx, "store.find", http.MethodGet, storePath, q, nil)
	if err != nil {
		return nil, err
	}
	var raws []partnership.RawStore
	if err := decode("store.find", data, &raws); err != nil {
		if errors.Is(err, errEmptyData) {
			return []entity.Store{}, nil
		}
		return nil, err
	}
	out := make([]entity.Store, 0, len(raws))
	for _, r := range raws {
		out = append(out, entity.Store{
			ID:               r.ID,
			StoreCode:        r.StoreCode,
			Name:             r.Name,
			PartnershipCount: r.PartnershipCount,
			Flag:             r.Flag,
		})
	}
	return out, nil
}

// GetCampaign GET /campaign/{id}. Un 404 o data null devuelven domain.ErrNotFound.
func (g *DirectoryGateway) GetCampaign(ctx context.Context, id int64) (*entity.Campaign, error) {
	data, err := g.client.do(ctx, "campaign.get", http.MethodGet, campaignPath+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return nil, err
	}
	var rec campaignRecord
	if err := decode("campaign.get", data, &rec); err != nil {
		if errors.Is(err, errEmptyData) {
			return nil, fmt.Errorf("campanha %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return &entity.Campaign{ID: rec.ID, Name: rec.Name}, nil
}
