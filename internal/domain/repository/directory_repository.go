package repository

import (
	"context"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// OSCDirectory busca OSCs por CNPJ (sólo dígitos). Puede devolver cero, una o varias.
type OSCDirectory interface {
	FindOSCsByCNPJ(ctx context.Context, cnpj string) ([]entity.OSC, error)
}

// StoreDirectory busca lojas por código de loja.
type StoreDirectory interface {
	FindStoresByCode(ctx context.Context, storeCode int64) ([]entity.Store, error)
}

// CampaignDirectory obtiene una campanha por ID. Si no existe devuelve domain.ErrNotFound.
type CampaignDirectory interface {
	GetCampaign(ctx context.Context, id int64) (*entity.Campaign, error)
}
