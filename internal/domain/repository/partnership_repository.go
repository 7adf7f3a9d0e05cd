package repository

import (
	"context"

	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// ListPartnershipsParams filtros del listado remoto. Campos vacíos no se envían.
type ListPartnershipsParams struct {
	Search string
	Status string
	Page   int
	Limit  int
}

// CreatePartnershipInput datos resueltos para crear una parceria.
type CreatePartnershipInput struct {
	OSCID      int64
	StoreID    int64
	CampaignID int64
	Status     entity.PartnershipStatus
}

// UpdatePartnershipInput campos a actualizar; valores cero no se envían.
// StoreID y OSCID viajan aunque no cambien porque el contrato de update del backend los exige.
type UpdatePartnershipInput struct {
	Status  entity.PartnershipStatus
	StoreID int64
	OSCID   int64
}

// PartnershipRepository define el puerto hacia la colección de parcerias (DIP).
type PartnershipRepository interface {
	List(ctx context.Context, params ListPartnershipsParams) ([]entity.Partnership, error)
	Create(ctx context.Context, in CreatePartnershipInput) (*entity.Partnership, error)
	Update(ctx context.Context, id int64, in UpdatePartnershipInput) (*entity.Partnership, error)
}
