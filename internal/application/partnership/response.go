package partnership

import (
	"github.com/jhoicas/parcerias-admin/internal/application/dto"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// ToResponse convierte una parceria al DTO de salida.
func ToResponse(p entity.Partnership) dto.PartnershipResponse {
	return dto.PartnershipResponse{
		ID:             p.ID,
		OSC:            p.OSC,
		Loja:           p.Loja,
		DataInicio:     p.DataInicio,
		DataVencimento: p.DataVencimento,
		Status:         string(p.Status),
		Campanhas:      p.Campanhas,
		StoreID:        p.StoreID,
		OSCID:          p.OSCID,
	}
}

// ToResponses convierte una colección; nunca devuelve nil.
func ToResponses(items []entity.Partnership) []dto.PartnershipResponse {
	out := make([]dto.PartnershipResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToResponse(p))
	}
	return out
}

// ToListResponse arma la respuesta del listado a partir de la vista.
func ToListResponse(v View) dto.PartnershipListResponse {
	return dto.PartnershipListResponse{
		Items: ToResponses(v.Filtered),
		Stats: dto.PartnershipStatsResponse{
			Ativas:    v.Stats.Ativas,
			Inativas:  v.Stats.Inativas,
			Pendentes: v.Stats.Pendentes,
			Total:     v.Stats.Total,
		},
		Filters: dto.PartnershipFiltersResponse{
			Search: v.SearchTerm,
			Status: v.StatusFilter,
		},
	}
}
