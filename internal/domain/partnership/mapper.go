// Package partnership traduce el registro del backend (estado numérico, entidades anidadas)
// a la forma plana de presentación.
package partnership

import (
	"fmt"

	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/internal/domain/entity"
)

// Códigos numéricos del backend.
const (
	StatusCodePendente = 0
	StatusCodeAtiva    = 1
	StatusCodeInativa  = 2
)

// RawStore loja anidada en el registro del backend.
type RawStore struct {
	ID               int64  `json:"id"`
	StoreCode        int64  `json:"store_code"`
	Name             string `json:"name"`
	PartnershipCount int    `json:"partnership_count"`
	Flag             string `json:"flag"`
}

// RawOSC OSC anidada en el registro del backend.
type RawOSC struct {
	ID               int64  `json:"id"`
	CNPJ             string `json:"cnpj"`
	Name             string `json:"name"`
	PartnershipCount int    `json:"partnership_count"`
}

// RawPartnership registro de parceria tal como lo entrega el backend.
type RawPartnership struct {
	ID         int64     `json:"id"`
	Status     int       `json:"status"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
	Campaign   *int64    `json:"campaign"`
	Store      *RawStore `json:"store"`
	OSC        *RawOSC   `json:"osc"`
}

// StatusFromNumber es total: 1 -> ativa, 2 -> inativa, cualquier otro valor (0 incluido) -> pendente.
func StatusFromNumber(n int) entity.PartnershipStatus {
	switch n {
	case StatusCodeAtiva:
		return entity.StatusAtiva
	case StatusCodeInativa:
		return entity.StatusInativa
	default:
		return entity.StatusPendente
	}
}

// StatusToNumber inversa de StatusFromNumber para los tres estados conocidos.
// Sólo se usa cuando el backend se configura para recibir el estado numérico en updates.
func StatusToNumber(s entity.PartnershipStatus) int {
	switch s {
	case entity.StatusAtiva:
		return StatusCodeAtiva
	case entity.StatusInativa:
		return StatusCodeInativa
	default:
		return StatusCodePendente
	}
}

// MapRawToDisplay aplana el registro. Sin store u osc devuelve domain.ErrMalformedRecord.
func MapRawToDisplay(raw RawPartnership) (entity.Partnership, error) {
	if raw.Store == nil || raw.OSC == nil {
		missing := "store"
		if raw.Store != nil {
			missing = "osc"
		}
		return entity.Partnership{}, fmt.Errorf("parceria %d sin %s: %w", raw.ID, missing, domain.ErrMalformedRecord)
	}
	var campaign int64
	if raw.Campaign != nil {
		campaign = *raw.Campaign
	}
	return entity.Partnership{
		ID:             raw.ID,
		OSC:            raw.OSC.Name,
		Loja:           raw.Store.Name,
		DataInicio:     raw.CreatedAt,
		DataVencimento: raw.UpdatedAt,
		Status:         StatusFromNumber(raw.Status),
		Campanhas:      campaign,
		StoreID:        raw.Store.ID,
		OSCID:          raw.OSC.ID,
	}, nil
}

// MapRawList aplica MapRawToDisplay a toda la colección; el primer registro malformado aborta.
func MapRawList(raws []RawPartnership) ([]entity.Partnership, error) {
	out := make([]entity.Partnership, 0, len(raws))
	for _, raw := range raws {
		p, err := MapRawToDisplay(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
