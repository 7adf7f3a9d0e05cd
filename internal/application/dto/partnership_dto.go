package dto

import "strings"

// CreatePartnershipRequest datos tal como los escribe el operador en el formulario.
// Todos son texto: la conversión numérica es una etapa de la validación.
type CreatePartnershipRequest struct {
	OSCCNPJ    string `json:"osc_cnpj" validate:"required"`
	StoreCode  string `json:"store_code" validate:"required"`
	CampaignID string `json:"campaign_id" validate:"required"`
}

// Normalized devuelve una copia sin espacios en los extremos.
func (r CreatePartnershipRequest) Normalized() CreatePartnershipRequest {
	return CreatePartnershipRequest{
		OSCCNPJ:    strings.TrimSpace(r.OSCCNPJ),
		StoreCode:  strings.TrimSpace(r.StoreCode),
		CampaignID: strings.TrimSpace(r.CampaignID),
	}
}

// PartnershipResponse salida de una parceria (forma de presentación).
type PartnershipResponse struct {
	ID             int64  `json:"id"`
	OSC            string `json:"osc"`
	Loja           string `json:"loja"`
	DataInicio     string `json:"dataInicio"`
	DataVencimento string `json:"dataVencimento"`
	Status         string `json:"status"`
	Campanhas      int64  `json:"campanhas"`
	StoreID        int64  `json:"storeId"`
	OSCID          int64  `json:"oscId"`
}

// CreatePartnershipResponse resultado de la creación; RedirectTo es la vista de listado.
type CreatePartnershipResponse struct {
	Partnership PartnershipResponse `json:"partnership"`
	RedirectTo  string              `json:"redirect_to"`
}

// PartnershipStatsResponse contadores por estado sobre la colección completa.
type PartnershipStatsResponse struct {
	Ativas    int `json:"ativas"`
	Inativas  int `json:"inativas"`
	Pendentes int `json:"pendentes"`
	Total     int `json:"total"`
}

// PartnershipFiltersResponse filtros aplicados a la vista.
type PartnershipFiltersResponse struct {
	Search string `json:"search"`
	Status string `json:"status"`
}

// PartnershipListResponse vista filtrada del listado.
type PartnershipListResponse struct {
	Items   []PartnershipResponse      `json:"items"`
	Stats   PartnershipStatsResponse   `json:"stats"`
	Filters PartnershipFiltersResponse `json:"filters"`
}

// ToggleStatusResponse resultado del toggle; Changed=false cuando el estado no admite toggle.
type ToggleStatusResponse struct {
	Changed      bool                  `json:"changed"`
	Partnerships []PartnershipResponse `json:"partnerships"`
}

// CNPJFormatResponse máscara y chequeos de un CNPJ tecleado.
type CNPJFormatResponse struct {
	Formatted        string `json:"formatted"`
	Digits           string `json:"digits"`
	ValidLength      bool   `json:"valid_length"`
	ValidCheckDigits bool   `json:"valid_check_digits"`
}
