package dto

import "time"

// AuditEventResponse salida de un evento de la bitácora.
type AuditEventResponse struct {
	ID            string         `json:"id"`
	Action        string         `json:"action"`
	PartnershipID int64          `json:"partnership_id,omitempty"`
	Actor         string         `json:"actor"`
	Detail        map[string]any `json:"detail,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// AuditListResponse lista paginada de eventos.
type AuditListResponse struct {
	Items []AuditEventResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
