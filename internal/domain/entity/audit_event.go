package entity

import "time"

// Acciones registradas en la bitácora.
const (
	AuditPartnershipCreated        = "partnership.created"
	AuditPartnershipCreateRejected = "partnership.create_rejected"
	AuditPartnershipStatusToggled  = "partnership.status_toggled"
)

// AuditEvent entrada de la bitácora de acciones del painel.
type AuditEvent struct {
	ID            string
	Action        string
	PartnershipID int64 // 0 cuando la acción no llegó a crear la parceria
	Actor         string
	Detail        map[string]any
	CreatedAt     time.Time
}
