package entity

import (
	"fmt"
	"strings"
)

// PartnershipStatus estado de una parceria tal como se muestra en el painel.
type PartnershipStatus string

const (
	StatusAtiva    PartnershipStatus = "ativa"
	StatusInativa  PartnershipStatus = "inativa"
	StatusPendente PartnershipStatus = "pendente"
)

var validStatuses = []PartnershipStatus{StatusAtiva, StatusInativa, StatusPendente}

// String implementa fmt.Stringer.
func (s PartnershipStatus) String() string {
	return string(s)
}

// IsValid indica si el valor es uno de los estados conocidos.
func (s PartnershipStatus) IsValid() bool {
	for _, candidate := range validStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Toggled devuelve el estado opuesto dentro del par ativa ⇄ inativa.
// Para cualquier otro estado (pendente incluido) ok es false: no hay transición expuesta.
func (s PartnershipStatus) Toggled() (next PartnershipStatus, ok bool) {
	switch PartnershipStatus(strings.ToLower(string(s))) {
	case StatusAtiva:
		return StatusInativa, true
	case StatusInativa:
		return StatusAtiva, true
	default:
		return s, false
	}
}

// ParsePartnershipStatus convierte texto libre (sin distinguir mayúsculas) en un estado.
func ParsePartnershipStatus(value string) (PartnershipStatus, error) {
	v := PartnershipStatus(strings.ToLower(strings.TrimSpace(value)))
	if v.IsValid() {
		return v, nil
	}
	return "", fmt.Errorf("estado de parceria inválido %q", value)
}

// Partnership forma de presentación de una parceria (OSC + Loja + Campanha).
// DataInicio y DataVencimento conservan el texto ISO-8601 recibido del backend
// (created_at y updated_at respectivamente).
type Partnership struct {
	ID             int64
	OSC            string
	Loja           string
	DataInicio     string
	DataVencimento string
	Status         PartnershipStatus
	Campanhas      int64 // 0 si no hay campanha asociada
	StoreID        int64
	OSCID          int64
}
