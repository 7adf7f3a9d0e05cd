package partnership

import (
	"errors"
	"fmt"
)

// ErrorKind clasifica la falla del flujo de parcerias. El valor se expone como código HTTP.
type ErrorKind string

const (
	KindMissingField             ErrorKind = "MISSING_FIELD"
	KindInvalidNumber            ErrorKind = "INVALID_NUMBER"
	KindInvalidCNPJLength        ErrorKind = "INVALID_CNPJ_LENGTH"
	KindOSCNotFoundOrAmbiguous   ErrorKind = "OSC_NOT_FOUND_OR_AMBIGUOUS"
	KindStoreNotFoundOrAmbiguous ErrorKind = "STORE_NOT_FOUND_OR_AMBIGUOUS"
	KindCampaignNotFound         ErrorKind = "CAMPAIGN_NOT_FOUND"
	KindNetworkOrServer          ErrorKind = "NETWORK_OR_SERVER_ERROR"
	KindMalformedRecord          ErrorKind = "MALFORMED_RECORD"
)

// Campos del formulario de creación (mismos nombres que el JSON de entrada).
const (
	FieldOSCCNPJ    = "osc_cnpj"
	FieldStoreCode  = "store_code"
	FieldCampaignID = "campaign_id"
)

// Mensajes mostrados al operador.
const (
	msgMissingField          = "Preencha todos os campos obrigatórios."
	msgStoreCodeNumber       = "Código da Loja deve ser um número válido."
	msgCampaignIDNumber      = "ID da Campanha deve ser um número válido."
	msgCNPJLength            = "CNPJ da OSC deve conter 14 dígitos."
	msgOSCLookupFailed       = "Erro ao buscar OSC. Verifique o CNPJ informado."
	msgOSCNotFound           = "CNPJ da OSC não encontrado ou ambíguo."
	msgStoreLookupFailed     = "Erro ao buscar Loja. Verifique o código informado."
	msgStoreNotFound         = "Código da Loja não encontrado ou ambíguo."
	msgCampaignLookupFailed  = "Erro ao buscar Campanha. Verifique o ID informado."
	msgCampaignNotFound      = "ID da Campanha não encontrado."
	msgCreateFailed          = "Erro ao criar parceria."
	msgMalformedCreateResult = "Resposta inválida do servidor ao criar parceria."
)

var (
	// ErrSubmitInFlight se devuelve si el mismo formulario ya tiene un envío en curso.
	ErrSubmitInFlight = errors.New("já existe um envio em andamento para este formulário")
	// ErrToggleInFlight se devuelve si la fila ya tiene un cambio de estado en curso.
	ErrToggleInFlight = errors.New("já existe uma alteração de status em andamento para esta parceria")
)

// ValidationError falla de una etapa del flujo de creación. Message es el texto para el operador.
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Message string
	Err     error
}

func newValidationError(kind ErrorKind, field, message string, cause error) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Message: message, Err: cause}
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// KindOf devuelve el tipo de la falla si err es (o envuelve) un *ValidationError.
func KindOf(err error) (ErrorKind, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind, true
	}
	return "", false
}

// UserMessage devuelve el texto a mostrar en el formulario para cualquier error del flujo.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	if errors.Is(err, ErrSubmitInFlight) || errors.Is(err, ErrToggleInFlight) {
		return err.Error()
	}
	if msg := publicMessage(err); msg != "" {
		return msg
	}
	return msgCreateFailed
}

// publicMessager lo implementan los errores del backend que traen un mensaje apto para el operador.
type publicMessager interface {
	PublicMessage() string
}

func publicMessage(err error) string {
	var pm publicMessager
	if errors.As(err, &pm) {
		return pm.PublicMessage()
	}
	return ""
}
