package domain

import (
	"errors"
	"fmt"
)

// Taxonomia de erros do motor de rotação
var (
	// ErrReauthorizationRequired indica credencial revogada ou refresh token
	// inválido. Fatal para o teste: pausa automática, nunca retentado.
	ErrReauthorizationRequired = errors.New("reautorização do canal necessária")

	// ErrQuotaExceeded indica orçamento diário de quota esgotado. Transitório:
	// a operação é retentada naturalmente no próximo ciclo.
	ErrQuotaExceeded = errors.New("quota diária da API excedida")

	ErrTestNotFound    = errors.New("teste não encontrado")
	ErrChannelNotFound = errors.New("canal não encontrado")
	ErrVariantNotFound = errors.New("variante não encontrada")

	ErrInvalidStatusTransition = errors.New("transição de status inválida")
)

// TransientPlatformError encapsula falhas transitórias da plataforma externa
// (rede, 5xx, 429 após esgotar retries). O chamador trata como "tente no
// próximo tick".
type TransientPlatformError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *TransientPlatformError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("erro transitório na plataforma em %s (status %d): %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("erro transitório na plataforma em %s: %v", e.Operation, e.Err)
}

func (e *TransientPlatformError) Unwrap() error {
	return e.Err
}

func NewTransientPlatformError(operation string, statusCode int, err error) *TransientPlatformError {
	return &TransientPlatformError{Operation: operation, StatusCode: statusCode, Err: err}
}

// IsTransient verifica se o erro permite nova tentativa no próximo ciclo
func IsTransient(err error) bool {
	var transient *TransientPlatformError
	return errors.As(err, &transient) || errors.Is(err, ErrQuotaExceeded)
}

// IsReauthorizationRequired verifica se o erro exige reautorização humana
func IsReauthorizationRequired(err error) bool {
	return errors.Is(err, ErrReauthorizationRequired)
}
