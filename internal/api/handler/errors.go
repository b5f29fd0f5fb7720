package handler

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/titlelab/title-rotator-api/internal/domain"
	"github.com/titlelab/title-rotator-api/pkg/apiErrors"
)

// writeDomainError traduz a taxonomia de erros do motor para os códigos da
// API. Tudo que não cai na taxonomia vira erro interno genérico.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			details[fieldErr.Field()] = fieldErr.Tag()
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "requisição inválida", details)
		return
	}

	switch {
	case errors.Is(err, domain.ErrTestNotFound), errors.Is(err, domain.ErrVariantNotFound):
		apiErrors.WriteError(w, apiErrors.ErrTestNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrChannelNotFound):
		apiErrors.WriteError(w, apiErrors.ErrChannelNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidStatusTransition):
		apiErrors.WriteError(w, apiErrors.ErrInvalidTransition, err.Error(), nil)
	case domain.IsReauthorizationRequired(err):
		apiErrors.WriteError(w, apiErrors.ErrReauthRequired, err.Error(), nil)
	case errors.Is(err, domain.ErrQuotaExceeded):
		apiErrors.WriteError(w, apiErrors.ErrQuotaExceeded, err.Error(), nil)
	case domain.IsTransient(err):
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
