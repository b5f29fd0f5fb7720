package youtubedomain

// ErrorResponse segue o envelope de erro padrão das APIs do Google.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

type ErrorDetails struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []ErrorItem `json:"errors"`
}

type ErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// IsAuthError indica credencial inválida ou expirada. O token em cache é
// descartado e renovado uma única vez antes de propagar o erro.
func (e *ErrorResponse) IsAuthError() bool {
	if e.Error.Code == 401 {
		return true
	}

	for _, item := range e.Error.Errors {
		if item.Reason == "authError" || item.Reason == "invalidCredentials" {
			return true
		}
	}

	return false
}

// IsQuotaExceeded indica que o budget diário da API foi esgotado. Diferente
// de rate limit, não adianta novo retry até o reset da quota.
func (e *ErrorResponse) IsQuotaExceeded() bool {
	if e.Error.Code != 403 {
		return false
	}

	for _, item := range e.Error.Errors {
		if item.Reason == "quotaExceeded" || item.Reason == "dailyLimitExceeded" {
			return true
		}
	}

	return false
}

func (e *ErrorResponse) IsRateLimited() bool {
	for _, item := range e.Error.Errors {
		if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
			return true
		}
	}

	return false
}

// TokenErrorResponse é o corpo de erro do endpoint OAuth de token.
type TokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// IsInvalidGrant indica refresh token revogado ou expirado. Não há
// renovação automática possível, o canal precisa reautorizar.
func (e *TokenErrorResponse) IsInvalidGrant() bool {
	return e.Error == "invalid_grant"
}
