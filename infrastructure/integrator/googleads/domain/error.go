package googledomain

// ErrorResponse representa a estrutura de erro da API do Google Ads
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Google Ads
type ErrorDetails struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Details interface{} `json:"details,omitempty"`
}

// IsTokenExpired verifica se o erro é de credencial expirada ou inválida.
// O status UNAUTHENTICATED (HTTP 401) indica access token vencido
func (e *ErrorResponse) IsTokenExpired() bool {
	return e.Error.Code == 401 || e.Error.Status == "UNAUTHENTICATED"
}
