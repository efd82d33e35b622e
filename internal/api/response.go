// Package api defines the response envelopes shared by every HTTP handler.
package api

// Stable error codes returned in ErrorResponse.Code.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidAmount      = "INVALID_AMOUNT"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeDuplicateSymbol    = "DUPLICATE_SYMBOL"
	CodeInsufficientFunds  = "INSUFFICIENT_FUNDS"
	CodeInsufficientShares = "INSUFFICIENT_SHARES"
	CodeNoPosition         = "NO_POSITION"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInactiveUser       = "INACTIVE_USER"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// MessageResponse carries a plain informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is returned by the login endpoint.
// Field names follow the OAuth2 password flow.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewError builds an ErrorResponse.
func NewError(code, msg string) ErrorResponse {
	return ErrorResponse{Code: code, Error: msg}
}

// Internal is the opaque body used for unexpected failures.
func Internal() ErrorResponse {
	return ErrorResponse{Code: CodeInternal, Error: "internal server error"}
}
