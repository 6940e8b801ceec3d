package dto

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status int    `json:"status"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

const (
	CodeUnauthorized        = "unauthorized"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeInvalidRefreshToken = "invalid_refresh_token"
	CodeInvalidCode         = "invalid_code"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeNotMember           = "not_member"
	CodeAlreadyMember       = "already_member"
	CodeEmailTaken          = "email_taken"
	CodeValidation          = "validation"
	CodeRateLimited         = "rate_limited"
	CodeSSODisabled         = "sso_disabled"
	CodeInternal            = "internal"
)

func NewError(status int, code, message string) ErrorResponse {
	return ErrorResponse{Status: status, Code: code, Error: message}
}
