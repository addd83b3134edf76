package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors carry their own codes;
// these cover failures that never reach the application layer.
const (
	ErrCodeInternal     = "INTERNAL"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Codes not
// listed here fall back to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"INVALID_STATE":        http.StatusConflict,

	// a principal without a clinic cannot touch clinic-scoped resources
	"CLINIC_UNRESOLVED": http.StatusForbidden,
	// an admin must name a clinic when creating clinic-owned resources
	"CLINIC_REQUIRED": http.StatusBadRequest,

	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"CLINIC_SUSPENDED":    http.StatusForbidden,

	"INSUFFICIENT_STOCK": http.StatusUnprocessableEntity,
	"BELOW_MIN_ORDER":    http.StatusUnprocessableEntity,
	"SUPPLIER_INACTIVE":  http.StatusUnprocessableEntity,
	"OVERPAYMENT":        http.StatusUnprocessableEntity,
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_TAKEN"), strings.HasSuffix(code, "_EXISTS"):
		return http.StatusConflict
	case strings.HasPrefix(code, "INVALID_"):
		return http.StatusUnprocessableEntity
	}
	return http.StatusUnprocessableEntity
}
