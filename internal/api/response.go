package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapponejosh/nakshatra-api/internal/almanac"
	"github.com/zapponejosh/nakshatra-api/internal/astro"
	"github.com/zapponejosh/nakshatra-api/internal/database"
	"github.com/zapponejosh/nakshatra-api/internal/locale"
)

// Response represents a standard API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error codes returned in ErrorInfo.Code.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInternal         = "INTERNAL_ERROR"
	CodeUnknownLocale    = "UNKNOWN_LOCALE"
	CodeOutOfRange       = "OUT_OF_RANGE"
	CodeUnknownKind      = "UNKNOWN_KIND"
	CodeInvalidOffset    = "INVALID_OFFSET"
	CodeRangeTooLarge    = "RANGE_TOO_LARGE"
	CodeRateLimited      = "RATE_LIMITED"
	CodeHealthCheck      = "HEALTH_CHECK_FAILED"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, CodeBadRequest)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, CodeInternal)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, CodeUnauthorized)
}

// WriteDomainError maps errors from the domain packages onto status codes.
// It reports false, writing nothing, for errors it does not recognise.
func WriteDomainError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, locale.ErrUnknownLocale):
		WriteError(w, http.StatusNotFound, err.Error(), CodeUnknownLocale)
	case errors.Is(err, locale.ErrOutOfRange):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeOutOfRange)
	case errors.Is(err, locale.ErrUnknownKind):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeUnknownKind)
	case errors.Is(err, astro.ErrInvalidOffset):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidOffset)
	case errors.Is(err, almanac.ErrRangeTooLarge):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeRangeTooLarge)
	case errors.Is(err, almanac.ErrInvalidRange):
		WriteBadRequest(w, err.Error())
	case database.IsNotFound(err):
		WriteNotFound(w, "Record not found")
	default:
		return false
	}
	return true
}
