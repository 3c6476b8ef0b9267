package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/napolitain/factory-planner/internal/factory"
	"github.com/napolitain/factory-planner/internal/store"
)

// Error codes as constants
const (
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnavailable       = "SERVICE_UNAVAILABLE"
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"requestId"`
	Timestamp time.Time              `json:"timestamp"`
	Retryable bool                   `json:"retryable"`
}

// writeError writes error response
func writeError(w http.ResponseWriter, r *http.Request, statusCode int,
	code, message string, retryable bool, details map[string]interface{}) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	respondJSON(w, statusCode, ErrorResponse{
		Code:      code,
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	})
}

// statusFor maps engine and store errors to HTTP statuses
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrPlanNotFound):
		return http.StatusNotFound, ErrCodeNotFound
	case errors.Is(err, factory.ErrNoData):
		return http.StatusServiceUnavailable, ErrCodeUnavailable
	default:
		return http.StatusBadRequest, ErrCodeInvalidRequest
	}
}
