// Package errors provides the structured error type returned by the quote
// service and its mapping onto HTTP responses.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Request / wizard errors
const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidPayload   ErrorCode = "INVALID_PAYLOAD"
	ErrCodeMissingFields    ErrorCode = "MISSING_REQUIRED_FIELDS"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeInvalidStep        ErrorCode = "INVALID_STEP"
	ErrCodeStepNotAllowed     ErrorCode = "STEP_NOT_ALLOWED"
	ErrCodeStepIncomplete     ErrorCode = "STEP_INCOMPLETE"
	ErrCodeQuoteNotReady      ErrorCode = "QUOTE_NOT_READY"
	ErrCodeLeadCaptured       ErrorCode = "LEAD_ALREADY_CAPTURED"

	ErrCodeIndustryNotFound   ErrorCode = "INDUSTRY_NOT_FOUND"
	ErrCodeBudgetNotFound     ErrorCode = "BUDGET_NOT_FOUND"
	ErrCodeStyleNotFound      ErrorCode = "STYLE_NOT_FOUND"
	ErrCodeModuleNotFound     ErrorCode = "MODULE_NOT_FOUND"
	ErrCodeModuleNotAvailable ErrorCode = "MODULE_NOT_AVAILABLE"
)

// Collaborator / infrastructure errors
const (
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeWebhookRelayFailed     ErrorCode = "WEBHOOK_RELAY_FAILED"
	ErrCodeEventIndexFailed       ErrorCode = "EVENT_INDEX_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeCRMSyncFailed          ErrorCode = "CRM_SYNC_FAILED"
	ErrCodeAIGenerationFailed     ErrorCode = "AI_GENERATION_FAILED"
	ErrCodeAITimeout              ErrorCode = "AI_TIMEOUT"
	ErrCodeDocumentRenderFailed   ErrorCode = "DOCUMENT_RENDER_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error metadata and returns the error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError carries per-field messages in Metadata["errors"].
func NewValidationError(fieldErrors map[string]string) *StandardError {
	return newError(ErrCodeValidationFailed, "Validation failed", "", false).
		WithMetadata("errors", fieldErrors)
}

func NewInvalidPayloadError(details string) *StandardError {
	return newError(ErrCodeInvalidPayload, "Invalid request payload", details, false)
}

func NewMissingFieldsError(fields ...string) *StandardError {
	return newError(ErrCodeMissingFields, "Missing required fields", strings.Join(fields, ", "), false)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Session not found", sessionID, false)
}

func NewSessionStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Session storage unavailable", err.Error(), true)
}

func NewInvalidStepError(step string) *StandardError {
	return newError(ErrCodeInvalidStep, "Unknown wizard step", step, false)
}

func NewStepNotAllowedError(from, to string) *StandardError {
	return newError(ErrCodeStepNotAllowed, "Step is not reachable yet", fmt.Sprintf("%s -> %s", from, to), false)
}

func NewStepIncompleteError(step string) *StandardError {
	return newError(ErrCodeStepIncomplete, "Current step is not complete", step, false)
}

func NewQuoteNotReadyError(step string) *StandardError {
	return newError(ErrCodeQuoteNotReady, "Quote is available on the result step only", step, false)
}

func NewLeadCapturedError(sessionID string) *StandardError {
	return newError(ErrCodeLeadCaptured, "Contact details were already submitted", sessionID, false)
}

func NewIndustryNotFoundError(slug string) *StandardError {
	return newError(ErrCodeIndustryNotFound, "Unknown industry", slug, false)
}

func NewBudgetNotFoundError(budget string) *StandardError {
	return newError(ErrCodeBudgetNotFound, "Unknown budget range", budget, false)
}

func NewStyleNotFoundError(style string) *StandardError {
	return newError(ErrCodeStyleNotFound, "Unknown website style", style, false)
}

func NewModuleNotFoundError(moduleID string) *StandardError {
	return newError(ErrCodeModuleNotFound, "Unknown module", moduleID, false)
}

func NewModuleNotAvailableError(moduleID, industry string) *StandardError {
	return newError(ErrCodeModuleNotAvailable, "Module is not offered for the selected industry",
		fmt.Sprintf("%s (%s)", moduleID, industry), false)
}

func NewDatabaseInsertFailedError(err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Failed to insert record", err.Error(), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, fmt.Sprintf("Failed to send %s notification", channel), err.Error(), true)
}

func NewAIGenerationFailedError(err error) *StandardError {
	return newError(ErrCodeAIGenerationFailed, "AI email generation failed", err.Error(), true)
}

func NewDocumentRenderFailedError(err error) *StandardError {
	return newError(ErrCodeDocumentRenderFailed, "Failed to generate quote document", err.Error(), false)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError("EXTERNAL_SERVICE_ERROR", fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Internal server error", err.Error(), false)
}

// ==========================
// 3. HTTP Mapping
// ==========================

// HTTPStatusMapping maps error codes to response status codes.
var HTTPStatusMapping = map[ErrorCode]int{
	ErrCodeValidationFailed:   http.StatusUnprocessableEntity,
	ErrCodeInvalidPayload:     http.StatusBadRequest,
	ErrCodeMissingFields:      http.StatusBadRequest,
	ErrCodeSessionNotFound:    http.StatusNotFound,
	ErrCodeSessionStoreFailed: http.StatusServiceUnavailable,
	ErrCodeInvalidStep:        http.StatusBadRequest,
	ErrCodeStepNotAllowed:     http.StatusConflict,
	ErrCodeStepIncomplete:     http.StatusConflict,
	ErrCodeQuoteNotReady:      http.StatusConflict,
	ErrCodeLeadCaptured:       http.StatusConflict,
	ErrCodeIndustryNotFound:   http.StatusBadRequest,
	ErrCodeBudgetNotFound:     http.StatusBadRequest,
	ErrCodeStyleNotFound:      http.StatusBadRequest,
	ErrCodeModuleNotFound:     http.StatusNotFound,
	ErrCodeModuleNotAvailable: http.StatusBadRequest,

	ErrCodeDatabaseConnectionFailed: http.StatusServiceUnavailable,
	ErrCodeDatabaseInsertFailed:     http.StatusInternalServerError,
	ErrCodeDocumentRenderFailed:     http.StatusInternalServerError,
	ErrCodeInternal:                 http.StatusInternalServerError,
}

// HTTPStatus returns the response status for a code, 500 when unmapped.
func HTTPStatus(code ErrorCode) int {
	if status, ok := HTTPStatusMapping[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// GetRetryCount returns how many times a caller may retry an operation
// that failed with code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeSessionStoreFailed,
		ErrCodeWebhookRelayFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCRMSyncFailed:
		return 3

	case ErrCodeEventIndexFailed:
		return 2

	case ErrCodeAIGenerationFailed, ErrCodeAITimeout:
		return 0 // canned emails replace the call

	default:
		return 0
	}
}

// ==========================
// 4. Utility Functions
// ==========================

// AsStandardError unwraps err into a StandardError, wrapping unknown errors
// as INTERNAL_ERROR. A nil err yields nil.
func AsStandardError(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "SESSION"), strings.Contains(codeStr, "STEP"), strings.Contains(codeStr, "QUOTE"),
		strings.Contains(codeStr, "LEAD"):
		return "WIZARD"
	case strings.Contains(codeStr, "INDUSTRY"), strings.Contains(codeStr, "BUDGET"),
		strings.Contains(codeStr, "STYLE"), strings.Contains(codeStr, "MODULE"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE"):
		return "DATABASE"
	case strings.Contains(codeStr, "WEBHOOK"), strings.Contains(codeStr, "INDEX"):
		return "RELAY"
	case strings.Contains(codeStr, "NOTIFICATION"), strings.Contains(codeStr, "CRM"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "AI_"):
		return "AI"
	case strings.Contains(codeStr, "DOCUMENT"):
		return "DOCUMENT"
	case strings.Contains(codeStr, "INVALID"), strings.Contains(codeStr, "VALIDATION"), strings.Contains(codeStr, "MISSING"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
