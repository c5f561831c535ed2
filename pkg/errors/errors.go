package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppErrorType string

const (
	// ConfigError covers every validation failure listed as "Fatal" in the
	// configuration error taxonomy: missing or duplicate entities, malformed
	// distribution parameters, out-of-range correlation coefficients or
	// anomaly severities, and time window inconsistencies. Unknown
	// entity/metric references are ReferenceWarnings instead, and a
	// correlation matrix that is not positive-definite is repaired, not
	// rejected.
	ConfigError        AppErrorType = "CONFIG_ERROR"
	NotFoundError      AppErrorType = "NOT_FOUND_ERROR"
	InternalError      AppErrorType = "INTERNAL_ERROR"
	ServiceUnavailable AppErrorType = "SERVICE_UNAVAILABLE_ERROR"
)

type AppError struct {
	Err        error        `json:"-"`
	Type       AppErrorType `json:"type"`
	Message    string       `json:"message"`
	Details    string       `json:"details,omitempty"`
	StatusCode int          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errorType AppErrorType, message, details string, err error) *AppError {
	appErr := &AppError{
		Type:    errorType,
		Message: message,
		Details: details,
		Err:     err,
	}

	switch errorType {
	case ConfigError:
		appErr.StatusCode = http.StatusBadRequest
	case NotFoundError:
		appErr.StatusCode = http.StatusNotFound
	case ServiceUnavailable:
		appErr.StatusCode = http.StatusServiceUnavailable
	default:
		appErr.StatusCode = http.StatusInternalServerError
	}

	return appErr
}

// NewConfigError builds a fatal configuration error (spec §7.1). field
// names the offending config path (e.g. "correlations[2].coefficient") so
// callers can report precisely what failed validation.
func NewConfigError(field, message string) *AppError {
	return NewAppError(ConfigError, message, field, nil)
}

func NewNotFoundError(resource string) *AppError {
	return NewAppError(NotFoundError, resource+" not found", "", nil)
}

func NewInternalError(message string, err error) *AppError {
	return NewAppError(InternalError, message, "", err)
}

func NewServiceUnavailableError(message string) *AppError {
	return NewAppError(ServiceUnavailable, message, "", nil)
}

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func GetStatusCode(err error) int {
	if appErr, ok := IsAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func GetErrorType(err error) AppErrorType {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Type
	}
	return InternalError
}

func IsConfigError(err error) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Type == ConfigError
	}
	return false
}

func WrapConfigError(err error, field string) *AppError {
	return NewAppError(ConfigError, err.Error(), field, err)
}

func WrapInternalError(err error, message string) *AppError {
	return NewAppError(InternalError, message, "", err)
}

// ReferenceWarning is spec §7.2's non-fatal taxonomy: a correlation or
// dependency edge, an anomaly, or a change point naming an unknown metric
// key. Generation proceeds; GeneratorConfig.Validate collects the warnings
// and returns them to its caller. A change point outside the time window
// raises no warning; the pipeline skips it.
type ReferenceWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (w ReferenceWarning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

func NewReferenceWarning(field, message string) ReferenceWarning {
	return ReferenceWarning{Field: field, Message: message}
}
