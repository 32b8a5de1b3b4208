package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies an error category in API responses.
type ErrorCode string

// AppError is the application error carried from services up to the
// request boundary. HTTPCode and the wrapped Err never leave the server.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New constructs an AppError.
func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := *e
	clone.Err = err
	return &clone
}

// MarshalJSON keeps HTTPCode and the wrapped error out of response bodies.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Domain  string      `json:"domain"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Domain:  e.Domain,
		Message: e.Message,
		Details: e.Details,
	})
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined domain errors.
var (
	// Applications
	ErrApplicationNotFound    = New(CodeApplicationNotFound, "applications", "Application not found", http.StatusNotFound)
	ErrMissingRequiredFields  = New(CodeValidationFailed, "applications", "Missing required fields", http.StatusBadRequest)
	ErrInvalidStatus          = New(CodeInvalidStatus, "applications", "Invalid status", http.StatusBadRequest)
	ErrDuplicateApplication   = New(CodeDuplicate, "applications", "Duplicate application detected", http.StatusInternalServerError)
	ErrApplicationNotAccepted = New(CodeForbidden, "offers", "Application is not accepted", http.StatusForbidden)

	// Offer documents
	ErrFileNotFound = New(CodeFileNotFound, "offers", "File not found", http.StatusNotFound)
)

// InternalError wraps an unexpected system error.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError creates a validation failure with field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", "Validation failed", http.StatusBadRequest).WithDetails(details)
}

// StorageError wraps a filesystem failure that is not tolerated.
func StorageError(err error) *AppError {
	return Wrap(err, CodeStorageError, "storage", "Storage operation failed", http.StatusInternalServerError)
}

// ConversionError wraps a failure of the external document conversion engine.
func ConversionError(err error) *AppError {
	return Wrap(err, CodeConversionError, "convert", "Document conversion failed", http.StatusInternalServerError)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, "request", message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeApplicationNotFound, "request", message, http.StatusNotFound)
}

func FileTooLarge(message string) *AppError {
	return New(CodeFileTooLarge, "uploads", message, http.StatusBadRequest)
}

func InvalidFileType(message string) *AppError {
	return New(CodeInvalidFileType, "uploads", message, http.StatusBadRequest)
}

func UnsupportedType(mimeType string) *AppError {
	return New(CodeInvalidFileType, "convert", fmt.Sprintf("Unsupported document type: %s", mimeType), http.StatusBadRequest)
}
