package apperrors

// Error codes grouped by concern.
const (
	// Validation
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeFileTooLarge     ErrorCode = "FILE_TOO_LARGE"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Resources
	CodeApplicationNotFound ErrorCode = "APPLICATION_NOT_FOUND"
	CodeFileNotFound        ErrorCode = "FILE_NOT_FOUND"

	// Business rules
	CodeForbidden ErrorCode = "FORBIDDEN"
	CodeDuplicate ErrorCode = "DUPLICATE"

	// System
	CodeInternalError   ErrorCode = "INTERNAL_ERROR"
	CodeStorageError    ErrorCode = "STORAGE_ERROR"
	CodeConversionError ErrorCode = "CONVERSION_ERROR"
)
