package apperrors

// ErrorCode is the machine-readable code carried in every error envelope.
type ErrorCode string

const (
	// System
	CodeInternalError     ErrorCode = "INTERNAL_ERROR"
	CodeDependencyFailure ErrorCode = "DEPENDENCY_FAILURE"
	CodeNotReady          ErrorCode = "NOT_READY"

	// Business logic
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	CodeRoleNotFound     ErrorCode = "ROLE_NOT_FOUND"
	CodeDuplicateUser    ErrorCode = "DUPLICATE_USER"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)
