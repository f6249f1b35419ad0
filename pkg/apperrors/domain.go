package apperrors

import (
	"net/http"
)

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrRoleNotFound is returned when a registration names a role outside the closed set.
var ErrRoleNotFound = New(
	CodeRoleNotFound,
	"auth",
	"Role not found",
	http.StatusBadRequest,
)

var ErrDuplicateUser = New(
	CodeDuplicateUser,
	"auth",
	"A user with this email already exists",
	http.StatusConflict,
)

var ErrAdminSelfRegistration = New(
	CodeForbidden,
	"auth",
	"Admin accounts cannot be self-registered",
	http.StatusForbidden,
)

// --- Jobs ---

var ErrJobNotFound = New(
	CodeNotFound,
	"job",
	"Job not found",
	http.StatusNotFound,
)

var ErrJobAccessDenied = New(
	CodeForbidden,
	"job",
	"You do not have access to this job",
	http.StatusForbidden,
)

var ErrJobNotEditable = New(
	CodeConflict,
	"job",
	"Job can no longer be changed in its current status",
	http.StatusConflict,
)

var ErrInvalidJobStatus = New(
	CodeInvalidStatus,
	"job",
	"Operation not allowed for the current job status",
	http.StatusConflict,
)

var ErrCustomerNotFound = New(
	CodeNotFound,
	"user",
	"Customer not found",
	http.StatusNotFound,
)

// --- Professionals ---

var ErrProfessionalNotFound = New(
	CodeNotFound,
	"professional",
	"Professional not found",
	http.StatusNotFound,
)

var ErrProfessionalNotVerified = New(
	CodeForbidden,
	"professional",
	"Professional is not verified",
	http.StatusForbidden,
)

var ErrAlreadyDecided = New(
	CodeConflict,
	"professional",
	"Verification decision already recorded",
	http.StatusConflict,
)

// --- Matching ---

var ErrProfessionalNotEligible = New(
	CodeConflict,
	"matching",
	"Professional cannot be finalised for this job",
	http.StatusConflict,
)

var ErrProfessionalTypeTaken = New(
	CodeConflict,
	"matching",
	"A professional of this type is already finalised for this job",
	http.StatusConflict,
)

// --- System ---

var ErrNotReady = New(
	CodeNotReady,
	"system",
	"Service is starting up",
	http.StatusServiceUnavailable,
)
