package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateIdentity is returned when a registration collides with an
	// existing non-rejected record's email or phone pair.
	ErrDuplicateIdentity = errors.New("email or phone number already registered")
	// ErrPermanentlyBlocked is returned when a registration email matches a
	// previously rejected record.
	ErrPermanentlyBlocked = errors.New("registration for this email has been rejected")
	// ErrUserNotFound is returned when an operation targets a nonexistent record.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoChange is returned when a status or role update requests the current value.
	ErrNoChange = errors.New("no change requested")
	// ErrStorageUnavailable is returned when the record store cannot persist a write.
	ErrStorageUnavailable = errors.New("record store unavailable")
	// ErrInvalidCredentials is returned when no record matches the identifier and credential.
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	// ErrAccountPending is returned when an authenticated record is still awaiting approval.
	ErrAccountPending = errors.New("account is pending approval")
	// ErrAccountRejected is returned when an authenticated record was rejected.
	ErrAccountRejected = errors.New("account registration has been rejected")
	// ErrAccountDeactivated is returned when an authenticated record is deactivated.
	ErrAccountDeactivated = errors.New("account is deactivated")
	// ErrInvalidTransition is returned when a status change violates the lifecycle state machine.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrInvalidStatus is returned when a status value is outside the canonical set.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrInvalidRole is returned when a role value is outside the canonical set.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateIdentity):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_IDENTITY")
	case errors.Is(err, ErrPermanentlyBlocked):
		return NewHTTPError(http.StatusForbidden, err.Error(), "PERMANENTLY_BLOCKED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNoChange):
		return NewHTTPError(http.StatusConflict, err.Error(), "NO_CHANGE")
	case errors.Is(err, ErrStorageUnavailable):
		return NewHTTPError(http.StatusServiceUnavailable, err.Error(), "STORAGE_UNAVAILABLE")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrAccountPending):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_PENDING")
	case errors.Is(err, ErrAccountRejected):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_REJECTED")
	case errors.Is(err, ErrAccountDeactivated):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_DEACTIVATED")
	case errors.Is(err, ErrInvalidTransition):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_TRANSITION")
	case errors.Is(err, ErrInvalidStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
