package apperrors

import (
	"errors"
	"fmt"
)

// Failure classes shared by the gateways and the gallery engine. Callers
// match with errors.Is; wrapped messages carry the human-readable detail.
var (
	// ErrNotFound: a photo, album or chunk referenced by id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConfigurationMissing: a gateway is missing required configuration
	// and was never able to start the operation.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrRemoteUnavailable: the document store or media service is
	// unreachable or returned a non-success response.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrUploadRejected: the media service explicitly refused the asset.
	ErrUploadRejected = errors.New("upload rejected")

	// ErrValidationFailed: a caller-side precondition was not met.
	ErrValidationFailed = errors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with a formatted detail message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// ConfigurationMissingf wraps ErrConfigurationMissing with a detail message.
func ConfigurationMissingf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfigurationMissing, fmt.Sprintf(format, args...))
}

// RemoteUnavailablef wraps ErrRemoteUnavailable with a detail message.
func RemoteUnavailablef(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRemoteUnavailable, fmt.Sprintf(format, args...))
}

// UploadRejectedf wraps ErrUploadRejected with a detail message, typically
// the remote-reported reason.
func UploadRejectedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUploadRejected, fmt.Sprintf(format, args...))
}

// ValidationFailedf wraps ErrValidationFailed with a detail message.
func ValidationFailedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
