package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrInvalidThrottle   = errors.New("throttle must be a non-negative duration such as 500ms")
	ErrNoCredentials     = errors.New("no credentials configured, use 'zefix login' first")
	ErrUsernameRequired  = errors.New("username is required")
	ErrUnsupportedOutput = errors.New("unsupported output format")
)

// Argument errors.
var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidLegalForm = errors.New("invalid legal form ID")
)
