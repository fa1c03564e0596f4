package auth

import "errors"

// Failure classes surfaced by the credential service. Handlers map
// these to HTTP statuses; anything unlisted is an unexpected error.
var (
	ErrInvalidPhone       = errors.New("phone must start with 01 and contain 11 digits")
	ErrInvalidPassword    = errors.New("password must be exactly 6 digits")
	ErrMissingName        = errors.New("name is required for signup")
	ErrDuplicatePhone     = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("phone number or password is incorrect")
	ErrMisconfigured      = errors.New("server configuration error")
)
