package application

import "errors"

// Failure kinds surfaced to the API layer. Handlers map these onto HTTP
// status codes; anything unrecognized becomes a 500.
var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("wrong password")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUpstream           = errors.New("summarization failed")
)
