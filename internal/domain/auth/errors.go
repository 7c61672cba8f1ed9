package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid document number or password")
	ErrNoPasswordSet      = errors.New("employee has no password configured")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrHRAccessRequired   = errors.New("HR access required")
	ErrManagementAccess   = errors.New("management access required")
)
