package auth

import "context"

type AuthService interface {
	// Login authenticates by document number and password and issues an
	// access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
