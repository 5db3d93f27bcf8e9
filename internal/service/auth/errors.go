package auth

import "errors"

// Token validation errors.
var (
	ErrMissingToken     = errors.New("authentication token is missing")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType is a correctly signed token whose type claim is not
	// TokenTypeAccess.
	ErrWrongTokenType = errors.New("wrong token type")
)

// Token issuance errors. They are deliberately distinct: the token endpoint
// reports an unknown username differently from a wrong password.
var (
	ErrInvalidUsername    = errors.New("invalid username")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
