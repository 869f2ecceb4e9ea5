package auth

import "errors"

// Token errors. The API maps all of them to 401.
var (
	ErrMissingToken     = errors.New("authentication token is missing")
	ErrInvalidToken     = errors.New("invalid authentication token")
	ErrExpiredToken     = errors.New("authentication token has expired")
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrWrongTokenType is returned for a well-signed token whose type claim is not "access".
	ErrWrongTokenType = errors.New("wrong token type")
)
