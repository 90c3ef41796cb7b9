package service

import "errors"

// Token and credential failure modes. Handlers map these to HTTP statuses;
// services never write responses themselves.
var (
	ErrTokenMalformed    = errors.New("token is malformed")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenRevoked      = errors.New("token revoked")
	ErrWrongTokenType    = errors.New("wrong token type")
	ErrMissingCredential = errors.New("missing credential")
	ErrInvalidCredential = errors.New("invalid login id or password")
	ErrUnknownSession    = errors.New("unknown session")
)
