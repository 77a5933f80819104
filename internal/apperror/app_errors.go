package apperror

import "errors"

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidSession  = errors.New("invalid session id")
	ErrInvalidIntent   = errors.New("invalid intent")
)
