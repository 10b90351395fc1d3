package models

import "errors"

// Domain errors, mapped to HTTP statuses at the controller layer.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict with current state")
)
