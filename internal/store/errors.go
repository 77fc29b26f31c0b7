package store

import "errors"

// Store-level errors; handlers map these to HTTP status codes.
var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicateUser = errors.New("username taken")
)
