package domain

import "errors"

var (
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrInvalidInput           = errors.New("invalid input")
)
