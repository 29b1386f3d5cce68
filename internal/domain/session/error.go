package session

import "errors"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrEmptySecret  = errors.New("signing secret is empty")
)
