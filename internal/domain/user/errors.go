package user

import "errors"

var (
	ErrInvalidToken            = errors.New("invalid token")
	ErrManagerAccessRequired   = errors.New("manager access required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
