package utils

import "errors"

// Common application errors used across services and repositories.
var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateSKU       = errors.New("sku already exists")
	ErrDuplicateCode      = errors.New("code already exists")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoleNotAllowed     = errors.New("access denied for this role")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrValidation         = errors.New("validation failed")
)
