// Package common defines shared sentinel errors and small random helpers used
// across the userholder packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Account construction errors.
	ErrBlankFirstName    = errors.New("first name must not be blank")
	ErrMissingIdentity   = errors.New("email or phone must not be blank")
	ErrInvalidEmail      = errors.New("email must contain @")
	ErrInvalidPhone      = errors.New("phone must start with + and contain 11 digits")
	ErrInvalidNameFormat = errors.New("full name must contain only first name and last name")
	ErrBlankPassword     = errors.New("password must not be blank")

	// Credential errors.
	ErrPasswordMismatch = errors.New("the entered password does not match the current password")

	// Registry errors.
	ErrDuplicateLogin = errors.New("a user with this login already exists")
	ErrUnknownLogin   = errors.New("a user with this login does not exist")

	// Import errors.
	ErrInvalidRecord = errors.New("invalid import record")
)
