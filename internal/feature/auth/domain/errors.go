// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
var (
	// ErrUserAlreadyExists is returned during signup when the email is taken.
	ErrUserAlreadyExists = errors.New("user with this email already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned during login when email or password is invalid.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRole is returned when assigning a role that does not exist.
	ErrInvalidRole = errors.New("invalid role")
)
