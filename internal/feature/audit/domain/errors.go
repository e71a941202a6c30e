// Package domain defines domain-level errors for the audit feature.
package domain

import "errors"

// ErrInvalidAction is returned when an audit entry is written without an action.
var ErrInvalidAction = errors.New("audit action is required")
