// Package domain defines domain-level errors for the companies feature.
package domain

import "errors"

// ErrNotFound indicates the registry has no record for the requested company or officer.
var ErrNotFound = errors.New("registry record not found")
