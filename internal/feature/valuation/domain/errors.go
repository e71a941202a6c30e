// Package domain defines domain-level errors for the valuation feature.
package domain

import (
	"errors"
	"strings"
)

// Errors returned by the valuation pipeline.
// Callers match them with errors.Is; the concrete cause stays wrapped underneath.
var (
	// ErrNoAccountsFilingFound indicates the filing history has no statutory accounts filing.
	ErrNoAccountsFilingFound = errors.New("no accounts filing found")

	// ErrNoDocumentAvailable indicates neither the caller nor the filing supplied a document link.
	ErrNoDocumentAvailable = errors.New("no document available for accounts filing")

	// ErrDocumentFetch indicates the accounts document could not be downloaded.
	ErrDocumentFetch = errors.New("failed to fetch accounts document")

	// ErrAnalysisFormat indicates the AI analysis failed or returned an unusable reply.
	ErrAnalysisFormat = errors.New("AI analysis returned invalid format")

	// ErrRateLimitExceeded indicates the AI provider rejected the call because of quota limits.
	ErrRateLimitExceeded = errors.New("AI rate limit exceeded")

	// ErrCacheIO indicates the valuation cache could not be read or written.
	// The pipeline never surfaces it to callers.
	ErrCacheIO = errors.New("valuation cache io failed")

	// ErrCacheEntryNotFound indicates the company has no cached valuation yet.
	ErrCacheEntryNotFound = errors.New("valuation cache entry not found")
)

// rateLimitMarkers are substrings the AI provider uses to signal quota exhaustion.
var rateLimitMarkers = []string{"429", "Quota exceeded"}

// IsRateLimitMessage reports whether an error message from the AI provider signals a rate limit.
func IsRateLimitMessage(msg string) bool {
	for _, m := range rateLimitMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
