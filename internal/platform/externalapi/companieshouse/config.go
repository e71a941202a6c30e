// Package companieshouse provides a client for the Companies House public data and document APIs.
package companieshouse

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL is the public data API endpoint.
	DefaultBaseURL = "https://api.company-information.service.gov.uk"
	// DefaultDocumentBaseURL is the document API endpoint. Only this origin receives the API key for downloads.
	DefaultDocumentBaseURL = "https://document-api.company-information.service.gov.uk"
	// DefaultFrontendDocumentHost is the alternate document host used in filing history links.
	DefaultFrontendDocumentHost = "frontend-doc-api.company-information.service.gov.uk"

	// Companies House allows 600 requests per 5 minutes per key.
	DefaultRateLimit    = 600
	DefaultRateInterval = 5 * time.Minute

	// DefaultMaxDocumentBytes caps the size of a downloaded accounts document.
	DefaultMaxDocumentBytes int64 = 20 << 20
)

// Config holds configuration for the Companies House API client.
type Config struct {
	APIKey           string        // API key, sent as the basic auth username
	BaseURL          string        // Base URL for the public data API
	DocumentBaseURL  string        // Origin that document links must match
	DocumentHosts    []string      // Additional hosts accepted on the DocumentBaseURL scheme
	Timeout          time.Duration // HTTP request timeout
	RateLimit        int           // Requests allowed per RateInterval
	RateInterval     time.Duration // Rate limit window
	MaxDocumentBytes int64         // Upper bound for document downloads
}

// LoadConfig loads Companies House configuration from environment variables.
func LoadConfig() Config {
	baseURL := os.Getenv("COMPANIES_HOUSE_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	docURL := os.Getenv("COMPANIES_HOUSE_DOCUMENT_URL")
	var docHosts []string
	if docURL == "" {
		docURL = DefaultDocumentBaseURL
		docHosts = []string{DefaultFrontendDocumentHost}
	}
	return Config{
		APIKey:           os.Getenv("COMPANIES_HOUSE_API_KEY"),
		BaseURL:          baseURL,
		DocumentBaseURL:  docURL,
		DocumentHosts:    docHosts,
		Timeout:          15 * time.Second,
		RateLimit:        DefaultRateLimit,
		RateInterval:     DefaultRateInterval,
		MaxDocumentBytes: DefaultMaxDocumentBytes,
	}
}
