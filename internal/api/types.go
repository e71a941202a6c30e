// Package api defines the JSON request and response bodies of the HTTP API.
package api

import (
	"encoding/json"
	"time"
)

// ErrorResponse is the body of a generic failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of a generic success without payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// MeResponse describes the authenticated caller.
type MeResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// SignupRequest is the body of POST /signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ValuationRequest is the optional body of POST /v1/companies/:number/valuation.
type ValuationRequest struct {
	DocumentURL   string `json:"document_url"`
	CompanyStatus string `json:"company_status"`
}

// ValuationResponse is the structured result of a valuation request.
// Data carries the analysis as stored in the valuation cache.
type ValuationResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

// Address is a postal address.
type Address struct {
	Premises     string `json:"premises,omitempty"`
	AddressLine1 string `json:"address_line_1"`
	Locality     string `json:"locality"`
	PostalCode   string `json:"postal_code"`
}

// CompanySummary is one company search hit.
type CompanySummary struct {
	Title          string  `json:"title"`
	CompanyNumber  string  `json:"company_number"`
	CompanyStatus  string  `json:"company_status"`
	DateOfCreation string  `json:"date_of_creation"`
	Kind           string  `json:"kind"`
	Address        Address `json:"address"`
}

// CompanySearchResponse is the body of GET /v1/companies/search.
type CompanySearchResponse struct {
	Items        []CompanySummary `json:"items"`
	TotalResults int              `json:"total_results"`
}

// LastAccounts is the last accounts summary recorded on a company profile.
type LastAccounts struct {
	MadeUpTo string `json:"made_up_to"`
	Type     string `json:"type"`
}

// CompanyProfile is a company's registry profile.
type CompanyProfile struct {
	CompanyName             string       `json:"company_name"`
	CompanyNumber           string       `json:"company_number"`
	CompanyStatus           string       `json:"company_status"`
	Type                    string       `json:"type"`
	DateOfCreation          string       `json:"date_of_creation"`
	DateOfCessation         string       `json:"date_of_cessation,omitempty"`
	RegisteredOfficeAddress Address      `json:"registered_office_address"`
	LastAccounts            LastAccounts `json:"last_accounts"`
	AccountsOverdue         bool         `json:"accounts_overdue"`
	SICCodes                []string     `json:"sic_codes"`
}

// Officer is a company officer.
type Officer struct {
	Name        string `json:"name"`
	OfficerID   string `json:"officer_id,omitempty"`
	OfficerRole string `json:"officer_role"`
	AppointedOn string `json:"appointed_on"`
	ResignedOn  string `json:"resigned_on,omitempty"`
}

// OfficerList is a company's officers.
type OfficerList struct {
	Items       []Officer `json:"items"`
	ActiveCount int       `json:"active_count"`
}

// FilingRecord is one filing history entry.
type FilingRecord struct {
	Category     string `json:"category"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Date         string `json:"date"`
	DocumentLink string `json:"document_link,omitempty"`
}

// AccountsMetadata describes a company's latest accounts.
type AccountsMetadata struct {
	LastAccountsDate string `json:"last_accounts_date"`
	AccountsType     string `json:"accounts_type"`
	SourceLink       string `json:"source_link"`
}

// CompanyDetailResponse is the body of GET /v1/companies/:number.
type CompanyDetailResponse struct {
	Profile          CompanyProfile   `json:"profile"`
	Officers         OfficerList      `json:"officers"`
	FilingHistory    []FilingRecord   `json:"filing_history"`
	AccountsMetadata AccountsMetadata `json:"accounts_metadata"`
}

// PartialDate is a month/year date.
type PartialDate struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// OfficerSummary is one officer search hit.
type OfficerSummary struct {
	Title            string       `json:"title"`
	OfficerID        string       `json:"officer_id"`
	Kind             string       `json:"kind"`
	AppointmentCount int          `json:"appointment_count"`
	DateOfBirth      *PartialDate `json:"date_of_birth,omitempty"`
	Address          Address      `json:"address"`
}

// OfficerSearchResponse is the body of GET /v1/officers/search.
type OfficerSearchResponse struct {
	Items        []OfficerSummary `json:"items"`
	TotalResults int              `json:"total_results"`
}

// Appointment is one company an officer is appointed to.
type Appointment struct {
	CompanyName   string `json:"company_name"`
	CompanyNumber string `json:"company_number"`
	CompanyStatus string `json:"company_status"`
	OfficerRole   string `json:"officer_role"`
	AppointedOn   string `json:"appointed_on"`
	ResignedOn    string `json:"resigned_on,omitempty"`
}

// OfficerAppointmentsResponse is the body of GET /v1/officers/:id/appointments.
type OfficerAppointmentsResponse struct {
	Name         string        `json:"name"`
	TotalResults int           `json:"total_results"`
	DateOfBirth  *PartialDate  `json:"date_of_birth,omitempty"`
	Items        []Appointment `json:"items"`
}

// ComparisonMetric is one row of a side-by-side comparison.
// Winner is "A", "B", "DRAW" or null when the values are not comparable.
type ComparisonMetric struct {
	Label  string  `json:"label"`
	Key    string  `json:"key"`
	Format string  `json:"format"`
	ValueA any     `json:"value_a"`
	ValueB any     `json:"value_b"`
	Winner *string `json:"winner"`
}

// ComparisonSide is one company of a comparison.
type ComparisonSide struct {
	Profile          CompanyProfile   `json:"profile"`
	AccountsMetadata AccountsMetadata `json:"accounts_metadata"`
	Analysis         any              `json:"analysis"`
}

// ComparisonResponse is the body of GET /v1/compare.
type ComparisonResponse struct {
	CompanyA           ComparisonSide     `json:"company_a"`
	CompanyB           ComparisonSide     `json:"company_b"`
	FinancialMetrics   []ComparisonMetric `json:"financial_metrics"`
	OperationalMetrics []ComparisonMetric `json:"operational_metrics"`
}

// VerdictRequest is the body of POST /v1/compare/verdict.
type VerdictRequest struct {
	NameA    string   `json:"name_a" binding:"required"`
	NameB    string   `json:"name_b" binding:"required"`
	MetricsA []string `json:"metrics_a"`
	MetricsB []string `json:"metrics_b"`
}

// VerdictResponse carries the AI verdict as markdown and rendered HTML.
type VerdictResponse struct {
	Success  bool   `json:"success"`
	Markdown string `json:"markdown,omitempty"`
	HTML     string `json:"html,omitempty"`
	Error    string `json:"error,omitempty"`
	Code     string `json:"code,omitempty"`
}

// AuditLog is one audit log entry.
type AuditLog struct {
	ID        string          `json:"id"`
	UserID    *uint           `json:"user_id"`
	UserEmail string          `json:"user_email,omitempty"`
	Action    string          `json:"action"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuditLogListResponse is the body of the audit log listings.
type AuditLogListResponse struct {
	Items []AuditLog `json:"items"`
}
