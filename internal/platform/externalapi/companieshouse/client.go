package companieshouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"company_valuation/internal/feature/companies/domain"
	"company_valuation/internal/feature/companies/domain/entity"
	"company_valuation/internal/platform/externalapi/companieshouse/dto"
	"company_valuation/internal/shared/ratelimiter"
)

// ErrOfficerIDRequired is returned when an appointments lookup is made without an officer id.
var ErrOfficerIDRequired = errors.New("officer id is required")

// HTTPError is returned when the registry answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	URL        string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("companies house http %d: %s", e.StatusCode, e.URL)
}

// Unwrap exposes domain.ErrNotFound for 404 responses.
func (e *HTTPError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return nil
}

// Client はCompanies House公開データAPIのクライアントです。
// すべての呼び出しはレートリミッターを通過します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// NewClient は指定された設定・HTTPクライアント・レートリミッターでClientを生成します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.DocumentBaseURL == "" {
		cfg.DocumentBaseURL = DefaultDocumentBaseURL
		if cfg.DocumentHosts == nil {
			cfg.DocumentHosts = []string{DefaultFrontendDocumentHost}
		}
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = DefaultMaxDocumentBytes
	}
	if limiter == nil {
		limiter = ratelimiter.Unlimited{}
	}
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// SearchCompanies は企業名・企業番号で企業を検索します（最大10件）。
func (c *Client) SearchCompanies(ctx context.Context, query string) (*entity.CompanySearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("items_per_page", "10")

	var body dto.CompanySearchResponse
	if err := c.getJSON(ctx, "/search/companies?"+q.Encode(), &body); err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}

	items := make([]entity.CompanySummary, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, entity.CompanySummary{
			Title:          it.Title,
			CompanyNumber:  it.CompanyNumber,
			CompanyStatus:  it.CompanyStatus,
			DateOfCreation: it.DateOfCreation,
			Kind:           it.Kind,
			Address:        toAddress(it.Address),
		})
	}
	return &entity.CompanySearchResult{Items: items, TotalResults: body.TotalResults}, nil
}

// GetCompanyProfile は企業プロフィールを取得します。
func (c *Client) GetCompanyProfile(ctx context.Context, companyNumber string) (*entity.CompanyProfile, error) {
	var body dto.CompanyProfileResponse
	if err := c.getJSON(ctx, "/company/"+url.PathEscape(companyNumber), &body); err != nil {
		return nil, fmt.Errorf("get company profile %s: %w", companyNumber, err)
	}

	return &entity.CompanyProfile{
		CompanyName:             body.CompanyName,
		CompanyNumber:           body.CompanyNumber,
		CompanyStatus:           body.CompanyStatus,
		Type:                    body.Type,
		DateOfCreation:          body.DateOfCreation,
		DateOfCessation:         body.DateOfCessation,
		RegisteredOfficeAddress: toAddress(body.RegisteredOfficeAddress),
		LastAccounts: entity.LastAccounts{
			MadeUpTo: body.Accounts.LastAccounts.MadeUpTo,
			Type:     body.Accounts.LastAccounts.Type,
		},
		AccountsOverdue: body.Accounts.Overdue,
		SICCodes:        body.SICCodes,
	}, nil
}

// GetCompanyOfficers は企業の役員一覧を取得します。
// 役員情報が非公開の企業もあるため、非2xxの応答は空の一覧として扱います。
func (c *Client) GetCompanyOfficers(ctx context.Context, companyNumber string) (*entity.OfficerList, error) {
	var body dto.OfficerListResponse
	err := c.getJSON(ctx, "/company/"+url.PathEscape(companyNumber)+"/officers", &body)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			slog.Warn("could not fetch officers, returning empty list",
				"company_number", companyNumber, "status", httpErr.StatusCode)
			return &entity.OfficerList{Items: []entity.Officer{}}, nil
		}
		return nil, fmt.Errorf("get company officers %s: %w", companyNumber, err)
	}

	items := make([]entity.Officer, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, entity.Officer{
			Name:             it.Name,
			OfficerRole:      it.OfficerRole,
			AppointedOn:      it.AppointedOn,
			ResignedOn:       it.ResignedOn,
			AppointmentsLink: it.Links.Officer.Appointments,
		})
	}
	return &entity.OfficerList{Items: items, ActiveCount: body.ActiveCount}, nil
}

// GetFilingHistory は企業のファイリング履歴を取得します。
func (c *Client) GetFilingHistory(ctx context.Context, companyNumber string) (*entity.FilingHistory, error) {
	var body dto.FilingHistoryResponse
	if err := c.getJSON(ctx, "/company/"+url.PathEscape(companyNumber)+"/filing-history", &body); err != nil {
		return nil, fmt.Errorf("get filing history %s: %w", companyNumber, err)
	}

	items := make([]entity.FilingRecord, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, entity.FilingRecord{
			Category:     it.Category,
			Description:  it.Description,
			Type:         it.Type,
			Date:         it.Date,
			DocumentLink: it.Links.DocumentMetadata,
		})
	}
	return &entity.FilingHistory{Items: items, Status: body.FilingHistoryStatus}, nil
}

// SearchOfficers は役員名で役員を検索します（最大20件）。
func (c *Client) SearchOfficers(ctx context.Context, query string) (*entity.OfficerSearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("items_per_page", "20")

	var body dto.OfficerSearchResponse
	if err := c.getJSON(ctx, "/search/officers?"+q.Encode(), &body); err != nil {
		return nil, fmt.Errorf("search officers: %w", err)
	}

	items := make([]entity.OfficerSummary, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, entity.OfficerSummary{
			Title:            it.Title,
			Kind:             it.Kind,
			SelfLink:         it.Links.Self,
			AppointmentCount: it.AppointmentCount,
			DateOfBirth:      toPartialDate(it.DateOfBirth),
			Address:          toAddress(it.Address),
		})
	}
	return &entity.OfficerSearchResult{Items: items, TotalResults: body.TotalResults}, nil
}

// GetOfficerAppointments は役員の任命一覧を取得します（最大50件）。
func (c *Client) GetOfficerAppointments(ctx context.Context, officerID string) (*entity.OfficerAppointments, error) {
	if strings.TrimSpace(officerID) == "" {
		return nil, ErrOfficerIDRequired
	}

	var body dto.OfficerAppointmentsResponse
	path := "/officers/" + url.PathEscape(officerID) + "/appointments?items_per_page=50"
	if err := c.getJSON(ctx, path, &body); err != nil {
		return nil, fmt.Errorf("get officer appointments %s: %w", officerID, err)
	}

	items := make([]entity.Appointment, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, entity.Appointment{
			CompanyName:   it.AppointedTo.CompanyName,
			CompanyNumber: it.AppointedTo.CompanyNumber,
			CompanyStatus: it.AppointedTo.CompanyStatus,
			OfficerRole:   it.OfficerRole,
			AppointedOn:   it.AppointedOn,
			ResignedOn:    it.ResignedOn,
		})
	}
	return &entity.OfficerAppointments{
		Name:         body.Name,
		TotalResults: body.TotalResults,
		DateOfBirth:  toPartialDate(body.DateOfBirth),
		Items:        items,
	}, nil
}

// getJSON はpathにGETリクエストを送り、レスポンスボディをoutにデコードします。
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.APIKey, "")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return &HTTPError{StatusCode: res.StatusCode, URL: u}
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func toAddress(a dto.Address) entity.Address {
	return entity.Address{
		Premises:     a.Premises,
		AddressLine1: a.AddressLine1,
		Locality:     a.Locality,
		PostalCode:   a.PostalCode,
	}
}

func toPartialDate(d *dto.PartialDate) *entity.PartialDate {
	if d == nil {
		return nil
	}
	return &entity.PartialDate{Month: d.Month, Year: d.Year}
}
