package companieshouse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

const documentContentSuffix = "/content"

// ErrUntrustedDocumentURL is returned when a document link points outside the document API.
var ErrUntrustedDocumentURL = errors.New("document url is not on the companies house document api")

// FetchDocument はドキュメントAPIから決算書PDFを取得します。
// documentURLがメタデータのリンクの場合は "/content" を付与します。
// ドキュメントAPI以外のリンクにはリクエストを送らず ErrUntrustedDocumentURL を返します。
func (c *Client) FetchDocument(ctx context.Context, documentURL string) ([]byte, error) {
	if !c.IsTrustedDocumentURL(documentURL) {
		return nil, fmt.Errorf("%w: %s", ErrUntrustedDocumentURL, documentURL)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := ContentURL(documentURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.APIKey, "")
	req.Header.Set("Accept", "application/pdf")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch document: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		slog.Error("document fetch failed", "status", res.StatusCode, "url", u)
		return nil, &HTTPError{StatusCode: res.StatusCode, URL: u}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, c.cfg.MaxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if int64(len(body)) > c.cfg.MaxDocumentBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", c.cfg.MaxDocumentBytes)
	}
	return body, nil
}

// IsTrustedDocumentURL reports whether documentURL uses the document API scheme and one of its hosts.
// Links carrying credentials are never trusted.
func (c *Client) IsTrustedDocumentURL(documentURL string) bool {
	u, err := url.Parse(documentURL)
	if err != nil || u.User != nil || u.Host == "" {
		return false
	}
	base, err := url.Parse(c.cfg.DocumentBaseURL)
	if err != nil || !strings.EqualFold(u.Scheme, base.Scheme) {
		return false
	}
	if strings.EqualFold(u.Host, base.Host) {
		return true
	}
	for _, h := range c.cfg.DocumentHosts {
		if strings.EqualFold(u.Host, h) {
			return true
		}
	}
	return false
}

// ContentURL returns the download URL for a document metadata link.
func ContentURL(documentURL string) string {
	u := strings.TrimRight(documentURL, "/")
	if strings.HasSuffix(u, documentContentSuffix) {
		return u
	}
	return u + documentContentSuffix
}
