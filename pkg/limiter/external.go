package limiter

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gofrs/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	anonymousDocument = "anonymous"
	remainHeader      = "X-Entity-Remain"
)

// ExternalLimiter спрашивает разрешение у сервиса ограничений. Ответ 200 разрешает действие, остаток передается в заголовке X-Entity-Remain.
// Если сервис недоступен, загрузка запрещается.
type ExternalLimiter struct {
	host   *url.URL
	client *retryablehttp.Client
}

func NewExternalLimiter(host *url.URL) *ExternalLimiter {
	cl := retryablehttp.NewClient()
	cl.RetryMax = 2
	cl.RetryWaitMax = time.Second
	cl.HTTPClient.Timeout = 5 * time.Second
	cl.Logger = nil
	return &ExternalLimiter{host: host, client: cl}
}

func (c ExternalLimiter) CanAddAttachment(ctx context.Context, documentId uuid.NullUUID, size int64) bool {
	u := c.host.ResolveReference(&url.URL{
		Path:     "/can/add/document/" + documentPath(documentId) + "/attachment",
		RawQuery: url.Values{"size": {strconv.FormatInt(size, 10)}}.Encode(),
	})
	resp, err := c.do(ctx, u)
	if err != nil {
		slog.Error("Request access rule", "err", err)
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c ExternalLimiter) GetRemainingAttachments(ctx context.Context, documentId uuid.NullUUID) int {
	u := c.host.ResolveReference(&url.URL{Path: "/remain/document/" + documentPath(documentId) + "/attachments"})
	resp, err := c.do(ctx, u)
	if err != nil {
		slog.Error("Request remains", "err", err)
		return -1
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return -1
	}

	remain, err := strconv.Atoi(resp.Header.Get(remainHeader))
	if err != nil {
		slog.Error("Parse remain answer", "raw", resp.Header.Get(remainHeader), "err", err)
		return -1
	}
	return remain
}

func (c ExternalLimiter) do(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

func documentPath(id uuid.NullUUID) string {
	if !id.Valid {
		return anonymousDocument
	}
	return id.UUID.String()
}
