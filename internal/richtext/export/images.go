package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// ImageSource открывает изображение документа. Возвращает содержимое и MIME-тип.
type ImageSource interface {
	OpenImage(ctx context.Context, src *url.URL) (io.ReadCloser, string, error)
}

// HTTPImageSource загружает изображения по HTTP с повторными попытками.
// Относительные адреса разрешаются относительно baseURL.
type HTTPImageSource struct {
	client  *retryablehttp.Client
	baseURL *url.URL
}

func NewHTTPImageSource(baseURL *url.URL) *HTTPImageSource {
	cl := retryablehttp.NewClient()
	cl.RetryMax = 3
	cl.RetryWaitMin = time.Millisecond * 500
	cl.RetryWaitMax = time.Second * 5
	cl.HTTPClient.Timeout = time.Second * 30
	cl.Logger = slog.Default()

	return &HTTPImageSource{client: cl, baseURL: baseURL}
}

func (s *HTTPImageSource) resolve(src *url.URL) *url.URL {
	if src.IsAbs() || s.baseURL == nil {
		return src
	}
	return s.baseURL.ResolveReference(src)
}

func (s *HTTPImageSource) OpenImage(ctx context.Context, src *url.URL) (io.ReadCloser, string, error) {
	u := s.resolve(src)
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported image url scheme %q", u.Scheme)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("get image %s: status %d", u, resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// ChainImageSource пробует источники по порядку до первого успешного.
type ChainImageSource []ImageSource

func (c ChainImageSource) OpenImage(ctx context.Context, src *url.URL) (io.ReadCloser, string, error) {
	var lastErr error = fmt.Errorf("no image source for %s", src)
	for _, s := range c {
		r, mime, err := s.OpenImage(ctx, src)
		if err == nil {
			return r, mime, nil
		}
		lastErr = err
	}
	return nil, "", lastErr
}
