package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/aisa-it/richtext/internal/richtext/config"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestLog struct {
	mu   sync.Mutex
	uris []string
}

func (l *requestLog) add(uri string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.uris = append(l.uris, uri)
}

func (l *requestLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.uris...)
}

func newLimitsServer(t *testing.T) (*ExternalLimiter, *requestLog) {
	requests := &requestLog{}
	docId := uuid.Must(uuid.FromString("2b6f1e9c-7a31-4d8e-9c55-0e1f3a7b9d42"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.add(r.URL.RequestURI())
		switch r.URL.Path {
		case "/can/add/document/" + docId.String() + "/attachment":
			if r.URL.Query().Get("size") == "1024" {
				w.WriteHeader(http.StatusOK)
				return
			}
			w.WriteHeader(http.StatusForbidden)
		case "/remain/document/" + docId.String() + "/attachments":
			w.Header().Set(remainHeader, "7")
		case "/remain/document/anonymous/attachments":
			w.Header().Set(remainHeader, "many")
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	return NewExternalLimiter(u), requests
}

func TestExternalLimiter(t *testing.T) {
	l, requests := newLimitsServer(t)
	ctx := context.Background()
	docId := uuid.NullUUID{UUID: uuid.Must(uuid.FromString("2b6f1e9c-7a31-4d8e-9c55-0e1f3a7b9d42")), Valid: true}

	assert.True(t, l.CanAddAttachment(ctx, docId, 1024))
	assert.False(t, l.CanAddAttachment(ctx, docId, 4096))
	assert.False(t, l.CanAddAttachment(ctx, uuid.NullUUID{}, 1024))

	assert.Equal(t, 7, l.GetRemainingAttachments(ctx, docId))
	assert.Equal(t, -1, l.GetRemainingAttachments(ctx, uuid.NullUUID{}))

	assert.Contains(t, requests.list(), "/can/add/document/anonymous/attachment?size=1024")
}

func TestExternalLimiterUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	srv.Close()

	l := NewExternalLimiter(u)
	l.client.RetryMax = 0

	assert.False(t, l.CanAddAttachment(context.Background(), uuid.NullUUID{}, 1))
	assert.Equal(t, -1, l.GetRemainingAttachments(context.Background(), uuid.NullUUID{}))
}

func TestInit(t *testing.T) {
	t.Cleanup(func() { Limiter = CommunityLimiter{} })

	Init(&config.Config{})
	assert.IsType(t, CommunityLimiter{}, Limiter)
	assert.True(t, Limiter.CanAddAttachment(context.Background(), uuid.NullUUID{}, 1<<40))
	assert.Equal(t, Unlimited, Limiter.GetRemainingAttachments(context.Background(), uuid.NullUUID{}))

	Init(&config.Config{ExternalLimiter: &url.URL{Scheme: "http", Host: "limits.local"}})
	assert.IsType(t, &ExternalLimiter{}, Limiter)
}
