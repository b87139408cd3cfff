package practicum

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var gotAuth, gotFrom string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotFrom = r.URL.Query().Get("from_date")
		_, _ = io.WriteString(w, `{"homeworks":[{"homework_name":"proj1","status":"rejected"}],"current_date":1700000000}`)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{Endpoint: srv.URL + "/api/user_api/homework_statuses/", Token: "secret"})
	require.NoError(t, err)

	body, err := c.Fetch(context.Background(), 1234)
	require.NoError(t, err)
	assert.Equal(t, "OAuth secret", gotAuth)
	assert.Equal(t, "1234", gotFrom)

	m, ok := body.(map[string]any)
	require.True(t, ok)
	assert.Len(t, m["homeworks"], 1)
}

func TestFetchErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		status int
		body   string
		op     string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"code":"not_authenticated"}`, op: "status"},
		{name: "server error", status: http.StatusInternalServerError, body: "", op: "status"},
		{name: "bad json", status: http.StatusOK, body: `{"homeworks": [`, op: "decode"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			c, err := New(Config{Endpoint: srv.URL, Token: "secret"})
			require.NoError(t, err)

			_, err = c.Fetch(context.Background(), 0)
			var fe *FetchError
			require.True(t, errors.As(err, &fe), "want *FetchError, got %v", err)
			assert.Equal(t, tt.op, fe.Op)
			if tt.op == "status" {
				assert.Equal(t, tt.status, fe.StatusCode)
			}
			assert.NotContains(t, err.Error(), "secret")
		})
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	c, err := New(Config{Endpoint: endpoint, Token: "secret"})
	require.NoError(t, err)

	_, err = c.Fetch(context.Background(), 0)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "request", fe.Op)
	assert.NotNil(t, fe.Unwrap())
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestSnippetKeepsValidUTF8(t *testing.T) {
	t.Parallel()
	body := strings.Repeat("a", maxErrBody-1) + "Ошибка сервера"
	got := snippet([]byte(body))

	assert.True(t, utf8.ValidString(got), "snippet %q is not valid UTF-8", got)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), maxErrBody+len("..."))
	assert.Equal(t, "short", snippet([]byte("  short  ")))
}
