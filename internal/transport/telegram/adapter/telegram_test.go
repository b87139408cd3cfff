package adapter

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kit "homeworkbot/internal/transport"
	logx "homeworkbot/pkg/logx"
)

type fakeBotAPI struct {
	mu     sync.Mutex
	paths  []string
	bodies []string
	fail   bool
}

func (f *fakeBotAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.bodies = append(f.bodies, string(b))
	fail := f.fail
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if fail {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`)
		return
	}
	_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":42,"date":0,"chat":{"id":100500,"type":"private"}}}`)
}

func newTestAdapter(t *testing.T, api *fakeBotAPI) *Adapter {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	a, err := New(Config{Token: "123:abc", APIURL: srv.URL}, logx.Nop())
	require.NoError(t, err)
	return a
}

func TestNewRequiresToken(t *testing.T) {
	_, err := New(Config{Token: "  "}, logx.Nop())
	assert.Error(t, err)
}

func TestSendText(t *testing.T) {
	api := &fakeBotAPI{}
	a := newTestAdapter(t, api)

	ref, err := a.SendText(context.Background(), kit.ChatTarget{ChatID: 100500}, "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, 42, ref.MessageID)
	assert.Equal(t, int64(100500), ref.ChatID)

	require.Len(t, api.paths, 1)
	assert.Equal(t, "/bot123:abc/sendMessage", api.paths[0])
	assert.Contains(t, api.bodies[0], "hello")
}

func TestSendTextAPIError(t *testing.T) {
	api := &fakeBotAPI{fail: true}
	a := newTestAdapter(t, api)

	_, err := a.SendText(context.Background(), kit.ChatTarget{ChatID: 1}, "hello", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSendTextCanceled(t *testing.T) {
	api := &fakeBotAPI{}
	a := newTestAdapter(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := a.SendText(ctx, kit.ChatTarget{ChatID: 1}, "hello", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, api.paths)
}

func TestSplitTelegramText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"short"}, splitTelegramText("short", 10))

	line := strings.Repeat("а", 6)
	text := line + "\n" + line + "\n" + line
	chunks := splitTelegramText(text, 10)
	require.Len(t, chunks, 3)
	for _, c := range chunks {
		assert.Equal(t, line, c)
	}

	long := strings.Repeat("x", 25)
	chunks = splitTelegramText(long, 10)
	assert.Equal(t, []string{strings.Repeat("x", 10), strings.Repeat("x", 10), strings.Repeat("x", 5)}, chunks)
}
