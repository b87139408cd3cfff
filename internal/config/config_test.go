package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) LookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

var fullEnv = map[string]string{
	EnvPracticumToken: "p-token",
	EnvTelegramToken:  "123:abc",
	EnvTelegramChatID: "-100500",
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEnvOnly(t *testing.T) {
	cfg, err := NewConfigManager("", envOf(fullEnv)).Load()
	require.NoError(t, err)
	assert.Equal(t, "p-token", cfg.Practicum.Token)
	assert.Equal(t, "-100500", cfg.Telegram.ChatID)
	assert.True(t, cfg.Poll.ReportErrorsEnabled())
}

func TestLoadReportsEveryMissingSecret(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		env     map[string]string
		missing []string
	}{
		{name: "none", env: map[string]string{}, missing: []string{EnvPracticumToken, EnvTelegramChatID, EnvTelegramToken}},
		{name: "only last missing", env: map[string]string{EnvPracticumToken: "a", EnvTelegramToken: "b"}, missing: []string{EnvTelegramChatID}},
		{name: "only first missing", env: map[string]string{EnvTelegramToken: "b", EnvTelegramChatID: "1"}, missing: []string{EnvPracticumToken}},
		{name: "blank counts as missing", env: map[string]string{EnvPracticumToken: "  ", EnvTelegramToken: "b", EnvTelegramChatID: "1"}, missing: []string{EnvPracticumToken}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConfigManager("", envOf(tt.env)).Load()
			var ms *MissingSecretsError
			require.True(t, errors.As(err, &ms), "want *MissingSecretsError, got %v", err)
			assert.Equal(t, tt.missing, ms.Missing)
		})
	}
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `
practicum:
  token: from-file
  timeout: 10s
telegram:
  token: "1:file"
  chat_id: "42"
poll:
  interval: 5m
  advance_cursor: true
  report_errors: false
logging:
  level: debug
  console: true
`)
	cfg, err := NewConfigManager(path, envOf(map[string]string{EnvPracticumToken: "from-env"})).Load()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Practicum.Token)
	assert.Equal(t, "1:file", cfg.Telegram.Token)
	assert.Equal(t, "5m", cfg.Poll.Interval)
	assert.True(t, cfg.Poll.AdvanceCursor)
	assert.False(t, cfg.Poll.ReportErrorsEnabled())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "config.json", `{"practicum": {"token": "x", "retry": 3}}`)
	_, err := NewConfigManager(path, envOf(fullEnv)).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retry")
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "chat id", body: `{"telegram": {"chat_id": "@channel"}}`, field: "telegram.chat_id"},
		{name: "interval", body: `{"poll": {"interval": "ten minutes"}}`, field: "poll.interval"},
		{name: "negative interval", body: `{"poll": {"interval": "-1s"}}`, field: "poll.interval"},
		{name: "endpoint", body: `{"practicum": {"endpoint": "not a url"}}`, field: "practicum.endpoint"},
		{name: "level", body: `{"logging": {"level": "loud"}}`, field: "logging.level"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env := map[string]string{EnvPracticumToken: "p", EnvTelegramToken: "t"}
			if tt.field != "telegram.chat_id" {
				env[EnvTelegramChatID] = "1"
			}
			path := writeFile(t, "config.json", tt.body)
			_, err := NewConfigManager(path, envOf(env)).Load()
			var ce *ConfigError
			require.True(t, errors.As(err, &ce), "want *ConfigError, got %v", err)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))
	assert.NoError(t, LoadDotEnv(""))

	key := "HOMEWORKBOT_TEST_DOTENV"
	path := writeFile(t, ".env", key+"=from-dotenv\n")
	t.Cleanup(func() { _ = os.Unsetenv(key) })
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-dotenv", os.Getenv(key))
}

func TestParseDurationOrDefault(t *testing.T) {
	t.Parallel()
	d, err := ParseDurationOrDefault("poll.interval", "", 600*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 600*time.Second, d)

	d, err = ParseDurationOrDefault("poll.interval", "90s", 600*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestSummarizeConfigChange(t *testing.T) {
	oldCfg := &Config{Logging: LoggingConfig{Level: "info"}, Telegram: TelegramConfig{Token: "secret"}}
	newCfg := &Config{Logging: LoggingConfig{Level: "debug"}, Telegram: TelegramConfig{Token: "secret"}}

	changed, attrs := SummarizeConfigChange(oldCfg, newCfg)
	assert.Equal(t, []string{"logging"}, changed)
	assert.NotEmpty(t, attrs)
	assert.True(t, HotReloadable("logging"))
	assert.False(t, HotReloadable("telegram"))
}

func TestWatchPublishesChanges(t *testing.T) {
	path := writeFile(t, "config.json", `{"logging": {"level": "info"}}`)
	m := NewConfigManager(path, envOf(fullEnv))
	_, err := m.Load()
	require.NoError(t, err)

	sub := m.Subscribe(1)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`{"logging": {"level": "debug"}}`), 0o600))

	select {
	case cfg := <-sub:
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, "debug", m.Get().Logging.Level)
	case <-time.After(5 * time.Second):
		t.Fatal("no config published")
	}
}

func TestWatchWithoutFile(t *testing.T) {
	assert.NoError(t, NewConfigManager("", envOf(fullEnv)).Watch(context.Background()))
}

func TestNotifierRateLimit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "omitted", body: `{}`, want: DefaultRatePerSec},
		{name: "explicit zero disables", body: `{"notifier": {"rate_per_sec": 0}}`, want: 0},
		{name: "explicit value", body: `{"notifier": {"rate_per_sec": 5}}`, want: 5},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := NewConfigManager(writeFile(t, "config.json", tt.body), envOf(fullEnv)).Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Notifier.RateLimit())
		})
	}

	_, err := NewConfigManager(writeFile(t, "config.json", `{"notifier": {"rate_per_sec": -1}}`), envOf(fullEnv)).Load()
	var ce *ConfigError
	require.True(t, errors.As(err, &ce), "want *ConfigError, got %v", err)
	assert.Equal(t, "notifier.rate_per_sec", ce.Field)
}
