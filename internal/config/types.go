package config

// Config is the bot configuration. The file is optional: every secret can
// come from the environment (see secrets.go), everything else has defaults.
type Config struct {
	Practicum PracticumConfig `json:"practicum"`
	Telegram  TelegramConfig  `json:"telegram"`
	Poll      PollConfig      `json:"poll"`
	Notifier  NotifierConfig  `json:"notifier"`
	Logging   LoggingConfig   `json:"logging"`
	Metrics   MetricsConfig   `json:"metrics"`
}

type PracticumConfig struct {
	Token    string `json:"token" validate:"required"`
	Endpoint string `json:"endpoint,omitempty" validate:"omitempty,url"`
	// Timeout is a Go duration string (e.g. "30s").
	Timeout string `json:"timeout,omitempty"`
}

type TelegramConfig struct {
	Token string `json:"token" validate:"required"`
	// ChatID is kept as a string so it can come from the environment verbatim.
	ChatID   string `json:"chat_id" validate:"required"`
	ThreadID int    `json:"thread_id,omitempty" validate:"gte=0"`
	APIURL   string `json:"api_url,omitempty" validate:"omitempty,url"`
	// Timeout is a Go duration string for Bot API calls.
	Timeout string `json:"timeout,omitempty"`
}

// PollConfig controls the poll loop.
//
// Defaults:
//   - interval: "600s"
//   - advance_cursor: false (every cycle re-scans from the epoch)
//   - report_errors: true
type PollConfig struct {
	Interval      string `json:"interval,omitempty"`
	AdvanceCursor bool   `json:"advance_cursor,omitempty"`
	// ReportErrors is a pointer so an omitted key defaults to true.
	ReportErrors *bool `json:"report_errors,omitempty"`
}

type NotifierConfig struct {
	// RatePerSec caps sends per second. Omitted means 1; 0 disables the limit.
	RatePerSec *int `json:"rate_per_sec,omitempty" validate:"omitempty,gte=0"`
}

func (n NotifierConfig) RateLimit() int {
	if n.RatePerSec == nil {
		return DefaultRatePerSec
	}
	return *n.RatePerSec
}

type LoggingConfig struct {
	Level   string      `json:"level" validate:"omitempty,oneof=trace debug info warn warning error critical TRACE DEBUG INFO WARN WARNING ERROR CRITICAL"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled    bool   `json:"enabled"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb,omitempty" validate:"gte=0"`
	MaxBackups int    `json:"max_backups,omitempty" validate:"gte=0"`
}

// MetricsConfig controls the optional Prometheus endpoint.
//
// Security note: pprof handlers are only mounted when pprof=true; keep the
// address on loopback in that case.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr,omitempty" validate:"omitempty,hostname_port"`
	Pprof   bool   `json:"pprof,omitempty"`
}

const DefaultRatePerSec = 1

func (p PollConfig) ReportErrorsEnabled() bool {
	return p.ReportErrors == nil || *p.ReportErrors
}
