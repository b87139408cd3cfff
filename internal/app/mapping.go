package app

import (
	"time"

	"homeworkbot/internal/config"
	"homeworkbot/internal/notifier"
	"homeworkbot/internal/observability/metrics"
	"homeworkbot/internal/poller"
	"homeworkbot/internal/practicum"
	kit "homeworkbot/internal/transport"
	telegram "homeworkbot/internal/transport/telegram/adapter"
	logx "homeworkbot/pkg/logx"
)

// The config has already been validated, so the parse errors below only
// surface on programming mistakes.

func mapLogConfig(cfg *config.Config) logx.Config {
	return logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.Console,
		File: logx.FileConfig{
			Enabled:    cfg.Logging.File.Enabled,
			Path:       cfg.Logging.File.Path,
			MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
			MaxBackups: cfg.Logging.File.MaxBackups,
		},
	}
}

func mapPracticumConfig(cfg *config.Config) (practicum.Config, error) {
	timeout, err := config.ParseDurationOrDefault("practicum.timeout", cfg.Practicum.Timeout, practicum.DefaultTimeout)
	if err != nil {
		return practicum.Config{}, err
	}
	return practicum.Config{
		Endpoint: cfg.Practicum.Endpoint,
		Token:    cfg.Practicum.Token,
		Timeout:  timeout,
	}, nil
}

func mapTelegramConfig(cfg *config.Config) (telegram.Config, error) {
	timeout, err := config.ParseDurationOrDefault("telegram.timeout", cfg.Telegram.Timeout, 15*time.Second)
	if err != nil {
		return telegram.Config{}, err
	}
	return telegram.Config{
		Token:   cfg.Telegram.Token,
		APIURL:  cfg.Telegram.APIURL,
		Timeout: timeout,
	}, nil
}

func mapNotifierConfig(cfg *config.Config) (notifier.Config, error) {
	chatID, err := config.ParseChatID(cfg.Telegram.ChatID)
	if err != nil {
		return notifier.Config{}, err
	}
	return notifier.Config{
		Target:     kit.ChatTarget{ChatID: chatID, ThreadID: cfg.Telegram.ThreadID},
		RatePerSec: cfg.Notifier.RateLimit(),
	}, nil
}

func mapPollConfig(cfg *config.Config) (poller.Config, error) {
	interval, err := config.ParseDurationOrDefault("poll.interval", cfg.Poll.Interval, poller.DefaultInterval)
	if err != nil {
		return poller.Config{}, err
	}
	return poller.Config{
		Interval:      interval,
		AdvanceCursor: cfg.Poll.AdvanceCursor,
		ReportErrors:  cfg.Poll.ReportErrorsEnabled(),
	}, nil
}

func mapMetricsConfig(cfg *config.Config) metrics.ServerConfig {
	return metrics.ServerConfig{
		Enabled: cfg.Metrics.Enabled,
		Addr:    cfg.Metrics.Addr,
		Pprof:   cfg.Metrics.Pprof,
	}
}
