package config

import (
	logx "homeworkbot/pkg/logx"
)

// SummarizeConfigChange returns the changed sections and safe structured
// attrs for logging. Tokens and the chat id are never included.
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	var changed []string
	var attrs []logx.Field

	if oldCfg.Logging != newCfg.Logging {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logging.level", newCfg.Logging.Level),
			logx.Bool("logging.console", newCfg.Logging.Console),
			logx.Bool("logging.file_enabled", newCfg.Logging.File.Enabled),
		)
	}
	if oldCfg.Practicum.Token != newCfg.Practicum.Token ||
		oldCfg.Practicum.Endpoint != newCfg.Practicum.Endpoint ||
		oldCfg.Practicum.Timeout != newCfg.Practicum.Timeout {
		changed = append(changed, "practicum")
	}
	if oldCfg.Telegram != newCfg.Telegram {
		changed = append(changed, "telegram")
	}
	if oldCfg.Poll.Interval != newCfg.Poll.Interval ||
		oldCfg.Poll.AdvanceCursor != newCfg.Poll.AdvanceCursor ||
		oldCfg.Poll.ReportErrorsEnabled() != newCfg.Poll.ReportErrorsEnabled() {
		changed = append(changed, "poll")
	}
	if oldCfg.Notifier.RateLimit() != newCfg.Notifier.RateLimit() {
		changed = append(changed, "notifier")
	}
	if oldCfg.Metrics != newCfg.Metrics {
		changed = append(changed, "metrics")
	}
	return changed, attrs
}

// HotReloadable reports whether a section change applies without restart.
func HotReloadable(section string) bool {
	return section == "logging"
}
