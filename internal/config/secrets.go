package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables holding the three required secrets.
const (
	EnvPracticumToken = "PRACTICUM_TOKEN"
	EnvTelegramToken  = "TELEGRAM_TOKEN"
	EnvTelegramChatID = "TELEGRAM_CHAT_ID"
)

// secretEnv maps validator struct namespaces to the env name shown to operators.
var secretEnv = map[string]string{
	"Config.Practicum.Token": EnvPracticumToken,
	"Config.Telegram.Token":  EnvTelegramToken,
	"Config.Telegram.ChatID": EnvTelegramChatID,
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set win. A missing file is not an error.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overlays secrets from the environment onto cfg.
// Non-empty environment values take precedence over the file.
func ApplyEnv(cfg *Config, lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&cfg.Practicum.Token, EnvPracticumToken)
	set(&cfg.Telegram.Token, EnvTelegramToken)
	set(&cfg.Telegram.ChatID, EnvTelegramChatID)
}

// ParseChatID parses a Telegram chat id (negative for groups/channels).
func ParseChatID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, &ConfigError{Field: "telegram.chat_id", Err: errors.New("must be an integer chat id")}
	}
	if id == 0 {
		return 0, &ConfigError{Field: "telegram.chat_id", Err: errors.New("must not be 0")}
	}
	return id, nil
}
