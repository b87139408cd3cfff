package config

import (
	"fmt"
	"strings"
)

// MissingSecretsError lists every required secret that is absent.
// It is fatal at startup.
type MissingSecretsError struct {
	Missing []string
}

func (e *MissingSecretsError) Error() string {
	return "missing required secrets: " + strings.Join(e.Missing, ", ")
}

// ConfigError reports an invalid (present but malformed) config value.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
