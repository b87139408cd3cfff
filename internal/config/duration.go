package config

import (
	"fmt"
	"strings"
	"time"
)

// ParseDurationOrDefault parses a Go duration string found at path.
// Empty or zero yields def; negative values are rejected.
func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, &ConfigError{Field: path, Err: fmt.Errorf("invalid duration %q: %w", raw, err)}
	}
	if d < 0 {
		return 0, &ConfigError{Field: path, Err: fmt.Errorf("duration must be >= 0")}
	}
	if d == 0 {
		return def, nil
	}
	return d, nil
}
