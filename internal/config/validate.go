package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report json names ("practicum.token") rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg after the environment overlay. Every absent secret is
// collected into one *MissingSecretsError; other problems become *ConfigError.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var missing []string
	var other []error
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		for _, fe := range verrs {
			if env, ok := secretEnv[fe.StructNamespace()]; ok && fe.Tag() == "required" {
				missing = append(missing, env)
				continue
			}
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			other = append(other, &ConfigError{Field: field, Err: fmt.Errorf("failed %q check", fe.Tag())})
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingSecretsError{Missing: missing}
	}

	if _, err := ParseChatID(cfg.Telegram.ChatID); err != nil {
		other = append(other, err)
	}
	for _, d := range []struct{ path, raw string }{
		{"practicum.timeout", cfg.Practicum.Timeout},
		{"telegram.timeout", cfg.Telegram.Timeout},
		{"poll.interval", cfg.Poll.Interval},
	} {
		if _, err := ParseDurationOrDefault(d.path, d.raw, 0); err != nil {
			other = append(other, err)
		}
	}
	return errors.Join(other...)
}
