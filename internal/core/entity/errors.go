package entity

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every config validation failure raised from Init.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError describes a single rejected config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// Invalid returns a ConfigError for field.
func Invalid(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// Invalidf is Invalid with a formatted reason.
func Invalidf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
