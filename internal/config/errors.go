package config

import "fmt"

// ConfigError is the one unrecoverable error class: invalid configuration or
// input that lacks the identifying fields every stage depends on.
//
//nolint:revive // ConfigError reads better than Error at call sites
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
