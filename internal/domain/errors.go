// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError is a run-level configuration failure. It aborts the whole run
// before any item is processed.
type ConfigError struct {
	Field string
	Value any
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%v", e.Field, e.Value)
}

// FieldError pinpoints one malformed value on one item.
type FieldError struct {
	ItemCode string
	Field    string
	Value    string
	Reason   string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("item %s: field %s=%q %s", e.ItemCode, e.Field, e.Value, e.Reason)
}

// ValidationError rejects the whole batch. Recomputing reorder advice on a
// partially validated dataset would be worse than refusing to run, so bad rows
// are collected and reported together instead of being skipped.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("validation failed (%d problems): %s", len(e.Fields), strings.Join(msgs, "; "))
}

// IsConfigError reports whether err wraps a ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsValidationError reports whether err wraps a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
