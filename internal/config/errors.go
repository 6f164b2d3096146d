package config

import (
	"errors"
	"fmt"
)

// Errors returned while loading the config document.
var (
	ErrUnreadable   = errors.New("config file does not exist or is unreadable")
	ErrReadFailure  = errors.New("failed to read config file")
	ErrParseFailure = errors.New("failed to parse config file as XML")
)

// Errors returned while resolving settings.
var (
	ErrMissingRequiredField = errors.New("required setting is missing")
	ErrInvalidAddress       = errors.New("not a valid IPv4 address")
	ErrInvalidValue         = errors.New("invalid setting value")
	ErrAmbiguousSetting     = errors.New("setting is defined more than once")
)

// SettingError reports a resolution failure for a single setting.
type SettingError struct {
	Setting string
	Value   string
	Err     error
}

func (e *SettingError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Setting, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Setting, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}
