package platforms

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration means a provider is missing a required setting.
	ErrConfiguration = errors.New("provider configuration error")
	// ErrUpstream means the provider's API could not be reached or answered with an error.
	ErrUpstream = errors.New("upstream provider error")
	// ErrTimeframeUnresolved means the current season and week could not be determined.
	ErrTimeframeUnresolved = errors.New("could not resolve current NFL timeframe")
	// ErrUnknownProvider is returned when asked to build a provider that doesn't exist.
	ErrUnknownProvider = errors.New("unknown provider")
)

type ConfigError struct {
	Provider string
	Setting  string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s is required", e.Provider, e.Setting)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// UpstreamError describes a failed request to a provider. StatusCode is 0 when
// no response was received.
type UpstreamError struct {
	Provider   string
	Path       string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request to %s failed with status %d", e.Provider, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s request to %s failed: %v", e.Provider, e.Path, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
