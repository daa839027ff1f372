package domain

import (
	"errors"
	"fmt"
)

// ProviderErrorKind classifies provider call failures for retry and
// circuit-breaking decisions.
type ProviderErrorKind string

const (
	// ErrKindTransient covers transport errors, timeouts, and server-side
	// statuses (5xx, 429). Retried and counted by the circuit breaker.
	ErrKindTransient ProviderErrorKind = "transient"
	// ErrKindClient covers 4xx statuses: caller/input errors, not provider
	// health signals. Never retried, never counted.
	ErrKindClient ProviderErrorKind = "client"
	// ErrKindMalformed covers empty or unparseable response bodies.
	// Definitive for the call, never counted.
	ErrKindMalformed ProviderErrorKind = "malformed"
)

// ProviderError is the typed failure returned by provider transports.
type ProviderError struct {
	Provider string
	Kind     ProviderErrorKind
	Status   int
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Retriable reports whether the failure may succeed on a later attempt.
func (e *ProviderError) Retriable() bool { return e.Kind == ErrKindTransient }

// ErrCircuitOpen is returned when a provider is skipped without network I/O
// because its breaker is open.
var ErrCircuitOpen = errors.New("circuit open")

// ErrProviderUnavailable is the terminal result of an exhausted provider:
// retries spent, breaker tripped, or a definitive client/malformed failure.
var ErrProviderUnavailable = errors.New("provider unavailable")
